package rag

const answerSystemPrompt = `You are a telehealth policy expert assistant. Answer questions based ONLY on the provided context from state telehealth policy documents.

Rules:
1. Only use information from the provided context
2. Always cite sources using [number] notation
3. If the context doesn't contain enough information, say so clearly
4. Be concise and specific
5. For regulatory questions, quote exact requirements when possible
6. If confidence is low, suggest alternative queries`

const fallbackAnswer = "I couldn't find relevant information to answer your question. Try rephrasing or asking about specific telehealth modalities, billing codes, or state requirements."

// fallbackSuggestions accompany the zero-result answer. Always exactly
// three, so clients can render them without counting.
var fallbackSuggestions = []string{
	"What are the live video requirements?",
	"Does this state allow store-and-forward?",
	"What are the consent requirements?",
}
