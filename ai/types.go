package ai

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleSystem carries the fixed instruction framing a conversation.
	RoleSystem Role = "system"
	// RoleUser carries end-user input.
	RoleUser Role = "user"
	// RoleAssistant carries prior model output replayed as history.
	RoleAssistant Role = "assistant"
)

// Message is one entry in an ordered conversation sent to a Generator.
type Message struct {
	Role    Role
	Content string
}
