package facts

import (
	"encoding/json"
	"strings"
)

// factPayload is the shape the extraction prompt asks the model for.
type factPayload struct {
	Facts []factEntry `json:"facts"`
}

type factEntry struct {
	Category   string      `json:"category"`
	Field      string      `json:"field"`
	Value      string      `json:"value"`
	Confidence json.Number `json:"confidence"`
	Page       json.Number `json:"page"`
}

// ExtractJSONObject locates and decodes the first JSON object embedded in
// free-form model output. Models often wrap JSON in markdown code fences or
// surround it with prose, so this strips fences and then takes the greedy
// span from the first '{' to the last '}'.
func ExtractJSONObject(raw string, out any) error {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return ErrNoJSONObject
	}

	return json.Unmarshal([]byte(cleaned[start:end+1]), out)
}

func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.TrimSpace(cleaned)
}
