package ai

// Message is a single chat turn in provider wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Route is the origin/destination pair extracted by a model from free text.
type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Metadata prefixes for structured system messages injected by the chat
// pipeline. Providers and the offline fallback both read them.
const (
	MetaIntent     = "INTENT:"
	MetaProfile    = "PROFILE:"
	MetaTravelData = "TRAVEL_DATA:"
)

// SystemMessage builds a structured system turn like "INTENT: PLAN_REQUEST".
func SystemMessage(prefix, content string) Message {
	return Message{Role: RoleSystem, Content: prefix + " " + content}
}
