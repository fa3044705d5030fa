package dto

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Greeting seeds every new transcript.
const Greeting = "I'm your Tax Assistant. Ask me if you have any question."

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewTranscript returns the seeded conversation history for a fresh session.
func NewTranscript() []ChatMessage {
	return []ChatMessage{{Role: RoleAssistant, Content: Greeting}}
}
