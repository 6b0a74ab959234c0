package agent

// Role constants for conversation records crossing the chat-host boundary.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of caller-owned history. Tool rounds happen inside a
// single Chat call and never appear here.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
