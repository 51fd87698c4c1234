package history

// Role tags a message with its author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn's text. A message is immutable once created.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
