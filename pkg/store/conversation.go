package store

import "time"

// Message roles recorded in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation. Citations are only set on
// assistant messages that were produced by the retrieval path.
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Citation points an answer marker back at the passage it was grounded on.
// Error is set when the model emitted a marker that matched no retrieved
// passage; such citations carry no page or snippet.
type Citation struct {
	SourceID int    `json:"source_id"`
	FileName string `json:"file_name,omitempty"`
	Page     int    `json:"page,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Conversation is the in-memory state of one chat session.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Append adds a message and stamps UpdatedAt.
func (c *Conversation) Append(msg Message) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// Trim drops the oldest messages so at most cap remain. A cap of zero or
// less disables trimming.
func (c *Conversation) Trim(capacity int) {
	if capacity <= 0 || len(c.Messages) <= capacity {
		return
	}
	c.Messages = c.Messages[len(c.Messages)-capacity:]
}

// Window returns up to n of the most recent messages without copying.
func (c *Conversation) Window(n int) []Message {
	if n <= 0 || len(c.Messages) <= n {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-n:]
}
