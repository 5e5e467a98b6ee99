package history

import (
	"strings"

	"doc-chat-be/pkg/store"
)

// Format renders the last n messages as "Role: content" lines for prompt
// interpolation. Citations never leak into the transcript. n <= 0 means
// all messages.
func Format(messages []store.Message, n int) string {
	if len(messages) == 0 {
		return ""
	}
	if n > 0 && len(messages) > n {
		messages = messages[len(messages)-n:]
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title(msg.Role))
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	return b.String()
}

func title(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
