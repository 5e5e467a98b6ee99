package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-chat-be/pkg/store"
)

func TestFormat(t *testing.T) {
	messages := []store.Message{
		{Role: store.RoleUser, Content: "hello"},
		{Role: store.RoleAssistant, Content: "Hi! How can I help?"},
		{Role: store.RoleUser, Content: "what is in my report?"},
	}

	t.Run("renders role prefixed lines", func(t *testing.T) {
		got := Format(messages, 0)
		assert.Equal(t, "User: hello\nAssistant: Hi! How can I help?\nUser: what is in my report?", got)
	})

	t.Run("window keeps most recent", func(t *testing.T) {
		got := Format(messages, 2)
		assert.Equal(t, "Assistant: Hi! How can I help?\nUser: what is in my report?", got)
	})

	t.Run("empty history renders empty string", func(t *testing.T) {
		assert.Equal(t, "", Format(nil, 10))
	})

	t.Run("citations never leak", func(t *testing.T) {
		withCitations := []store.Message{
			{Role: store.RoleAssistant, Content: "Revenue grew [0].", Citations: []store.Citation{
				{SourceID: 0, FileName: "report.pdf", Page: 3, Snippet: "secret snippet"},
			}},
		}
		got := Format(withCitations, 0)
		assert.Equal(t, "Assistant: Revenue grew [0].", got)
		assert.NotContains(t, got, "secret snippet")
	})
}
