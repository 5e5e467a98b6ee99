package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func conversationWith(n int) *Conversation {
	conv := &Conversation{ID: "s1", UserID: "u1"}
	for i := 0; i < n; i++ {
		conv.Append(Message{Role: RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}
	return conv
}

func TestAppendStampsCreatedAt(t *testing.T) {
	conv := &Conversation{}
	conv.Append(Message{Role: RoleUser, Content: "hello"})

	assert.Len(t, conv.Messages, 1)
	assert.False(t, conv.Messages[0].CreatedAt.IsZero())
	assert.False(t, conv.UpdatedAt.IsZero())
}

func TestTrim(t *testing.T) {
	t.Run("drops oldest beyond cap", func(t *testing.T) {
		conv := conversationWith(6)
		conv.Trim(4)

		assert.Len(t, conv.Messages, 4)
		assert.Equal(t, "msg-2", conv.Messages[0].Content)
		assert.Equal(t, "msg-5", conv.Messages[3].Content)
	})

	t.Run("under cap untouched", func(t *testing.T) {
		conv := conversationWith(3)
		conv.Trim(4)
		assert.Len(t, conv.Messages, 3)
	})

	t.Run("zero cap disables trimming", func(t *testing.T) {
		conv := conversationWith(10)
		conv.Trim(0)
		assert.Len(t, conv.Messages, 10)
	})
}

func TestWindow(t *testing.T) {
	conv := conversationWith(5)

	t.Run("returns last n", func(t *testing.T) {
		window := conv.Window(2)
		assert.Len(t, window, 2)
		assert.Equal(t, "msg-3", window[0].Content)
		assert.Equal(t, "msg-4", window[1].Content)
	})

	t.Run("n larger than history returns all", func(t *testing.T) {
		assert.Len(t, conv.Window(50), 5)
	})

	t.Run("non-positive n returns all", func(t *testing.T) {
		assert.Len(t, conv.Window(0), 5)
	})
}
