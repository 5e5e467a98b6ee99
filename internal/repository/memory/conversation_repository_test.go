package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"doc-chat-be/pkg/store"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewConversationRepository(time.Minute, time.Minute)

	conv := &store.Conversation{ID: "s1", UserID: "u1"}
	repo.Save(conv)

	got, found := repo.Get("s1")
	assert.True(t, found)
	assert.Equal(t, "u1", got.UserID)

	_, found = repo.Get("missing")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	repo := NewConversationRepository(time.Minute, time.Minute)
	repo.Save(&store.Conversation{ID: "s1"})

	repo.Delete("s1")

	_, found := repo.Get("s1")
	assert.False(t, found)
}

func TestCount(t *testing.T) {
	repo := NewConversationRepository(time.Minute, time.Minute)
	assert.Equal(t, 0, repo.Count())

	repo.Save(&store.Conversation{ID: "s1"})
	repo.Save(&store.Conversation{ID: "s2"})
	assert.Equal(t, 2, repo.Count())
}

func TestExpiry(t *testing.T) {
	repo := NewConversationRepository(20*time.Millisecond, 10*time.Millisecond)
	repo.Save(&store.Conversation{ID: "s1"})

	time.Sleep(50 * time.Millisecond)

	_, found := repo.Get("s1")
	assert.False(t, found)
}

func TestLockSerializesTurns(t *testing.T) {
	repo := NewConversationRepository(time.Minute, time.Minute)
	repo.Save(&store.Conversation{ID: "s1"})

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := repo.Lock("s1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
}
