package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"doc-chat-be/pkg/store"
)

// ConversationRepository holds live conversations in process memory with
// a TTL. Each session also gets its own mutex so concurrent requests on
// one session serialize their read-modify-write turns instead of
// interleaving history updates.
type ConversationRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewConversationRepository(ttl, sweep time.Duration) *ConversationRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if sweep <= 0 {
		sweep = time.Hour
	}
	c := cache.New(ttl, sweep)

	r := &ConversationRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
	// Drop the lock when the conversation expires, else the map leaks
	c.OnEvicted(func(key string, _ interface{}) {
		r.mu.Lock()
		delete(r.locks, key)
		r.mu.Unlock()
	})
	return r
}

// Lock acquires the per-session mutex. The returned func releases it.
func (r *ConversationRepository) Lock(sessionID string) func() {
	r.mu.Lock()
	l, ok := r.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[sessionID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (r *ConversationRepository) Save(conv *store.Conversation) {
	r.cache.Set(conv.ID, conv, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(sessionID string) (*store.Conversation, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Count reports live (non-expired) conversations.
func (r *ConversationRepository) Count() int {
	return r.cache.ItemCount()
}
