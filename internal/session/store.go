package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps live sessions in memory. A session expires ttl after it was
// created; beyond maxEntries the least recently used one is evicted.
type Store struct {
	deps  Deps
	cache *expirable.LRU[string, *Session]
}

func NewStore(deps Deps, maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{deps: deps, cache: expirable.NewLRU[string, *Session](maxEntries, nil, ttl)}
}

func (st *Store) Create() *Session {
	s := New(uuid.NewString(), st.deps)
	st.cache.Add(s.ID, s)
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Delete(id string) {
	st.cache.Remove(id)
}

func (st *Store) Len() int { return st.cache.Len() }
