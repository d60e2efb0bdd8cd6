package emitter

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// sessionStorageKey is where the session identifier lives in the store,
// mirroring the browser's tab-scoped storage key.
const sessionStorageKey = "secure_sense_session_id"

// SessionStore is the tab-scoped storage the session identifier persists in.
// Its lifetime bounds the session: a fresh store means a fresh session.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemorySessionStore is an in-process SessionStore, the default for one
// application run.
type MemorySessionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{values: make(map[string]string)}
}

func (s *MemorySessionStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySessionStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// newSessionID synthesizes a session identifier: a millisecond timestamp plus
// a short random token. Probabilistic uniqueness is enough for a best-effort
// telemetry correlation id; there is no collision detection.
func newSessionID() string {
	token := strings.ToLower(ulid.Make().String())
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), token[len(token)-8:])
}

// acquireSessionID returns the identifier stored under sessionStorageKey,
// creating and persisting one on first use. Repeated calls against the same
// store always return the same value.
func acquireSessionID(store SessionStore) string {
	if existing, ok := store.Get(sessionStorageKey); ok && existing != "" {
		return existing
	}
	id := newSessionID()
	store.Set(sessionStorageKey, id)
	return id
}
