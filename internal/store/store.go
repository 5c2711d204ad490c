package store

import "sync"

// Well-known keys. Favorites are scoped per identity: one key per user id,
// so switching accounts on the same device never shares a favorites set.
const (
	KeyCurrentUser = "auth:user"
	KeyRegistry    = "auth:registry"
)

// FavoritesKey returns the storage key for a user's favorites set.
func FavoritesKey(userID string) string {
	return "favorites:" + userID
}

// Store is a durable key-value persistence abstraction.
type Store interface {
	// Get returns the value for key. The second return is false when the key is absent.
	Get(key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// MemoryStore is a map-backed [Store] for tests and ephemeral runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
