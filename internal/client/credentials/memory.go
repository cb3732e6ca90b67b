package credentials

import "sync"

// MemoryStore keeps credentials in process memory only. Used in tests and as
// the in-controller cache layer.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) Get(channelID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[Key(channelID)]
	return v, ok
}

func (s *MemoryStore) Put(channelID string, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[Key(channelID)] = password
}

func (s *MemoryStore) Remove(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, Key(channelID))
}
