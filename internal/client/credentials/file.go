package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists credentials to a session-scoped JSON file so they
// survive client restarts within the same session. Every operation is
// best-effort: unreadable or corrupt files behave as an empty cache.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the file at path. The file is
// created lazily on the first Put.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// SessionFilePath derives a credential cache path scoped to the current
// terminal session (keyed by the parent process id under the OS temp dir).
func SessionFilePath() string {
	return filepath.Join(os.TempDir(), "lynkc-session-"+itoa(os.Getppid())+".json")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func (s *FileStore) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	items := map[string]string{}
	if err := json.Unmarshal(data, &items); err != nil {
		return map[string]string{}
	}
	return items
}

func (s *FileStore) save(items map[string]string) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Get(channelID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.load()[Key(channelID)]
	return v, ok
}

func (s *FileStore) Put(channelID string, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.load()
	items[Key(channelID)] = password
	s.save(items)
}

func (s *FileStore) Remove(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.load()
	delete(items, Key(channelID))
	s.save(items)
}
