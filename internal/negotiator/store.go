package negotiator

import (
	"os"
	"strings"
	"sync"
)

// MemStore keeps the preference in process memory. The zero value is usable.
type MemStore struct {
	mu    sync.Mutex
	voice string
	set   bool
}

func (s *MemStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice, s.set
}

func (s *MemStore) Save(voiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice = voiceID
	s.set = true
	return nil
}

// FileStore persists the preference as a single line in a file, the terminal
// client's stand-in for the browser's single localStorage key.
type FileStore struct {
	Path string
}

func (s FileStore) Load() (string, bool) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(raw))
	return v, v != ""
}

func (s FileStore) Save(voiceID string) error {
	return os.WriteFile(s.Path, []byte(voiceID+"\n"), 0o600)
}
