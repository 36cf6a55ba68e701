package prefs

import (
	"context"
	"sync"
)

// InMemoryStore is a simple in-process preference store for local/dev use.
type InMemoryStore struct {
	mu     sync.RWMutex
	voices map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{voices: make(map[string]string)}
}

func (s *InMemoryStore) VoiceFor(_ context.Context, identity string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.voices[identity]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *InMemoryStore) SetVoice(_ context.Context, identity, voiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices[identity] = voiceID
	return nil
}

func (s *InMemoryStore) Close() error { return nil }
