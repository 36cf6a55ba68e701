package prefs

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	if _, err := s.VoiceFor(ctx, "Ava"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("VoiceFor() error = %v, want ErrNotFound", err)
	}

	if err := s.SetVoice(ctx, "Ava", "stella"); err != nil {
		t.Fatalf("SetVoice() error = %v", err)
	}
	got, err := s.VoiceFor(ctx, "Ava")
	if err != nil {
		t.Fatalf("VoiceFor() error = %v", err)
	}
	if got != "stella" {
		t.Fatalf("VoiceFor() = %q, want stella", got)
	}

	// Overwrite keeps only the latest confirmed voice.
	if err := s.SetVoice(ctx, "Ava", "luna"); err != nil {
		t.Fatalf("SetVoice() error = %v", err)
	}
	got, _ = s.VoiceFor(ctx, "Ava")
	if got != "luna" {
		t.Fatalf("VoiceFor() after overwrite = %q, want luna", got)
	}
}

func TestFactoryDefaultsToInMemory(t *testing.T) {
	s, err := NewStore(context.Background(), "  ")
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*InMemoryStore); !ok {
		t.Fatalf("NewStore(\"\") = %T, want *InMemoryStore", s)
	}
}
