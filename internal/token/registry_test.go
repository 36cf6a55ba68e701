package token

import (
	"testing"
	"time"
)

func TestRegistryRecordAndCount(t *testing.T) {
	r := NewRegistry()
	if r.ActiveCount() != 0 {
		t.Fatalf("ActiveCount() = %d, want 0", r.ActiveCount())
	}

	r.Record(ConnectionDetails{RoomName: "voice-chat-aaa", Identity: "Ava"}, time.Minute)
	r.Record(ConnectionDetails{RoomName: "voice-chat-bbb", Identity: "Ben"}, time.Minute)
	if r.ActiveCount() != 2 {
		t.Fatalf("ActiveCount() = %d, want 2", r.ActiveCount())
	}
}

func TestRegistryExpiredEntriesNotCounted(t *testing.T) {
	r := NewRegistry()
	r.Record(ConnectionDetails{RoomName: "voice-chat-old", Identity: "Ava"}, -time.Second)
	if r.ActiveCount() != 0 {
		t.Fatalf("ActiveCount() = %d, want 0 for expired entry", r.ActiveCount())
	}
}

func TestRegistryPruneFiresExpireHook(t *testing.T) {
	r := NewRegistry()
	var expired []IssuedSession
	r.SetExpireHook(func(s IssuedSession) { expired = append(expired, s) })

	r.Record(ConnectionDetails{RoomName: "voice-chat-old", Identity: "Ava"}, -time.Second)
	r.Record(ConnectionDetails{RoomName: "voice-chat-new", Identity: "Ben"}, time.Hour)
	r.pruneExpired()

	if len(expired) != 1 || expired[0].RoomName != "voice-chat-old" {
		t.Fatalf("expired = %+v, want only voice-chat-old", expired)
	}
	if r.ActiveCount() != 1 {
		t.Fatalf("ActiveCount() = %d, want 1 after prune", r.ActiveCount())
	}
}
