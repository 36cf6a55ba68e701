package prefs

import (
	"context"
	"errors"
)

// ErrNotFound means no preference has been saved for the identity.
var ErrNotFound = errors.New("preference not found")

// Store persists the last confirmed voice per participant identity. Writes
// happen only on a confirmed successful voice change.
type Store interface {
	VoiceFor(ctx context.Context, identity string) (string, error)
	SetVoice(ctx context.Context, identity, voiceID string) error
	Close() error
}
