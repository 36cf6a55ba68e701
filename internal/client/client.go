// Package client implements the session lifecycle: token request, managed
// connection, and teardown. It owns the only ConnectionDetails value a
// process holds at a time.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ent0n29/voicedesk/internal/realtime"
	"github.com/ent0n29/voicedesk/internal/token"
)

var (
	ErrEmptyName     = errors.New("display name must not be empty")
	ErrSessionActive = errors.New("a session is already active; disconnect first")
	ErrNoSession     = errors.New("no active session")
)

// Phase is the client's own lifecycle, distinct from the connection state the
// underlying session reports.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRequesting Phase = "requesting"
	PhaseActive     Phase = "active"
)

// TokenIssuer obtains connection details for a participant.
type TokenIssuer interface {
	IssueToken(ctx context.Context, participantName string) (token.ConnectionDetails, error)
}

// SessionFactory builds a realtime session from issued details.
type SessionFactory func(details token.ConnectionDetails) realtime.Session

// AudioSink abstracts the audio output that may need an explicit user gesture
// to start (autoplay policy).
type AudioSink interface {
	Resume() error
}

// Client drives one voice-chat session at a time.
type Client struct {
	issuer     TokenIssuer
	newSession SessionFactory
	audio      AudioSink

	mu               sync.Mutex
	phase            Phase
	details          *token.ConnectionDetails
	session          realtime.Session
	lastError        string
	everConnected    bool
	needsAudioUnlock bool
	onState          realtime.StateHandler
}

func New(issuer TokenIssuer, factory SessionFactory, audio AudioSink) *Client {
	return &Client{
		issuer:     issuer,
		newSession: factory,
		audio:      audio,
		phase:      PhaseIdle,
	}
}

// OnConnectionState registers an observer for the underlying session's state
// changes. Must be called before Start.
func (c *Client) OnConnectionState(h realtime.StateHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = h
}

// Start validates the display name, requests a token, and opens the managed
// session. An empty name is rejected locally before any network call.
func (c *Client) Start(ctx context.Context, displayName string) error {
	if strings.TrimSpace(displayName) == "" {
		c.setError(ErrEmptyName.Error())
		return ErrEmptyName
	}

	// The phase, not the details, is the admission guard: details only exist
	// once the token request returns, so a concurrent Start must be turned
	// away while the first is still Requesting.
	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.phase = PhaseRequesting
	c.lastError = ""
	c.mu.Unlock()

	details, err := c.issuer.IssueToken(ctx, strings.TrimSpace(displayName))
	if err != nil {
		c.mu.Lock()
		c.phase = PhaseIdle
		c.lastError = err.Error()
		c.mu.Unlock()
		return err
	}

	sess := c.newSession(details)
	sess.OnStateChange(c.handleState)

	c.mu.Lock()
	c.details = &details
	c.session = sess
	c.phase = PhaseActive
	c.mu.Unlock()

	if err := sess.Connect(ctx); err != nil {
		c.teardown()
		c.setError(err.Error())
		return fmt.Errorf("connect session: %w", err)
	}
	return nil
}

// Disconnect clears the ConnectionDetails and releases the session's
// resources in one step, returning the client to Idle.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if c.details == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	c.mu.Unlock()
	c.teardown()
	return nil
}

func (c *Client) teardown() {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.details = nil
	c.phase = PhaseIdle
	c.everConnected = false
	c.needsAudioUnlock = false
	c.mu.Unlock()

	if sess != nil {
		_ = sess.Close()
	}
}

func (c *Client) handleState(st realtime.State) {
	c.mu.Lock()
	first := st == realtime.StateConnected && !c.everConnected
	if first {
		c.everConnected = true
	}
	h := c.onState
	c.mu.Unlock()

	if first && c.audio != nil {
		if err := c.audio.Resume(); err != nil {
			c.mu.Lock()
			c.needsAudioUnlock = true
			c.mu.Unlock()
		}
	}
	if h != nil {
		h(st)
	}
}

// EnableAudio retries the audio resume that failed on first connect. Clears
// the unlock affordance on success.
func (c *Client) EnableAudio() error {
	if c.audio == nil {
		return nil
	}
	if err := c.audio.Resume(); err != nil {
		return err
	}
	c.mu.Lock()
	c.needsAudioUnlock = false
	c.mu.Unlock()
	return nil
}

// Session returns the active realtime session, or nil while idle.
func (c *Client) Session() realtime.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Details returns a copy of the active connection details, if any.
func (c *Client) Details() (token.ConnectionDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.details == nil {
		return token.ConnectionDetails{}, false
	}
	return *c.details, true
}

func (c *Client) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// ConnectionState reports the underlying session's state, Disconnected while
// idle.
func (c *Client) ConnectionState() realtime.State {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()
	if sess == nil {
		return realtime.StateDisconnected
	}
	return sess.State()
}

func (c *Client) NeedsAudioUnlock() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.needsAudioUnlock
}

// LastError returns the most recent user-facing error message, empty if none.
func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Client) setError(msg string) {
	c.mu.Lock()
	c.lastError = msg
	c.mu.Unlock()
}
