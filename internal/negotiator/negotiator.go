// Package negotiator implements voice-preference negotiation over the
// session's reliable data channel: publish a change request, then wait for an
// asynchronous confirmation with a timeout fallback.
package negotiator

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ent0n29/voicedesk/internal/protocol"
	"github.com/ent0n29/voicedesk/internal/realtime"
	"github.com/ent0n29/voicedesk/internal/voices"
)

const (
	// changeTimeout clears the in-flight flag whether or not a response ever
	// arrives. It does not cancel anything: a late success response after the
	// flag cleared still updates state.
	changeTimeout = 5 * time.Second
	// previewTimeout self-clears the preview flag. Previews have no response
	// contract at all.
	previewTimeout = 4 * time.Second
)

// Publisher is the slice of the realtime session the negotiator needs.
type Publisher interface {
	PublishData(payload []byte) error
	State() realtime.State
}

// PreferenceStore persists the last confirmed voice ID. Load is consulted
// once at construction; Save happens only on a confirmed success response.
type PreferenceStore interface {
	Load() (string, bool)
	Save(voiceID string) error
}

// Negotiator tracks the current voice and the in-flight flags for change and
// preview requests.
type Negotiator struct {
	session Publisher
	store   PreferenceStore

	mu           sync.Mutex
	current      voices.Voice
	isChanging   bool
	isPreviewing bool
	statusMsg    string

	// after is time.AfterFunc unless a test swaps in a manual trigger.
	after func(d time.Duration, f func()) *time.Timer
}

func New(session Publisher, store PreferenceStore) *Negotiator {
	n := &Negotiator{
		session: session,
		store:   store,
		current: voices.Default(),
		after:   time.AfterFunc,
	}
	if store != nil {
		if id, ok := store.Load(); ok {
			if v, found := voices.Find(id); found {
				n.current = v
			}
		}
	}
	return n
}

// Bind subscribes the negotiator to the session's inbound data payloads.
func (n *Negotiator) Bind(sess realtime.Session) {
	sess.OnData(n.HandleData)
}

// Current returns the voice currently in effect.
func (n *Negotiator) Current() voices.Voice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Negotiator) IsChanging() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.isChanging
}

func (n *Negotiator) IsPreviewing() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.isPreviewing
}

// StatusMessage returns the last agent-provided failure message, if any.
func (n *Negotiator) StatusMessage() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.statusMsg
}

// ChangeVoice publishes a voice_change request for the given catalog entry.
// The request is silently ignored when a change is already in flight, the
// target equals the current voice, or the session is not connected.
func (n *Negotiator) ChangeVoice(voiceID string) error {
	v, ok := voices.Find(voiceID)
	if !ok {
		return fmt.Errorf("unknown voice %q", voiceID)
	}

	n.mu.Lock()
	if n.isChanging || v.ID == n.current.ID || n.session.State() != realtime.StateConnected {
		n.mu.Unlock()
		return nil
	}
	n.isChanging = true
	n.statusMsg = ""
	n.mu.Unlock()

	payload, err := json.Marshal(protocol.NewVoiceChange(v.ID))
	if err != nil {
		n.clearChanging()
		return fmt.Errorf("marshal voice_change: %w", err)
	}
	if err := n.session.PublishData(payload); err != nil {
		n.clearChanging()
		return fmt.Errorf("publish voice_change: %w", err)
	}

	// The timer and the request are uncorrelated: the flag clears after the
	// timeout regardless of whether a response arrives.
	n.after(changeTimeout, n.clearChanging)
	return nil
}

// Preview publishes a fire-and-forget voice_preview request.
func (n *Negotiator) Preview(voiceID string) error {
	v, ok := voices.Find(voiceID)
	if !ok {
		return fmt.Errorf("unknown voice %q", voiceID)
	}

	n.mu.Lock()
	if n.isPreviewing || n.session.State() != realtime.StateConnected {
		n.mu.Unlock()
		return nil
	}
	n.isPreviewing = true
	n.mu.Unlock()

	payload, err := json.Marshal(protocol.NewVoicePreview(v.ID, v.PreviewText))
	if err != nil {
		n.clearPreviewing()
		return fmt.Errorf("marshal voice_preview: %w", err)
	}
	if err := n.session.PublishData(payload); err != nil {
		n.clearPreviewing()
		return fmt.Errorf("publish voice_preview: %w", err)
	}

	n.after(previewTimeout, n.clearPreviewing)
	return nil
}

// HandleData processes an inbound data-channel payload. Malformed payloads
// are logged and dropped; they never escape this handler.
func (n *Negotiator) HandleData(payload []byte) {
	parsed, err := protocol.ParseAgentMessage(payload)
	if err != nil {
		log.Printf("negotiator: dropping inbound payload: %v", err)
		return
	}

	switch msg := parsed.(type) {
	case protocol.VoiceChangeResponse:
		n.handleChangeResponse(msg)
	case protocol.TestMessage:
		log.Printf("negotiator: agent test message: %s", msg.Message)
	}
}

func (n *Negotiator) handleChangeResponse(msg protocol.VoiceChangeResponse) {
	if !msg.Success {
		n.mu.Lock()
		n.isChanging = false
		n.statusMsg = msg.Message
		n.mu.Unlock()
		return
	}

	v, ok := voices.Find(msg.CurrentVoice)
	if !ok {
		// The agent confirmed a voice outside our catalog; track it by ID so
		// the displayed state still matches the agent's.
		v = voices.Voice{ID: msg.CurrentVoice, Name: msg.CurrentVoice}
	}

	n.mu.Lock()
	n.current = v
	n.isChanging = false
	n.statusMsg = ""
	n.mu.Unlock()

	if n.store != nil {
		if err := n.store.Save(v.ID); err != nil {
			log.Printf("negotiator: persist voice preference: %v", err)
		}
	}
}

func (n *Negotiator) clearChanging() {
	n.mu.Lock()
	n.isChanging = false
	n.mu.Unlock()
}

func (n *Negotiator) clearPreviewing() {
	n.mu.Lock()
	n.isPreviewing = false
	n.mu.Unlock()
}
