// Package realtime models the media platform session as a narrow capability
// boundary: a way to send a byte payload reliably, plus callbacks for inbound
// payloads and connection-state changes. Everything else the platform offers
// (tracks, metadata, participants) stays behind the boundary.
package realtime

import (
	"context"
	"errors"
	"sync"
)

var ErrNotConnected = errors.New("session not connected")

// DataHandler receives inbound data-channel payloads.
type DataHandler func(payload []byte)

// StateHandler receives connection-state changes.
type StateHandler func(state State)

// Session is the capability boundary over the real-time media SDK.
type Session interface {
	// Connect establishes the session. It returns once the session is
	// connected or the attempt has definitively failed.
	Connect(ctx context.Context) error
	// PublishData sends a payload over the reliable data channel.
	PublishData(payload []byte) error
	State() State
	// OnData registers the inbound payload handler; nil unsubscribes.
	OnData(h DataHandler)
	// OnStateChange registers the state handler; nil unsubscribes.
	OnStateChange(h StateHandler)
	Close() error
}

// notifier holds the shared handler/state bookkeeping used by session
// implementations.
type notifier struct {
	mu      sync.RWMutex
	state   State
	onData  DataHandler
	onState StateHandler
}

func newNotifier() *notifier {
	return &notifier{state: StateDisconnected}
}

func (n *notifier) State() State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

func (n *notifier) OnData(h DataHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onData = h
}

func (n *notifier) OnStateChange(h StateHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onState = h
}

// setState applies a state transition and notifies the handler outside the
// lock. Invalid transitions are ignored so racing teardown paths cannot
// corrupt the observed sequence.
func (n *notifier) setState(to State) bool {
	n.mu.Lock()
	if !ValidTransition(n.state, to) {
		n.mu.Unlock()
		return false
	}
	n.state = to
	h := n.onState
	n.mu.Unlock()

	if h != nil {
		h(to)
	}
	return true
}

func (n *notifier) dispatchData(payload []byte) {
	n.mu.RLock()
	h := n.onData
	n.mu.RUnlock()
	if h != nil {
		h(payload)
	}
}
