package realtime

import (
	"context"
	"sync"
)

// MockSession is an in-process Session for tests. Inbound traffic is driven
// with InjectData and SetState; published payloads are recorded.
type MockSession struct {
	*notifier

	mu          sync.Mutex
	published   [][]byte
	connectErr  error
	publishErr  error
	closeCalled bool
}

func NewMockSession() *MockSession {
	return &MockSession{notifier: newNotifier()}
}

func (m *MockSession) FailConnect(err error) { m.connectErr = err }
func (m *MockSession) FailPublish(err error) { m.publishErr = err }

func (m *MockSession) Connect(_ context.Context) error {
	if m.connectErr != nil {
		return m.connectErr
	}
	m.setState(StateConnecting)
	m.setState(StateConnected)
	return nil
}

func (m *MockSession) PublishData(payload []byte) error {
	if m.State() != StateConnected {
		return ErrNotConnected
	}
	if m.publishErr != nil {
		return m.publishErr
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.mu.Lock()
	m.published = append(m.published, cp)
	m.mu.Unlock()
	return nil
}

func (m *MockSession) Close() error {
	m.mu.Lock()
	m.closeCalled = true
	m.mu.Unlock()
	m.setState(StateDisconnected)
	return nil
}

// Published returns copies of every payload sent so far.
func (m *MockSession) Published() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.published))
	copy(out, m.published)
	return out
}

func (m *MockSession) PublishCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

func (m *MockSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}

// InjectData delivers an inbound payload to the registered data handler.
func (m *MockSession) InjectData(payload []byte) {
	m.dispatchData(payload)
}

// SetState forces a state transition, notifying the state handler.
func (m *MockSession) SetState(to State) bool {
	return m.setState(to)
}
