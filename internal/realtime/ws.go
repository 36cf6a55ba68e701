package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ent0n29/voicedesk/internal/reliability"
	"github.com/ent0n29/voicedesk/internal/token"
)

const (
	frameJoin = "join"
	frameData = "data"
	framePing = "ping"
)

// signalFrame is the minimal JSON framing spoken over the websocket. Payload
// bytes ride as base64 through encoding/json's []byte handling.
type signalFrame struct {
	Type     string `json:"type"`
	Room     string `json:"room,omitempty"`
	Identity string `json:"identity,omitempty"`
	Payload  []byte `json:"payload,omitempty"`
}

// WSConfig tunes the websocket session.
type WSConfig struct {
	DialTimeout       time.Duration
	WriteTimeout      time.Duration
	PingInterval      time.Duration
	ReconnectAttempts int
	BackoffBase       time.Duration
	BackoffCap        time.Duration
}

func (c *WSConfig) applyDefaults() {
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 20 * time.Second
	}
	if c.ReconnectAttempts <= 0 {
		c.ReconnectAttempts = 5
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = 250 * time.Millisecond
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = 5 * time.Second
	}
}

// WSSession joins a room over a websocket using issued connection details.
type WSSession struct {
	*notifier

	details token.ConnectionDetails
	cfg     WSConfig

	writeMu sync.Mutex
	conn    *websocket.Conn

	runCtx context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWSSession(details token.ConnectionDetails, cfg WSConfig) *WSSession {
	cfg.applyDefaults()
	return &WSSession{
		notifier: newNotifier(),
		details:  details,
		cfg:      cfg,
	}
}

// Connect dials the media endpoint, sends the join frame, and starts the read
// loop. Reconnection on transient loss happens inside the read loop.
func (s *WSSession) Connect(ctx context.Context) error {
	if !s.setState(StateConnecting) {
		return fmt.Errorf("connect from state %q", s.State())
	}

	conn, err := s.dial(ctx)
	if err != nil {
		s.setState(StateDisconnected)
		return err
	}

	s.writeMu.Lock()
	s.conn = conn
	s.writeMu.Unlock()

	if err := s.writeFrame(signalFrame{
		Type:     frameJoin,
		Room:     s.details.RoomName,
		Identity: s.details.Identity,
	}); err != nil {
		conn.Close()
		s.setState(StateDisconnected)
		return fmt.Errorf("send join: %w", err)
	}

	s.setState(StateConnected)

	s.runCtx, s.cancel = context.WithCancel(context.Background())
	s.done = make(chan struct{})
	go s.readLoop()
	go s.pingLoop()
	return nil
}

func (s *WSSession) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: s.cfg.DialTimeout}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.details.AccessToken)

	conn, res, err := dialer.DialContext(ctx, s.details.URL, header)
	if err != nil {
		if res != nil {
			return nil, fmt.Errorf("dial %s: status %d: %w", s.details.URL, res.StatusCode, err)
		}
		return nil, fmt.Errorf("dial %s: %w", s.details.URL, err)
	}
	return conn, nil
}

// PublishData sends a payload over the reliable data channel.
func (s *WSSession) PublishData(payload []byte) error {
	if s.State() != StateConnected {
		return ErrNotConnected
	}
	return s.writeFrame(signalFrame{Type: frameData, Payload: payload})
}

func (s *WSSession) writeFrame(f signalFrame) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn == nil {
		return ErrNotConnected
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, raw)
}

func (s *WSSession) readLoop() {
	defer close(s.done)
	for {
		s.writeMu.Lock()
		conn := s.conn
		s.writeMu.Unlock()
		if conn == nil {
			return
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			if s.runCtx.Err() != nil {
				return
			}
			if !recoverable(err) || !s.reconnect() {
				s.setState(StateDisconnected)
				return
			}
			continue
		}

		var f signalFrame
		if err := json.Unmarshal(raw, &f); err != nil {
			log.Printf("realtime: dropping malformed frame: %v", err)
			continue
		}
		if f.Type == frameData {
			s.dispatchData(f.Payload)
		}
	}
}

// reconnect retries the dial with capped exponential backoff. Returns true
// once a fresh connection is live again.
func (s *WSSession) reconnect() bool {
	if !s.setState(StateReconnecting) {
		return false
	}
	for attempt := 0; attempt < s.cfg.ReconnectAttempts; attempt++ {
		wait := reliability.ExponentialBackoff(attempt, s.cfg.BackoffBase, s.cfg.BackoffCap)
		select {
		case <-s.runCtx.Done():
			return false
		case <-time.After(wait):
		}

		dialCtx, cancel := context.WithTimeout(s.runCtx, s.cfg.DialTimeout)
		conn, err := s.dial(dialCtx)
		cancel()
		if err != nil {
			log.Printf("realtime: reconnect attempt %d failed: %v", attempt+1, err)
			continue
		}

		s.writeMu.Lock()
		old := s.conn
		s.conn = conn
		s.writeMu.Unlock()
		if old != nil {
			old.Close()
		}

		if err := s.writeFrame(signalFrame{
			Type:     frameJoin,
			Room:     s.details.RoomName,
			Identity: s.details.Identity,
		}); err != nil {
			log.Printf("realtime: rejoin failed: %v", err)
			continue
		}
		return s.setState(StateConnected)
	}
	return false
}

func (s *WSSession) pingLoop() {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.runCtx.Done():
			return
		case <-ticker.C:
			if s.State() != StateConnected {
				continue
			}
			_ = s.writeFrame(signalFrame{Type: framePing})
		}
	}
}

// Close tears the session down as a single action: the connection, its data
// channel, and the read loop all go together.
func (s *WSSession) Close() error {
	if s.cancel != nil {
		s.cancel()
	}

	s.writeMu.Lock()
	conn := s.conn
	s.conn = nil
	s.writeMu.Unlock()

	s.setState(StateDisconnected)
	if conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	err := conn.Close()

	if s.done != nil {
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
		}
	}
	return err
}

func recoverable(err error) bool {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return reliability.IsRecoverableClose(ce.Code)
	}
	// Plain network errors (reset, EOF) are transient by default.
	return true
}
