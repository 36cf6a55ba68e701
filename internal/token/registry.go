package token

import (
	"context"
	"sync"
	"time"
)

// IssuedSession records one minted credential for observability. The server
// never needs it to serve requests; it only feeds the active-sessions gauge
// and expiry accounting.
type IssuedSession struct {
	RoomName  string    `json:"room_name"`
	Identity  string    `json:"identity"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Registry tracks credentials that have not yet expired.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*IssuedSession
	onExpire func(IssuedSession)
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*IssuedSession)}
}

func (r *Registry) SetExpireHook(hook func(IssuedSession)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onExpire = hook
}

// Record remembers a freshly issued credential, keyed by room name. Room
// names are probabilistically unique, so a collision simply refreshes the
// entry.
func (r *Registry) Record(d ConnectionDetails, ttl time.Duration) {
	now := time.Now().UTC()
	s := &IssuedSession{
		RoomName:  d.RoomName,
		Identity:  d.Identity,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[d.RoomName] = s
}

func (r *Registry) ActiveCount() int {
	now := time.Now().UTC()
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, s := range r.sessions {
		if s.ExpiresAt.After(now) {
			count++
		}
	}
	return count
}

// StartJanitor prunes expired entries periodically until ctx is done.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.pruneExpired()
			}
		}
	}()
}

func (r *Registry) pruneExpired() {
	now := time.Now().UTC()
	var expired []IssuedSession

	r.mu.Lock()
	for room, s := range r.sessions {
		if s.ExpiresAt.After(now) {
			continue
		}
		expired = append(expired, *s)
		delete(r.sessions, room)
	}
	hook := r.onExpire
	r.mu.Unlock()

	if hook != nil {
		for _, s := range expired {
			hook(s)
		}
	}
}
