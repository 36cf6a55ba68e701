package reliability

import (
	"time"

	"github.com/gorilla/websocket"
)

// IsRecoverableClose classifies websocket close codes that warrant a
// reconnect attempt. Deliberate closes (normal, going away, policy) end the
// session for good.
func IsRecoverableClose(code int) bool {
	switch code {
	case websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.ClosePolicyViolation,
		websocket.CloseUnsupportedData:
		return false
	default:
		return true
	}
}

// ExponentialBackoff computes a deterministic capped backoff duration.
func ExponentialBackoff(attempt int, base, cap time.Duration) time.Duration {
	if attempt <= 0 {
		return base
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	return d
}
