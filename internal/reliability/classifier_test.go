package reliability

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestIsRecoverableClose(t *testing.T) {
	cases := []struct {
		code int
		want bool
	}{
		{websocket.CloseNormalClosure, false},
		{websocket.CloseGoingAway, false},
		{websocket.ClosePolicyViolation, false},
		{websocket.CloseAbnormalClosure, true},
		{websocket.CloseInternalServerErr, true},
		{websocket.CloseServiceRestart, true},
		{websocket.CloseTryAgainLater, true},
	}
	for _, tc := range cases {
		if got := IsRecoverableClose(tc.code); got != tc.want {
			t.Fatalf("IsRecoverableClose(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestExponentialBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	cap := time.Second

	if got := ExponentialBackoff(0, base, cap); got != base {
		t.Fatalf("attempt 0 backoff = %v, want %v", got, base)
	}
	if got := ExponentialBackoff(1, base, cap); got != 200*time.Millisecond {
		t.Fatalf("attempt 1 backoff = %v, want 200ms", got)
	}
	if got := ExponentialBackoff(10, base, cap); got != cap {
		t.Fatalf("attempt 10 backoff = %v, want cap %v", got, cap)
	}
}
