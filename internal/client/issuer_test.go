package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTokenIssuerParsesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/token" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["participantName"] != "Ava" {
			t.Errorf("participantName = %q", req["participantName"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken":"t1","url":"wss://x","roomName":"voice-chat-abc123","identity":"Ava"}`))
	}))
	defer srv.Close()

	d, err := NewHTTPTokenIssuer(srv.URL, time.Second).IssueToken(context.Background(), "Ava")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if d.AccessToken != "t1" || d.URL != "wss://x" || d.RoomName != "voice-chat-abc123" || d.Identity != "Ava" {
		t.Fatalf("details = %+v", d)
	}
}

func TestHTTPTokenIssuerSurfacesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Server configuration error","details":["LIVEKIT_URL"]}`))
	}))
	defer srv.Close()

	_, err := NewHTTPTokenIssuer(srv.URL, time.Second).IssueToken(context.Background(), "Ava")
	if err == nil || err.Error() != "Server configuration error" {
		t.Fatalf("IssueToken() error = %v, want envelope message verbatim", err)
	}
}

func TestHTTPTokenIssuerFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not json", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPTokenIssuer(srv.URL, time.Second).IssueToken(context.Background(), "Ava")
	if err == nil || err.Error() != fallbackIssueError {
		t.Fatalf("IssueToken() error = %v, want fixed fallback", err)
	}
}
