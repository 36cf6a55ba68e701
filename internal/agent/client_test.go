package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInitPassesBodyThroughVerbatim(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat/init" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessionId":"s1","greeting":"hello","extra":{"untyped":true}}`))
	}))
	defer backend.Close()

	c := NewClient(backend.URL, time.Second)
	body, err := c.Init(context.Background())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	want := `{"sessionId":"s1","greeting":"hello","extra":{"untyped":true}}`
	if string(body) != want {
		t.Fatalf("body = %s, want %s", body, want)
	}
}

func TestMessageForwardsBothFields(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/message" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode forwarded body: %v", err)
		}
		if req["message"] != "where is my order" || req["sessionId"] != "s1" {
			t.Errorf("forwarded body = %v", req)
		}
		w.Write([]byte(`{"response":"on its way"}`))
	}))
	defer backend.Close()

	c := NewClient(backend.URL, time.Second)
	body, err := c.Message(context.Background(), "where is my order", "s1")
	if err != nil {
		t.Fatalf("Message() error = %v", err)
	}
	if string(body) != `{"response":"on its way"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestNonSuccessStatusIsError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent not initialized", http.StatusInternalServerError)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, time.Second)
	if _, err := c.Init(context.Background()); err == nil {
		t.Fatalf("Init() should fail on 500 from backend")
	}
}

func TestUnreachableBackendIsError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	if _, err := c.Init(context.Background()); err == nil {
		t.Fatalf("Init() should fail when backend is unreachable")
	}
}
