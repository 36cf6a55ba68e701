// Package agent forwards chat requests to the externally hosted
// conversational agent backend. It never retries, caches, or validates the
// backend's response shape: whatever the backend returns is passed through.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the agent backend's chat endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type messageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// Init starts a new chat session on the backend and returns its JSON body
// verbatim.
func (c *Client) Init(ctx context.Context) ([]byte, error) {
	return c.post(ctx, "/api/chat/init", nil)
}

// Message forwards a chat message for an existing session and returns the
// backend's JSON body verbatim.
func (c *Client) Message(ctx context.Context, message, sessionID string) ([]byte, error) {
	payload, err := json.Marshal(messageRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.post(ctx, "/api/chat/message", payload)
}

func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(raw))
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, fmt.Errorf("agent backend status %d: %s", res.StatusCode, snippet)
	}
	return raw, nil
}
