package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ent0n29/voicedesk/internal/token"
)

// fallbackIssueError is shown when the server's error envelope carries no
// message of its own.
const fallbackIssueError = "failed to get connection details"

// HTTPTokenIssuer requests connection details from the voicedesk server.
type HTTPTokenIssuer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTokenIssuer(baseURL string, timeout time.Duration) *HTTPTokenIssuer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPTokenIssuer{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type issueRequest struct {
	ParticipantName string `json:"participantName,omitempty"`
}

type issueErrorEnvelope struct {
	Error string `json:"error"`
}

func (i *HTTPTokenIssuer) IssueToken(ctx context.Context, participantName string) (token.ConnectionDetails, error) {
	payload, err := json.Marshal(issueRequest{ParticipantName: participantName})
	if err != nil {
		return token.ConnectionDetails{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/api/token", bytes.NewReader(payload))
	if err != nil {
		return token.ConnectionDetails{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := i.client.Do(req)
	if err != nil {
		return token.ConnectionDetails{}, fmt.Errorf("request token: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return token.ConnectionDetails{}, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		// Surface the envelope's message verbatim where one exists.
		var envelope issueErrorEnvelope
		if json.Unmarshal(raw, &envelope) == nil && strings.TrimSpace(envelope.Error) != "" {
			return token.ConnectionDetails{}, errors.New(envelope.Error)
		}
		return token.ConnectionDetails{}, errors.New(fallbackIssueError)
	}

	var details token.ConnectionDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return token.ConnectionDetails{}, fmt.Errorf("decode connection details: %w", err)
	}
	if details.AccessToken == "" || details.URL == "" {
		return token.ConnectionDetails{}, errors.New(fallbackIssueError)
	}
	return details, nil
}
