package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
)

// Fixed user-facing messages for upstream failures. The original cause stays
// in the server log.
const (
	initFailedMessage    = "Failed to initialize chat session"
	messageFailedMessage = "Failed to send message"
)

func (s *Server) handleAgentInit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := s.agent.Init(r.Context())
	s.metrics.ObserveProxyLatency("init", time.Since(start))
	if err != nil {
		log.Printf("agent init failed: %v", err)
		s.metrics.ProxyRequests.WithLabelValues("init", "error").Inc()
		respondError(w, http.StatusInternalServerError, initFailedMessage)
		return
	}
	s.metrics.ProxyRequests.WithLabelValues("init", "ok").Inc()
	respondRaw(w, http.StatusOK, body)
}

type agentMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

func (s *Server) handleAgentMessage(w http.ResponseWriter, r *http.Request) {
	var req agentMessageRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.SessionID) == "" {
		s.metrics.ProxyRequests.WithLabelValues("message", "bad_request").Inc()
		respondError(w, http.StatusBadRequest, "message and sessionId are required")
		return
	}

	start := time.Now()
	body, err := s.agent.Message(r.Context(), req.Message, req.SessionID)
	s.metrics.ObserveProxyLatency("message", time.Since(start))
	if err != nil {
		log.Printf("agent message failed: %v", err)
		s.metrics.ProxyRequests.WithLabelValues("message", "error").Inc()
		respondError(w, http.StatusInternalServerError, messageFailedMessage)
		return
	}
	s.metrics.ProxyRequests.WithLabelValues("message", "ok").Inc()
	respondRaw(w, http.StatusOK, body)
}
