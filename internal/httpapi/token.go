package httpapi

import (
	"errors"
	"log"
	"net/http"
)

type issueTokenRequest struct {
	ParticipantName string `json:"participantName"`
}

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.metrics.TokenRequests.WithLabelValues("bad_request").Inc()
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Missing secrets are a server configuration problem, not a caller
	// error: name exactly what is absent.
	if missing := s.cfg.MissingLiveKitVars(); len(missing) > 0 {
		log.Printf("token request rejected, missing configuration: %v", missing)
		s.metrics.TokenRequests.WithLabelValues("config_error").Inc()
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Server configuration error",
			Details: missing,
			Hint:    "Set the listed environment variables and restart the server",
		})
		return
	}

	details, err := s.issuer.Issue(req.ParticipantName)
	if err != nil {
		log.Printf("token issuance failed: %v", err)
		s.metrics.TokenRequests.WithLabelValues("sign_error").Inc()
		respondError(w, http.StatusInternalServerError, "Failed to generate connection details")
		return
	}

	s.registry.Record(details, s.issuer.TTL())
	s.metrics.TokenRequests.WithLabelValues("issued").Inc()
	s.metrics.ActiveSessions.Set(float64(s.registry.ActiveCount()))

	respondJSON(w, http.StatusOK, details)
}
