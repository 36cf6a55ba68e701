package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ent0n29/voicedesk/internal/prefs"
	"github.com/ent0n29/voicedesk/internal/voices"
)

type preferenceResponse struct {
	Identity string `json:"identity"`
	VoiceID  string `json:"voice_id"`
	Stored   bool   `json:"stored"`
}

func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		respondError(w, http.StatusBadRequest, "missing identity")
		return
	}

	voiceID, err := s.prefs.VoiceFor(r.Context(), identity)
	if errors.Is(err, prefs.ErrNotFound) {
		respondJSON(w, http.StatusOK, preferenceResponse{
			Identity: identity,
			VoiceID:  voices.DefaultVoiceID,
			Stored:   false,
		})
		return
	}
	if err != nil {
		log.Printf("read voice preference: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read preference")
		return
	}
	respondJSON(w, http.StatusOK, preferenceResponse{Identity: identity, VoiceID: voiceID, Stored: true})
}

type putPreferenceRequest struct {
	VoiceID string `json:"voiceId"`
}

func (s *Server) handlePutPreference(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		respondError(w, http.StatusBadRequest, "missing identity")
		return
	}

	var req putPreferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, ok := voices.Find(req.VoiceID)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown voice id")
		return
	}

	if err := s.prefs.SetVoice(r.Context(), identity, v.ID); err != nil {
		log.Printf("save voice preference: %v", err)
		s.metrics.PreferenceWrites.WithLabelValues("error").Inc()
		respondError(w, http.StatusInternalServerError, "failed to save preference")
		return
	}
	s.metrics.PreferenceWrites.WithLabelValues("ok").Inc()
	respondJSON(w, http.StatusOK, preferenceResponse{Identity: identity, VoiceID: v.ID, Stored: true})
}
