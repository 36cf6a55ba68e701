package httpapi

import (
	"net/http"

	"github.com/ent0n29/voicedesk/internal/voices"
)

type listVoicesResponse struct {
	DefaultVoiceID string         `json:"default_voice_id"`
	Recommended    []voices.Voice `json:"recommended"`
	Voices         []voices.Voice `json:"voices"`
}

func (s *Server) handleListVoices(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, listVoicesResponse{
		DefaultVoiceID: voices.DefaultVoiceID,
		Recommended:    voices.Recommended(),
		Voices:         voices.All(),
	})
}
