package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ent0n29/voicedesk/internal/agent"
	"github.com/ent0n29/voicedesk/internal/config"
	"github.com/ent0n29/voicedesk/internal/observability"
	"github.com/ent0n29/voicedesk/internal/prefs"
	"github.com/ent0n29/voicedesk/internal/token"
)

type Server struct {
	cfg      config.Config
	issuer   *token.Issuer
	registry *token.Registry
	agent    *agent.Client
	prefs    prefs.Store
	metrics  *observability.Metrics
}

func New(cfg config.Config, issuer *token.Issuer, registry *token.Registry, agentClient *agent.Client, store prefs.Store, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		issuer:   issuer,
		registry: registry,
		agent:    agentClient,
		prefs:    store,
		metrics:  metrics,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/api/token", s.handleIssueToken)
	r.Post("/api/agent/init", s.handleAgentInit)
	r.Post("/api/agent/message", s.handleAgentMessage)
	r.Get("/api/voices", s.handleListVoices)
	r.Get("/api/preferences/{identity}/voice", s.handleGetPreference)
	r.Put("/api/preferences/{identity}/voice", s.handlePutPreference)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": s.registry.ActiveCount(),
	})
}

// errorResponse is the JSON error envelope. Details and Hint are only set for
// configuration errors on the token route.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	Hint    string   `json:"hint,omitempty"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
