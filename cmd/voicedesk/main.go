package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ent0n29/voicedesk/internal/agent"
	"github.com/ent0n29/voicedesk/internal/config"
	"github.com/ent0n29/voicedesk/internal/httpapi"
	"github.com/ent0n29/voicedesk/internal/observability"
	"github.com/ent0n29/voicedesk/internal/prefs"
	"github.com/ent0n29/voicedesk/internal/token"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// The server still starts without media credentials; the token route
	// reports exactly what is missing on each request.
	if missing := cfg.MissingLiveKitVars(); len(missing) > 0 {
		log.Printf("warning: token issuance unavailable, missing: %v", missing)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	store, err := prefs.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("preference store init failed: %v", err)
	}
	defer store.Close()

	issuer := token.NewIssuer(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitAPISecret, cfg.TokenTTL)
	registry := token.NewRegistry()
	registry.SetExpireHook(func(_ token.IssuedSession) {
		metrics.ActiveSessions.Set(float64(registry.ActiveCount()))
	})

	agentClient := agent.NewClient(cfg.AgentBaseURL, cfg.AgentTimeout)

	api := httpapi.New(cfg, issuer, registry, agentClient, store, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	registry.StartJanitor(runCtx, 30*time.Second)

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
