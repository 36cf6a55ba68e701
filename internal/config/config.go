package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the voicedesk service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	// Media platform credentials. Deliberately not validated at load time:
	// their absence is reported per-request by the token route so the
	// response can name exactly which values are missing.
	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	TokenTTL time.Duration

	AgentBaseURL string
	AgentTimeout time.Duration

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "voicedesk"),
		LiveKitURL:       envTrimmed("LIVEKIT_URL"),
		LiveKitAPIKey:    envTrimmed("LIVEKIT_API_KEY"),
		LiveKitAPISecret: envTrimmed("LIVEKIT_API_SECRET"),
		AgentBaseURL:     envOrDefault("AGENT_BASE_URL", "http://localhost:8000"),
		DatabaseURL:      envTrimmed("DATABASE_URL"),
		ShutdownTimeout:  15 * time.Second,
		TokenTTL:         10 * time.Minute,
		AgentTimeout:     30 * time.Second,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL, err = durationFromEnv("APP_TOKEN_TTL", cfg.TokenTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.AgentTimeout, err = durationFromEnv("AGENT_TIMEOUT", cfg.AgentTimeout)
	if err != nil {
		return Config{}, err
	}

	if cfg.TokenTTL < time.Minute {
		return Config{}, fmt.Errorf("APP_TOKEN_TTL must be at least 1m")
	}
	if cfg.AgentTimeout <= 0 {
		return Config{}, fmt.Errorf("AGENT_TIMEOUT must be positive")
	}
	if strings.TrimSpace(cfg.AgentBaseURL) == "" {
		return Config{}, fmt.Errorf("AGENT_BASE_URL must not be empty")
	}

	return cfg, nil
}

// MissingLiveKitVars lists absent media-platform configuration values in
// checked order: url, key, secret. Empty means token issuance can proceed.
func (c Config) MissingLiveKitVars() []string {
	var missing []string
	if strings.TrimSpace(c.LiveKitURL) == "" {
		missing = append(missing, "LIVEKIT_URL")
	}
	if strings.TrimSpace(c.LiveKitAPIKey) == "" {
		missing = append(missing, "LIVEKIT_API_KEY")
	}
	if strings.TrimSpace(c.LiveKitAPISecret) == "" {
		missing = append(missing, "LIVEKIT_API_SECRET")
	}
	return missing
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}
