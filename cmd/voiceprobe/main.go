// Command voiceprobe exercises a running voicedesk server end to end: it
// fetches connection details, joins the room over the websocket transport, and
// drives a voice change through the data channel, printing round-trip timing.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ent0n29/voicedesk/internal/client"
	"github.com/ent0n29/voicedesk/internal/negotiator"
	"github.com/ent0n29/voicedesk/internal/realtime"
	"github.com/ent0n29/voicedesk/internal/token"
)

type options struct {
	serverURL   string
	displayName string
	voiceID     string
	preview     bool
	prefFile    string
	timeout     time.Duration
	verbose     bool
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "voiceprobe: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "voiceprobe: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var cfg options
	var timeoutMS int

	flag.StringVar(&cfg.serverURL, "server-url", "http://127.0.0.1:3001", "voicedesk base URL")
	flag.StringVar(&cfg.displayName, "name", "probe", "display name used for the session")
	flag.StringVar(&cfg.voiceID, "voice", "stella", "voice id to switch to")
	flag.BoolVar(&cfg.preview, "preview", false, "send a voice_preview instead of a voice_change")
	flag.StringVar(&cfg.prefFile, "pref-file", "", "optional file persisting the confirmed voice id")
	flag.IntVar(&timeoutMS, "timeout-ms", 10000, "overall probe timeout in milliseconds")
	flag.BoolVar(&cfg.verbose, "verbose", true, "print connection state transitions")
	flag.Parse()

	cfg.serverURL = strings.TrimRight(strings.TrimSpace(cfg.serverURL), "/")
	if cfg.serverURL == "" {
		return options{}, fmt.Errorf("server-url is required")
	}
	if strings.TrimSpace(cfg.displayName) == "" {
		return options{}, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(cfg.voiceID) == "" {
		return options{}, fmt.Errorf("voice is required")
	}
	if timeoutMS < 1000 {
		timeoutMS = 1000
	}
	cfg.timeout = time.Duration(timeoutMS) * time.Millisecond
	return cfg, nil
}

func run(cfg options) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()

	issuer := client.NewHTTPTokenIssuer(cfg.serverURL, cfg.timeout)
	factory := func(d token.ConnectionDetails) realtime.Session {
		return realtime.NewWSSession(d, realtime.WSConfig{})
	}
	c := client.New(issuer, factory, client.NoopAudioSink{})
	if cfg.verbose {
		c.OnConnectionState(func(st realtime.State) {
			fmt.Printf("voiceprobe: connection %s\n", st)
		})
	}

	if err := c.Start(ctx, cfg.displayName); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer func() { _ = c.Disconnect() }()

	details, _ := c.Details()
	if cfg.verbose {
		fmt.Printf("voiceprobe: joined room=%s identity=%s\n", details.RoomName, details.Identity)
	}

	var store negotiator.PreferenceStore
	if cfg.prefFile != "" {
		store = negotiator.FileStore{Path: cfg.prefFile}
	}
	neg := negotiator.New(c.Session(), store)
	neg.Bind(c.Session())

	if cfg.preview {
		if err := neg.Preview(cfg.voiceID); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		fmt.Printf("voiceprobe: preview sent voice=%s\n", cfg.voiceID)
		waitUntil(ctx, func() bool { return !neg.IsPreviewing() })
		return nil
	}

	start := time.Now()
	if err := neg.ChangeVoice(cfg.voiceID); err != nil {
		return fmt.Errorf("change voice: %w", err)
	}
	confirmed := waitUntil(ctx, func() bool {
		return neg.Current().ID == cfg.voiceID && !neg.IsChanging()
	})
	elapsed := time.Since(start)

	if !confirmed {
		if msg := neg.StatusMessage(); msg != "" {
			return fmt.Errorf("voice change rejected: %s", msg)
		}
		return fmt.Errorf("no confirmation for voice %s after %s (current=%s)", cfg.voiceID, elapsed.Round(time.Millisecond), neg.Current().ID)
	}
	fmt.Printf("voiceprobe: voice=%s confirmed in %s\n", neg.Current().ID, elapsed.Round(time.Millisecond))
	return nil
}

// waitUntil polls the condition until it holds or the context expires.
func waitUntil(ctx context.Context, cond func() bool) bool {
	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()
	for {
		if cond() {
			return true
		}
		select {
		case <-ctx.Done():
			return cond()
		case <-ticker.C:
		}
	}
}
