// Replays one complete simulated training session against a running server so
// a local analytics dashboard has data to show: landing page, fake scan, fake
// cleanup with the standard threat list, quiz completion, educational debrief.
package main

import (
	"context"
	"flag"
	"log"

	"secure-sense/internal/config"
	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
	"secure-sense/internal/emitter"
	"secure-sense/internal/logger"
)

// The five threats the cleanup screen reports.
var demoThreats = []dto.ThreatPayload{
	{Name: "Trojan.Generic.KD.12345678", Type: "Trojan", Severity: "Critical"},
	{Name: "Adware.BrowserHelper.v2", Type: "Adware", Severity: "High"},
	{Name: "Spyware.NetworkMonitor", Type: "Spyware", Severity: "Critical"},
	{Name: "PUP.Optional.Toolbar", Type: "PUP", Severity: "Medium"},
	{Name: "Malware.CryptoMiner.XMR", Type: "Malware", Severity: "Critical"},
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8090", "Server base URL")
	sessions := flag.Int("sessions", 1, "Number of simulated sessions to replay")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	for i := 0; i < *sessions; i++ {
		// A fresh store per iteration gives each replay its own session id.
		tracker := emitter.NewTracker(*baseURL, emitter.NewMemorySessionStore())
		log.Printf("Replaying session %s", tracker.SessionID())

		tracker.Navigate(ctx, "/")

		tracker.Navigate(ctx, "/scan")
		tracker.TrackEvent(ctx, domain.EventScanningStarted, nil)

		tracker.Navigate(ctx, "/cleanup")
		tracker.TrackThreats(ctx, demoThreats)
		tracker.RemoveThreats(ctx)
		tracker.TrackEvent(ctx, domain.EventCleanupComplete, nil)

		tracker.Navigate(ctx, "/quiz")
		tracker.TrackEvent(ctx, domain.EventQuizAnswer, map[string]interface{}{"question": 1, "correct": true})
		tracker.CompleteQuiz(ctx, 7, 10)
		tracker.TrackEvent(ctx, domain.EventQuizComplete, map[string]interface{}{"score": 7, "total": 10})

		tracker.Navigate(ctx, "/education")

		tracker.Flush()
	}

	log.Printf("Replayed %d session(s) against %s", *sessions, *baseURL)
}
