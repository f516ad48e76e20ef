package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/adapters/backend"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/adapters/rest"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/config"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/core/services"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/poller"
	"github.com/MallikarjunMiragi/Global-Music-Trend-Genre-Popularity-Pipeline/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// Driven adapter: the trend backend client.
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client := backend.NewClient(httpClient, cfg.BackendURL,
		backend.WithRetry(cfg.Retry.MaxAttempts, time.Duration(cfg.Retry.BackoffMs)*time.Millisecond))

	// Optional preview analyzer pool. The sink is the dashboard itself,
	// so wiring happens in two steps.
	var analyze services.AnalyzeFunc
	var pool *worker.Pool
	var svc *services.Dashboard
	if cfg.Analyzer.Enabled {
		analyze = func(trackID, previewURL string) {
			pool.Submit(worker.Job{TrackID: trackID, PreviewURL: previewURL})
		}
	}

	svc = services.NewDashboard(client, analyze)

	if cfg.Analyzer.Enabled {
		pool = worker.NewPool(svc, cfg.Analyzer.QueueSize)
		pool.Start(cfg.Analyzer.Workers)
		defer pool.Stop()
	}

	// The poll loops own the data-refresh lifecycle.
	p := poller.New(svc, cfg.HealthInterval, cfg.RefreshInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go p.Run(ctx)

	// Driving adapter: the read-only view-model API.
	handler := rest.NewHandler(svc)

	log.Println("------------------------------------------------")
	log.Printf("🎵 Trend dashboard is running on %s", cfg.ListenAddr)
	log.Printf("   Backend: %s (health every %s, refresh every %s)",
		cfg.BackendURL, cfg.HealthInterval, cfg.RefreshInterval)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
