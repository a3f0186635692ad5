package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/papersum/internal/api"
	"github.com/dgallion1/papersum/internal/config"
	"github.com/dgallion1/papersum/internal/fetch"
	"github.com/dgallion1/papersum/internal/pipeline"
	"github.com/dgallion1/papersum/internal/summarize"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the simplification collaborator; nil when no key is set.
	simp, err := summarize.NewFromConfig(cfg, log)
	if err != nil {
		log.Error("invalid summarizer", "error", err)
		os.Exit(1)
	}
	closer, _ := simp.(interface{ Close() })
	var stats *summarize.LLMStats
	if simp != nil {
		stats = summarize.NewLLMStats(cfg.StatsWindow)
		simp = summarize.WithStats(simp, stats)
		log.Info("summarizer configured", "model", simp.Model())
	} else {
		log.Warn("no summarizer configured; records will carry the placeholder summary")
	}

	// Initialize pipeline.
	fetcher := fetch.New(cfg, log)
	p := pipeline.New(fetcher, pipeline.NewAssembler(simp, cfg.SummaryTimeout, log), log)

	// Initialize HTTP server.
	srv := api.NewServer(p, simp, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.EutilsTimeout + cfg.FetchTimeout + cfg.SummaryTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		fetcher.Close()
		if closer != nil {
			closer.Close()
		}
	}()

	log.Info("starting papersum", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
