package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Immortal215/flashdeck/internal/api"
	"github.com/Immortal215/flashdeck/internal/config"
	"github.com/Immortal215/flashdeck/internal/logger"
	"github.com/Immortal215/flashdeck/internal/services"
	"github.com/Immortal215/flashdeck/internal/store/sqlite"
	"github.com/Immortal215/flashdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("flashdeck server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("save_worker_count=%d", cfg.SaveWorkerCount)
	log.Debug("save_queue_size=%d", cfg.SaveQueueSize)
	log.Debug("stats_window_days=%d", cfg.StatsWindowDays)

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		db.Close()
	}()

	deckStore := sqlite.NewDeckStore(db)
	historyStore := sqlite.NewHistoryStore(db)

	savePool := worker.NewPool(cfg.SaveWorkerCount, cfg.SaveQueueSize)
	saver := services.NewAsyncSaver(savePool, deckStore, func(deckID string, err error) {
		// Sessions never see save failures; this hook is the only place
		// they surface.
		log.Error("async deck save failed: deck=%s: %v", deckID, err)
	})

	now := time.Now
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	srv := &api.Server{
		DeckService:   services.NewDeckService(deckStore, now, cfg.DefaultTargetDays),
		ReviewService: services.NewReviewService(deckStore, historyStore, saver, now, rng),
		StatsService:  services.NewStatsService(deckStore, historyStore, now, cfg.StatsWindowDays),
	}

	ctx, cancel := context.WithCancel(context.Background())
	savePool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending deck saves before closing the database. Stop runs the
	// queued jobs to completion; the context is cancelled only afterwards.
	savePool.Stop()
	cancel()

	log.Info("flashdeck server stopped")
}
