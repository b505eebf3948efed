package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "net/http/pprof"

	"github.com/vineetdaniels2108/rxnorm-api/config"
	"github.com/vineetdaniels2108/rxnorm-api/data"
	"github.com/vineetdaniels2108/rxnorm-api/enrichment"
	"github.com/vineetdaniels2108/rxnorm-api/logging"
	"github.com/vineetdaniels2108/rxnorm-api/rxnormparser"
	"github.com/vineetdaniels2108/rxnorm-api/scheduler"
	"github.com/vineetdaniels2108/rxnorm-api/server"
	"github.com/vineetdaniels2108/rxnorm-api/validation"
)

func main() {
	// Read the env variables from the working directory, falling back to the
	// executable directory when the service runs from elsewhere
	if err := godotenv.Load(); err != nil {
		if ex, exErr := os.Executable(); exErr == nil {
			if chErr := os.Chdir(filepath.Dir(ex)); chErr == nil {
				_ = godotenv.Load()
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions("logs", cfg.LogRetentionWeeks, cfg.MaxLogFileSize, cfg.SlogLevel())

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	parser := rxnormparser.NewRxNormParser(cfg.ReleaseDir)
	pipeline := enrichment.NewPipeline(cfg.EnrichWorkers)
	validator := validation.NewDataValidator()

	// Scheduler performs the initial load before scheduling refreshes, so a
	// failure here means the release directory is unusable
	sched := scheduler.NewScheduler(dataContainer, parser, pipeline)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, dataContainer, validator)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}

	logging.Info("Server exited gracefully")
}
