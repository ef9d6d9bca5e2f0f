// Package main is the entry point for the cash-flow analysis API.
//
// It serves NPV, IRR, CAGR and SMA calculations over HTTP. Configuration
// comes from environment variables (optionally a .env file); IRR solver
// defaults applied to requests that leave them unset are configurable.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/finanalysis/internal/config"
	"github.com/aristath/finanalysis/internal/modules/analysis"
	"github.com/aristath/finanalysis/internal/server"
	"github.com/aristath/finanalysis/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Float64("irr_guess", cfg.IRR.Guess).
		Int("irr_max_iterations", cfg.IRR.MaxIterations).
		Float64("irr_tolerance", cfg.IRR.Tolerance).
		Msg("Starting analysis service")

	analysisService := analysis.NewService(cfg.IRR.Options(), log)

	srv := server.New(server.Config{
		Log:      log,
		Port:     cfg.Port,
		DevMode:  cfg.DevMode,
		Analysis: analysisService,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight requests get up to 10 seconds to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
