package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dobrana/CheckSol-token/internal/analyzer"
	"github.com/dobrana/CheckSol-token/internal/collector"
	"github.com/dobrana/CheckSol-token/internal/config"
	"github.com/dobrana/CheckSol-token/internal/helius"
	"github.com/dobrana/CheckSol-token/internal/logger"
	"github.com/dobrana/CheckSol-token/internal/market"
	"github.com/dobrana/CheckSol-token/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info")
		var missingKey config.ErrMissingHeliusKey
		if errors.As(err, &missingKey) {
			log.Fatal().Msg("HELIUS_API_KEY is not configured. Get a free key at https://dev.helius.xyz and set it in your environment or .env file")
		}
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.LogLevel)

	chainClient := helius.NewClient(cfg.HeliusBaseURL, cfg.HeliusRPCURL, cfg.HeliusAPIKey, log)
	marketClient := market.NewClient(cfg.DexScreenerBaseURL, log)

	c := collector.New(chainClient, marketClient, log)
	a := analyzer.New(c, cfg.AnalysisTimeout, log)

	server := web.NewServer(web.ServerConfig{Host: cfg.Host, Port: cfg.Port}, a, log)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Web server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}
