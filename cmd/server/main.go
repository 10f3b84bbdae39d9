package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"fibre-order-tracker/internal/api"
	"fibre-order-tracker/internal/config"
	"fibre-order-tracker/internal/engine"
	"fibre-order-tracker/internal/seed"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "fibre-order-tracker").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	eng := engine.New(log)
	if cfg.SeedDemoData {
		if err := seed.Apply(eng); err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
		log.Info().Int("jobs", len(seed.Jobs())).Msg("demo data loaded")
	}

	server := api.New(cfg, eng, log)
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.Router(),
	}

	log.Info().Str("port", cfg.HTTPPort).Str("env", cfg.Env).Msg("tracker listening")
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	_ = httpServer.Shutdown(shutdownCtx)
}
