package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/config"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/infra"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/repository"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/router"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/scheduler"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Daily life-stage re-evaluation. Wired here (composition root) with its
	// own service instance so the job runs independently of HTTP traffic.
	cuySvc := service.NewCuyService(repository.NewCuyRepository(db))
	sched := scheduler.New(cuySvc, log.Logger)
	if err := sched.Start(cfg.ReevaluacionCron); err != nil {
		log.Fatal().Err(err).Str("cron", cfg.ReevaluacionCron).Msg("invalid cron spec")
	}
	defer sched.Stop()

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Granja backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
