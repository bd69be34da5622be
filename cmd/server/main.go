package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tradecore/internal/config"
	"tradecore/internal/infra"
	"tradecore/internal/repository"
	"tradecore/internal/router"
	"tradecore/internal/service"
	"tradecore/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background jobs: periodic database snapshots and the audit janitor.
	backupMgr := infra.NewBackupManager(cfg.DBPath, cfg.BackupDir, cfg.BackupRetentionDays, log.Logger)
	worker.StartBackupCron(ctx, worker.BackupCronConfig{
		Manager:  backupMgr,
		Interval: time.Duration(cfg.BackupIntervalHours) * time.Hour,
	})

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db))
	worker.StartRetentionCron(ctx, worker.RetentionCronConfig{
		Audit:        auditSvc,
		RetentionAge: time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour,
	})

	r := router.New(cfg, db, backupMgr)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("tradecore backend listening on :%d", cfg.Port)
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
