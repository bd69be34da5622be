package worker

// backup_cron.go
// Background goroutine that snapshots the database on a fixed interval and
// prunes archives past the retention window after each run.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tradecore/internal/infra"
)

// BackupCronConfig holds the dependencies for the backup goroutine.
type BackupCronConfig struct {
	Manager  *infra.BackupManager
	Interval time.Duration
}

// StartBackupCron launches a goroutine that takes a backup every Interval.
// It runs one snapshot immediately on start and respects the context for
// graceful shutdown.
func StartBackupCron(ctx context.Context, cfg BackupCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("backup_cron: started")

		runBackup(cfg.Manager)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("backup_cron: shutting down")
				return
			case <-ticker.C:
				runBackup(cfg.Manager)
			}
		}
	}()
}

func runBackup(m *infra.BackupManager) {
	info, err := m.Create()
	if err != nil {
		log.Error().Err(err).Msg("backup_cron: snapshot failed")
		return
	}
	log.Info().Str("archive", info.Name).Int64("size_bytes", info.SizeBytes).Msg("backup_cron: snapshot taken")

	if _, err := m.Cleanup(); err != nil {
		log.Warn().Err(err).Msg("backup_cron: cleanup failed")
	}
}
