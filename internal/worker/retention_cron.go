package worker

// retention_cron.go
// Background goroutine that purges audit entries older than the configured
// retention window. Runs daily; the audit trail stays append-only from the
// application's point of view, only this janitor deletes rows.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tradecore/internal/service"
)

const retentionTickInterval = 24 * time.Hour

// RetentionCronConfig holds the dependencies for the audit retention goroutine.
type RetentionCronConfig struct {
	Audit        service.AuditService
	RetentionAge time.Duration
}

// StartRetentionCron launches a goroutine that purges expired audit entries
// once a day, with an immediate first pass. It respects the context for
// graceful shutdown.
func StartRetentionCron(ctx context.Context, cfg RetentionCronConfig) {
	go func() {
		ticker := time.NewTicker(retentionTickInterval)
		defer ticker.Stop()

		log.Info().Dur("retention", cfg.RetentionAge).Msg("retention_cron: started")

		purgeAudit(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retention_cron: shutting down")
				return
			case <-ticker.C:
				purgeAudit(ctx, cfg)
			}
		}
	}()
}

func purgeAudit(ctx context.Context, cfg RetentionCronConfig) {
	deleted, err := cfg.Audit.PurgeOlderThan(ctx, cfg.RetentionAge)
	if err != nil {
		log.Error().Err(err).Msg("retention_cron: purge failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("retention_cron: audit entries purged")
	}
}
