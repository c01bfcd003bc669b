package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShortageRecheckJob periodically rechecks shortage-flagged items against the
// stock oracle and clears flags for items whose stock has recovered. Runs
// every thirty seconds; flag maintenance bypasses the audit log.
type ShortageRecheckJob struct {
	handler commands.RecheckShortagesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewShortageRecheckJob creates a new job for shortage rechecks.
// Uses RecheckShortagesCommandHandler to process the sweep.
func NewShortageRecheckJob(handler commands.RecheckShortagesCommandHandler, logger *slog.Logger) *ShortageRecheckJob {
	return &ShortageRecheckJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "shortage_recheck_job"),
	}
}

// Start begins the shortage recheck job to run every thirty seconds.
func (j *ShortageRecheckJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewRecheckShortagesCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Shortage recheck command construction failed", "error", cmdErr)
			return
		}

		cleared, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Shortage recheck job failed", "error", handleErr)
			return
		}

		if cleared > 0 {
			j.logger.InfoContext(ctx, "Shortage flags cleared", "count", cleared)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shortage recheck job started (running every 30 seconds)")
	return nil
}

// Stop stops the shortage recheck job.
func (j *ShortageRecheckJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shortage recheck job stopped")
}
