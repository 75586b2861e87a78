package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/metrics"
)

// DefaultProgressInterval is how often progress is persisted while a job runs.
const DefaultProgressInterval = 5 * time.Second

// ProgressWriter persists partial job updates.
type ProgressWriter interface {
	UpdateProgress(ctx context.Context, id string, update domain.ProgressUpdate) (bool, error)
}

// Reporter periodically writes accumulator snapshots to the job store.
type Reporter struct {
	store    ProgressWriter
	jobID    string
	acc      *Accumulator
	interval time.Duration
	dryRun   bool
	logger   *slog.Logger
}

// NewReporter creates a Reporter for one job.
func NewReporter(store ProgressWriter, jobID string, acc *Accumulator, interval time.Duration, dryRun bool, logger *slog.Logger) *Reporter {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &Reporter{
		store:    store,
		jobID:    jobID,
		acc:      acc,
		interval: interval,
		dryRun:   dryRun,
		logger:   logger,
	}
}

// Run writes a snapshot every interval until ctx is done, then writes one
// final snapshot regardless of why ctx ended.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Flush(context.WithoutCancel(ctx))
			return
		case <-ticker.C:
			r.Flush(ctx)
		}
	}
}

// Flush writes the current snapshot once.
func (r *Reporter) Flush(ctx context.Context) {
	snap := r.acc.Snapshot()
	ok, err := r.store.UpdateProgress(ctx, r.jobID, snap.Progress())
	switch {
	case err != nil:
		metrics.ObserveProgressWrite(metrics.WriteError)
		r.logger.Warn("Failed to persist progress", "error", err)
		return
	case !ok:
		metrics.ObserveProgressWrite(metrics.WriteIgnored)
		r.logger.Debug("Progress write ignored, job is no longer running")
		return
	}
	metrics.ObserveProgressWrite(metrics.WriteOK)
	r.logger.Info("Progress update: " + snap.Summary(r.dryRun))
}
