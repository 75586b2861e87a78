// Package scheduler picks pending ingestion jobs one at a time and hands them
// to a JobRunner.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/metrics"
	"github.com/svebrant/product-api-assignment/internal/repository"
)

const (
	// DefaultPollInterval is the time between poll cycles.
	DefaultPollInterval = 5 * time.Second

	// ShutdownMessage is recorded on jobs failed by a shutdown.
	ShutdownMessage = "interrupted by shutdown"
	// OrphanMessage is recorded on jobs left started by a previous process.
	OrphanMessage = "interrupted: process restarted while job was running"
)

// JobRunner runs a single job to a terminal status.
type JobRunner interface {
	Run(ctx context.Context, jobID string) error
}

// Scheduler polls the job store and runs at most one job at a time.
type Scheduler struct {
	jobs     repository.JobRepository
	runner   JobRunner
	interval time.Duration
	logger   *slog.Logger

	polling atomic.Bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	stop    chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// New creates a Scheduler.
func New(jobs repository.JobRepository, runner JobRunner, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{
		jobs:     jobs,
		runner:   runner,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start fails jobs orphaned by a previous process and starts polling.
// The first poll happens immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return fmt.Errorf("scheduler already started")
	}
	if s.stopped {
		return fmt.Errorf("scheduler stopped")
	}

	if n := s.failStarted(ctx, OrphanMessage); n > 0 {
		s.logger.Warn("Recovered orphaned ingestion jobs", "count", n)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.logger.Info("Starting ingestion job scheduler", "poll_interval", s.interval)
	s.wg.Add(1)
	go s.loop(runCtx)
	return nil
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick starts a poll cycle in the background so a long job never delays the ticker.
func (s *Scheduler) tick(ctx context.Context) {
	if s.polling.Load() {
		metrics.ObservePoll(metrics.PollBusy)
		s.logger.Debug("Poll cycle already in flight, skipping")
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.PollOnce(ctx)
	}()
}

// PollOnce runs one poll cycle synchronously. It returns false without doing
// anything when another cycle is in flight.
func (s *Scheduler) PollOnce(ctx context.Context) bool {
	if !s.polling.CompareAndSwap(false, true) {
		metrics.ObservePoll(metrics.PollBusy)
		return false
	}
	defer s.polling.Store(false)

	metrics.ObservePoll(s.poll(ctx))
	return true
}

func (s *Scheduler) poll(ctx context.Context) string {
	started, err := s.jobs.FindByStatus(ctx, domain.JobStatusStarted)
	if err != nil {
		s.logger.Error("Failed to look up running jobs", "error", err)
		return metrics.PollError
	}
	if len(started) > 0 {
		s.logger.Debug("Job already running, skipping this poll cycle", "running", len(started))
		return metrics.PollActive
	}

	pending, err := s.jobs.FindByStatus(ctx, domain.JobStatusPending)
	if err != nil {
		s.logger.Error("Failed to look up pending jobs", "error", err)
		return metrics.PollError
	}
	if len(pending) == 0 {
		return metrics.PollIdle
	}

	job := pending[0]
	log := s.logger.With("job_id", job.ID)

	// Claims happen under mu so Stop never lists started jobs while one is
	// being claimed, and no claim follows once Stop has begun.
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		log.Debug("Scheduler stopping, leaving job pending")
		return metrics.PollStopped
	}
	ok, err := s.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusStarted)
	s.mu.Unlock()
	if err != nil {
		log.Error("Failed to mark job started", "error", err)
		return metrics.PollError
	}
	if !ok {
		log.Info("Job was claimed elsewhere, skipping")
		return metrics.PollLost
	}

	log.Info("Starting to process pending ingestion job")
	runErr := s.runner.Run(ctx, job.ID)

	final := domain.JobStatusCompleted
	if runErr != nil {
		final = domain.JobStatusFailed
		log.Error("Failed to process ingestion job", "error", runErr)
	} else {
		log.Info("Successfully completed ingestion job")
	}
	if _, err := s.jobs.UpdateStatus(context.WithoutCancel(ctx), job.ID, final); err != nil {
		log.Error("Failed to update job status", "status", final, "error", err)
	}
	return metrics.PollRan
}

// Stop stops polling, fails every started job with ShutdownMessage, cancels
// the running job and waits for it until ctx expires. Pending jobs are left
// for the next Start.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	close(s.stop)
	cancel := s.cancel
	s.mu.Unlock()

	s.logger.Info("Stopping ingestion job scheduler")
	if n := s.failStarted(ctx, ShutdownMessage); n > 0 {
		s.logger.Info("Marked running ingestion jobs as failed due to shutdown", "count", n)
	}

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Ingestion job scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running job: %w", ctx.Err())
	}
}

// failStarted marks every started job failed with msg and returns how many
// were marked.
func (s *Scheduler) failStarted(ctx context.Context, msg string) int {
	started, err := s.jobs.FindByStatus(ctx, domain.JobStatusStarted)
	if err != nil {
		s.logger.Error("Failed to look up running jobs", "error", err)
		return 0
	}

	failed := 0
	for _, job := range started {
		log := s.logger.With("job_id", job.ID)
		if _, err := s.jobs.UpdateProgress(ctx, job.ID, domain.ProgressUpdate{ErrorMessage: domain.Ptr(msg)}); err != nil {
			log.Error("Failed to record failure reason", "error", err)
		}
		ok, err := s.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusFailed)
		if err != nil {
			log.Error("Failed to mark job failed", "error", err)
			continue
		}
		if ok {
			log.Warn("Marked ingestion job as failed", "reason", msg)
			failed++
		}
	}
	return failed
}
