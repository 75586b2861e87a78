package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/svebrant/product-api-assignment/internal/domain"
	"github.com/svebrant/product-api-assignment/internal/logger"
	"github.com/svebrant/product-api-assignment/internal/metrics"
	"github.com/svebrant/product-api-assignment/internal/repository"
	"github.com/svebrant/product-api-assignment/internal/source"
)

const (
	// DefaultDryRunDelay simulates processing time for dry runs
	DefaultDryRunDelay = 500 * time.Millisecond

	// queueChunkMultiplier sizes the default queue as workers*chunkSize*multiplier
	queueChunkMultiplier = 4
)

// Files names the source files for each entity kind.
type Files struct {
	Products  string
	Discounts string
}

// OrchestratorConfig holds the process-wide settings of the orchestrator.
type OrchestratorConfig struct {
	Files            Files
	ProgressInterval time.Duration
	// QueueCapacity bounds the work queue; zero derives it from the job config.
	QueueCapacity   int
	MaxErrorSamples int
	DryRunDelay     time.Duration
}

// Orchestrator runs one ingestion job end to end.
type Orchestrator struct {
	jobs   repository.JobRepository
	sink   RecordSink
	source source.LineSource
	cfg    OrchestratorConfig
	logger *slog.Logger

	mu     sync.Mutex
	active map[string]struct{}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(jobs repository.JobRepository, sink RecordSink, src source.LineSource, cfg OrchestratorConfig, logger *slog.Logger) *Orchestrator {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}
	if cfg.DryRunDelay < 0 {
		cfg.DryRunDelay = 0
	}
	return &Orchestrator{
		jobs:   jobs,
		sink:   sink,
		source: src,
		cfg:    cfg,
		logger: logger,
		active: make(map[string]struct{}),
	}
}

// ActiveJobs returns the ids of jobs currently being run.
func (o *Orchestrator) ActiveJobs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	ids := make([]string, 0, len(o.active))
	for id := range o.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (o *Orchestrator) track(id string) func() {
	o.mu.Lock()
	o.active[id] = struct{}{}
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		delete(o.active, id)
		o.mu.Unlock()
	}
}

// Run drives jobID to Completed or Failed. It returns domain.ErrJobNotFound
// for an unknown id and the triggering error when the job failed.
func (o *Orchestrator) Run(ctx context.Context, jobID string) error {
	job, err := o.jobs.FindByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", jobID, err)
	}
	if job == nil {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}

	ctx = logger.ContextWithRequestID(ctx, jobID)
	log := o.logger.With("job_id", jobID, "mode", job.Mode)
	defer o.track(jobID)()

	mode := string(job.Mode)
	metrics.StartJob(mode)
	defer metrics.EndJob(mode)
	timer := metrics.NewTimer()

	log.Info("Processing ingestion job",
		"workers", job.Workers, "chunk_size", job.ChunkSize, "retries", job.Retries,
		"fail_fast", job.FailFast, "dry_run", job.DryRun)

	files := o.filesFor(job.Mode)
	discovered := job.Mode.FileCount()
	acc := NewAccumulator(o.cfg.MaxErrorSamples)

	processed, runErr := o.execute(ctx, job, files, acc, log)

	// Final writes must land even when ctx was cancelled by shutdown.
	writeCtx := context.WithoutCancel(ctx)
	snap := acc.Snapshot()
	final := snap.Progress()
	final.FilesDiscovered = &discovered
	final.FilesProcessed = &processed
	status := domain.JobStatusCompleted
	if runErr != nil {
		status = domain.JobStatusFailed
		final.ErrorMessage = domain.Ptr(runErr.Error())
	}

	if _, err := o.jobs.UpdateProgress(writeCtx, jobID, final); err != nil {
		log.Error("Failed to persist final progress", "error", err)
	}
	ok, err := o.jobs.UpdateStatus(writeCtx, jobID, status)
	switch {
	case err != nil:
		log.Error("Failed to set final status", "status", status, "error", err)
		if runErr == nil {
			runErr = fmt.Errorf("set status %s: %w", status, err)
		}
	case !ok:
		log.Warn("Final status not applied, job was already finished elsewhere", "status", status)
	}

	metrics.ObserveJobCompletion(mode, string(status), timer.Elapsed().Seconds())

	if runErr != nil {
		log.Error("Ingestion job failed", "error", runErr, "summary", snap.Summary(job.DryRun))
		return runErr
	}
	log.Info("Ingestion job completed",
		"summary", snap.Summary(job.DryRun),
		"elapsed", timer.Elapsed().Round(time.Millisecond))
	return nil
}

// execute performs the steps between loading the job and its final write
// and returns the number of files fully processed.
func (o *Orchestrator) execute(ctx context.Context, job *domain.IngestionJob, files []SourceFile, acc *Accumulator, log *slog.Logger) (int, error) {
	if _, err := o.jobs.UpdateProgress(ctx, job.ID, domain.ProgressUpdate{
		FilesDiscovered: domain.Ptr(job.Mode.FileCount()),
		FilesProcessed:  domain.Ptr(0),
	}); err != nil {
		return 0, fmt.Errorf("write initial progress: %w", err)
	}

	ok, err := o.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusStarted)
	if err != nil {
		return 0, fmt.Errorf("mark job started: %w", err)
	}
	if !ok {
		return 0, fmt.Errorf("mark job started: %w", domain.ErrInvalidTransition)
	}

	if job.DryRun {
		err = o.dryRun(ctx, files, acc, log)
	} else {
		err = o.process(ctx, job, files, acc, log)
	}
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

func (o *Orchestrator) dryRun(ctx context.Context, files []SourceFile, acc *Accumulator, log *slog.Logger) error {
	for _, f := range files {
		n, err := CountLines(ctx, o.source, f.ID)
		if err != nil {
			return err
		}
		acc.Set(f.Kind, domain.EntitySummary{Parsed: n, Ingested: n})
		log.Info("Dry run counted lines", "file", f.ID, "entity", f.Kind, "lines", n)
	}

	select {
	case <-time.After(o.cfg.DryRunDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// process runs producers, workers and the reporter until the queue drains
// or the first error cancels them all.
func (o *Orchestrator) process(ctx context.Context, job *domain.IngestionJob, files []SourceFile, acc *Accumulator, log *slog.Logger) error {
	queue := make(chan domain.WorkItem, o.queueCapacity(job.JobConfig))
	defer metrics.QueueDepth.Set(0)

	producer := NewProducer(o.source, log)
	pool := NewPool(job.JobConfig, o.sink, acc, log)
	reporter := NewReporter(o.jobs, job.ID, acc, o.cfg.ProgressInterval, job.DryRun, log)

	reportCtx, stopReporter := context.WithCancel(ctx)
	reportDone := make(chan struct{})
	go func() {
		defer close(reportDone)
		reporter.Run(reportCtx)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return producer.ProduceAll(gctx, files, queue) })
	g.Go(func() error { return pool.Run(gctx, queue) })
	err := g.Wait()

	stopReporter()
	<-reportDone
	return err
}

func (o *Orchestrator) queueCapacity(cfg domain.JobConfig) int {
	if o.cfg.QueueCapacity > 0 {
		return o.cfg.QueueCapacity
	}
	return max(cfg.Workers, 1) * max(cfg.ChunkSize, 1) * queueChunkMultiplier
}

func (o *Orchestrator) filesFor(mode domain.IngestMode) []SourceFile {
	files := make([]SourceFile, 0, mode.FileCount())
	if mode.Includes(domain.EntityProduct) {
		files = append(files, SourceFile{ID: o.cfg.Files.Products, Kind: domain.EntityProduct})
	}
	if mode.Includes(domain.EntityDiscount) {
		files = append(files, SourceFile{ID: o.cfg.Files.Discounts, Kind: domain.EntityDiscount})
	}
	return files
}
