// Package metrics provides Prometheus metrics for observability.
// Metrics are organized by domain: HTTP requests, ingestion jobs, records, scheduling and database.
package metrics

import (
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "product_ingest"
)

var (
	// HTTP metrics - track request volume and latency on the ops server
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Job metrics - track ingestion job lifecycle
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "total",
			Help:      "Total number of finished ingestion jobs by mode and terminal status",
		},
		[]string{"mode", "status"},
	)

	JobsInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "in_progress",
			Help:      "Number of ingestion jobs currently running",
		},
		[]string{"mode"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Ingestion job duration in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"mode"},
	)

	// Record metrics - track records within jobs
	RecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "processed_total",
			Help:      "Total number of records processed by entity and result",
		},
		[]string{"entity", "result"},
	)

	RecordRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "retries_total",
			Help:      "Total number of retried record or batch attempts by entity",
		},
		[]string{"entity"},
	)

	BatchProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "batch_duration_seconds",
			Help:      "Sink call duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"entity", "operation"},
	)

	LinesRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "lines_read_total",
			Help:      "Total number of lines read from source files by entity",
		},
		[]string{"entity"},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Number of work items waiting in the queue of the running job",
		},
	)

	// Scheduler metrics
	SchedulerPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "polls_total",
			Help:      "Scheduler poll cycles by result",
		},
		[]string{"result"},
	)

	ProgressWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "progress_writes_total",
			Help:      "Progress snapshot writes by result",
		},
		[]string{"result"},
	)

	// Database metrics - track connection pool usage
	DBConnectionPoolSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Database connection pool stats",
		},
		[]string{"state"},
	)
)

// Scheduler poll results.
const (
	PollBusy     = "busy"
	PollActive   = "active_job"
	PollIdle     = "idle"
	PollRan      = "ran"
	PollLost     = "lost_race"
	PollError    = "error"
	PollStopped  = "stopped"
	WriteOK      = "ok"
	WriteIgnored = "ignored"
	WriteError   = "error"
)

// PoolStats is an interface for getting pool statistics
type PoolStats interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
}

// PoolStatsProvider is an interface for providing pool stats
type PoolStatsProvider interface {
	Stat() PoolStats
}

type pgxPoolAdapter struct {
	pool *pgxpool.Pool
}

func (a *pgxPoolAdapter) Stat() PoolStats {
	return a.pool.Stat()
}

// PoolStatsCollector collects database pool statistics periodically
type PoolStatsCollector struct {
	provider PoolStatsProvider
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewPoolStatsCollector creates a new pool stats collector
func NewPoolStatsCollector(pool *pgxpool.Pool) *PoolStatsCollector {
	return NewPoolStatsCollectorWithProvider(&pgxPoolAdapter{pool: pool})
}

// NewPoolStatsCollectorWithProvider creates a new pool stats collector with a custom provider
func NewPoolStatsCollectorWithProvider(provider PoolStatsProvider) *PoolStatsCollector {
	return &PoolStatsCollector{
		provider: provider,
		stopChan: make(chan struct{}),
	}
}

// Start begins collecting pool stats every interval
func (c *PoolStatsCollector) Start(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopChan:
				return
			}
		}
	}()
}

func (c *PoolStatsCollector) collect() {
	stats := c.provider.Stat()
	DBConnectionPoolSize.WithLabelValues("total").Set(float64(stats.TotalConns()))
	DBConnectionPoolSize.WithLabelValues("idle").Set(float64(stats.IdleConns()))
	DBConnectionPoolSize.WithLabelValues("in_use").Set(float64(stats.AcquiredConns()))
}

// Stop stops the pool stats collector. It is safe to call more than once.
func (c *PoolStatsCollector) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
}

// ObserveJobCompletion records metrics when a job reaches a terminal status
func ObserveJobCompletion(mode, status string, durationSeconds float64) {
	JobsTotal.WithLabelValues(mode, status).Inc()
	JobDuration.WithLabelValues(mode).Observe(durationSeconds)
}

// StartJob increments the in-progress gauge for a job
func StartJob(mode string) {
	JobsInProgress.WithLabelValues(mode).Inc()
}

// EndJob decrements the in-progress gauge for a job
func EndJob(mode string) {
	JobsInProgress.WithLabelValues(mode).Dec()
}

// ObserveRecord counts one resolved record
func ObserveRecord(entity, result string) {
	RecordsProcessed.WithLabelValues(entity, result).Inc()
}

// ObserveRetry counts one retried attempt
func ObserveRetry(entity string) {
	RecordRetries.WithLabelValues(entity).Inc()
}

// ObserveBatchDuration records the time taken by one sink call
func ObserveBatchDuration(entity, operation string, durationSeconds float64) {
	BatchProcessingDuration.WithLabelValues(entity, operation).Observe(durationSeconds)
}

// ObservePoll counts one scheduler poll cycle
func ObservePoll(result string) {
	SchedulerPolls.WithLabelValues(result).Inc()
}

// ObserveProgressWrite counts one progress snapshot write
func ObserveProgressWrite(result string) {
	ProgressWrites.WithLabelValues(result).Inc()
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer was created
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time since the timer was created
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}
