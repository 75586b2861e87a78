// Package app wires configuration into the stores, sinks, sources and
// pipeline components shared by the server and the operator CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/svebrant/product-api-assignment/internal/client"
	"github.com/svebrant/product-api-assignment/internal/config"
	"github.com/svebrant/product-api-assignment/internal/infrastructure/database"
	"github.com/svebrant/product-api-assignment/internal/ingest"
	"github.com/svebrant/product-api-assignment/internal/repository"
	"github.com/svebrant/product-api-assignment/internal/scheduler"
	"github.com/svebrant/product-api-assignment/internal/service"
	"github.com/svebrant/product-api-assignment/internal/sink"
	"github.com/svebrant/product-api-assignment/internal/source"
	"github.com/svebrant/product-api-assignment/internal/validator"
)

// App holds the open connections and the job store selected by configuration.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	Pool   *pgxpool.Pool
	Mongo  *mongo.Client
	Jobs   repository.JobRepository
	Checks map[string]database.Pinger

	validator *validator.Validator
}

// Open connects to Postgres, applies migrations when enabled and opens the
// configured job store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		cfg:       cfg,
		logger:    logger,
		Checks:    make(map[string]database.Pinger),
		validator: validator.NewValidator(),
	}

	if cfg.RunMigrations {
		if err := database.Migrate(cfg.MigrationsPath, cfg.DatabaseURL(), logger); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	pool, err := database.NewPostgres(ctx, database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.Pool = pool
	a.Checks["postgres"] = pool

	switch cfg.JobStore {
	case config.StoreMongo:
		mc, db, err := database.NewMongo(ctx, database.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.Mongo = mc
		a.Checks["mongo"] = database.MongoPinger(mc)

		jobs := repository.NewMongoJobRepository(db)
		if err := jobs.EnsureIndexes(ctx); err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("ensure job indexes: %w", err)
		}
		a.Jobs = jobs
	default:
		a.Jobs = repository.NewPostgresJobRepository(pool)
	}

	logger.Info("Opened stores", "job_store", cfg.JobStore, "discount_sink", cfg.DiscountSink, "source", cfg.SourceType)
	return a, nil
}

// JobService returns the job submission and query service.
func (a *App) JobService() *service.JobService {
	return service.NewJobService(a.Jobs, a.validator)
}

// Sink builds the record sink for the configured discount backend.
func (a *App) Sink() *sink.Sink {
	var discounts sink.DiscountApplier
	switch a.cfg.DiscountSink {
	case config.SinkHTTP:
		discounts = client.NewDiscountClient(client.DiscountClientConfig{
			BaseURL: a.cfg.DiscountServiceURL,
			Timeout: a.cfg.DiscountServiceTimeout,
		})
	default:
		discounts = sink.NewRepositoryApplier(repository.NewPostgresDiscountRepository(a.Pool))
	}
	return sink.New(repository.NewPostgresProductRepository(a.Pool), discounts, a.validator)
}

// Source builds the line source for the configured backend.
func (a *App) Source(ctx context.Context) (source.LineSource, error) {
	return NewSource(ctx, a.cfg)
}

// NewSource builds the line source selected by cfg.
func NewSource(ctx context.Context, cfg *config.Config) (source.LineSource, error) {
	switch cfg.SourceType {
	case config.SourceS3:
		s, err := source.NewS3Source(ctx, source.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("create s3 source: %w", err)
		}
		return s, nil
	case config.SourceFile:
		return source.NewDirSource(cfg.SourceDir), nil
	}
	return nil, fmt.Errorf("unknown source type %q", cfg.SourceType)
}

// OrchestratorConfig maps configuration onto the orchestrator settings.
func OrchestratorConfig(cfg *config.Config) ingest.OrchestratorConfig {
	return ingest.OrchestratorConfig{
		Files: ingest.Files{
			Products:  cfg.ProductsFile,
			Discounts: cfg.DiscountsFile,
		},
		ProgressInterval: cfg.ProgressInterval,
		QueueCapacity:    cfg.QueueCapacity,
		MaxErrorSamples:  cfg.MaxErrorSamples,
		DryRunDelay:      cfg.DryRunDelay,
	}
}

// Pipeline builds the orchestrator and the scheduler that drives it.
func (a *App) Pipeline(ctx context.Context) (*ingest.Orchestrator, *scheduler.Scheduler, error) {
	src, err := a.Source(ctx)
	if err != nil {
		return nil, nil, err
	}

	orch := ingest.NewOrchestrator(a.Jobs, a.Sink(), src, OrchestratorConfig(a.cfg), a.logger)
	sched := scheduler.New(a.Jobs, orch, a.cfg.SchedulerPollInterval, a.logger)
	return orch, sched, nil
}

// Close releases every connection opened by Open.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongo: %w", err))
		}
		a.Mongo = nil
	}
	if a.Pool != nil {
		a.Pool.Close()
		a.Pool = nil
	}
	return errors.Join(errs...)
}
