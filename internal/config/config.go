package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

// Job store backends.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Source backends.
const (
	SourceFile = "file"
	SourceS3   = "s3"
)

// Discount sink backends.
const (
	SinkPostgres = "postgres"
	SinkHTTP     = "http"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Database configuration
	DBHost              string
	DBPort              int
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	DBMaxConns          int32
	DBMinConns          int32
	DBMaxConnLifetime   time.Duration
	DBMaxConnIdleTime   time.Duration
	DBHealthCheckPeriod time.Duration
	RunMigrations       bool
	MigrationsPath      string

	// Job store configuration
	JobStore      string
	MongoURI      string
	MongoDatabase string

	// Source file configuration
	SourceType    string
	SourceDir     string
	ProductsFile  string
	DiscountsFile string
	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3Prefix      string
	S3AccessKey   string
	S3SecretKey   string
	S3UseSSL      bool

	// Discount sink configuration
	DiscountSink           string
	DiscountServiceURL     string
	DiscountServiceTimeout time.Duration

	// Default job configuration for submitted jobs
	WorkerPoolSize int
	BatchSize      int

	// Pipeline configuration
	SchedulerPollInterval time.Duration
	ProgressInterval      time.Duration
	QueueCapacity         int
	MaxErrorSamples       int
	DryRunDelay           time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogFile   string
}

var defaults = map[string]any{
	"SERVER_PORT":              "8080",
	"HTTP_READ_TIMEOUT":        30 * time.Second,
	"HTTP_WRITE_TIMEOUT":       30 * time.Second,
	"HTTP_IDLE_TIMEOUT":        120 * time.Second,
	"SHUTDOWN_TIMEOUT":         30 * time.Second,
	"DB_HOST":                  "localhost",
	"DB_PORT":                  5432,
	"DB_USER":                  "postgres",
	"DB_PASSWORD":              "postgres",
	"DB_NAME":                  "product_ingest",
	"DB_SSL_MODE":              "disable",
	"DB_MAX_CONNS":             25,
	"DB_MIN_CONNS":             5,
	"DB_MAX_CONN_LIFETIME":     time.Hour,
	"DB_MAX_CONN_IDLE_TIME":    30 * time.Minute,
	"DB_HEALTH_CHECK_PERIOD":   time.Minute,
	"RUN_MIGRATIONS":           true,
	"MIGRATIONS_PATH":          "file://migrations",
	"JOB_STORE":                StorePostgres,
	"MONGO_URI":                "mongodb://localhost:27017",
	"MONGO_DATABASE":           "product_ingest",
	"SOURCE_TYPE":              SourceFile,
	"SOURCE_DIR":               "./data",
	"PRODUCTS_FILE":            "products.ndjson",
	"DISCOUNTS_FILE":           "discounts.ndjson",
	"S3_ENDPOINT":              "",
	"S3_REGION":                "us-east-1",
	"S3_BUCKET":                "",
	"S3_PREFIX":                "",
	"S3_ACCESS_KEY":            "",
	"S3_SECRET_KEY":            "",
	"S3_USE_SSL":               false,
	"DISCOUNT_SINK":            SinkPostgres,
	"DISCOUNT_SERVICE_URL":     "http://localhost:8081",
	"DISCOUNT_SERVICE_TIMEOUT": 10 * time.Second,
	"WORKER_POOL_SIZE":         4,
	"BATCH_SIZE":               100,
	"SCHEDULER_POLL_INTERVAL":  5 * time.Second,
	"PROGRESS_INTERVAL":        5 * time.Second,
	"QUEUE_CAPACITY":           0,
	"MAX_ERROR_SAMPLES":        5,
	"DRY_RUN_DELAY":            500 * time.Millisecond,
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "json",
	"LOG_FILE":                 "",
}

// Load loads configuration from a .env file, if present, and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		ServerPort:             v.GetString("SERVER_PORT"),
		ReadTimeout:            v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:           v.GetDuration("HTTP_WRITE_TIMEOUT"),
		IdleTimeout:            v.GetDuration("HTTP_IDLE_TIMEOUT"),
		ShutdownTimeout:        v.GetDuration("SHUTDOWN_TIMEOUT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetInt("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSSLMode:              v.GetString("DB_SSL_MODE"),
		DBMaxConns:             v.GetInt32("DB_MAX_CONNS"),
		DBMinConns:             v.GetInt32("DB_MIN_CONNS"),
		DBMaxConnLifetime:      v.GetDuration("DB_MAX_CONN_LIFETIME"),
		DBMaxConnIdleTime:      v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
		DBHealthCheckPeriod:    v.GetDuration("DB_HEALTH_CHECK_PERIOD"),
		RunMigrations:          v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		JobStore:               strings.ToLower(v.GetString("JOB_STORE")),
		MongoURI:               v.GetString("MONGO_URI"),
		MongoDatabase:          v.GetString("MONGO_DATABASE"),
		SourceType:             strings.ToLower(v.GetString("SOURCE_TYPE")),
		SourceDir:              v.GetString("SOURCE_DIR"),
		ProductsFile:           v.GetString("PRODUCTS_FILE"),
		DiscountsFile:          v.GetString("DISCOUNTS_FILE"),
		S3Endpoint:             v.GetString("S3_ENDPOINT"),
		S3Region:               v.GetString("S3_REGION"),
		S3Bucket:               v.GetString("S3_BUCKET"),
		S3Prefix:               v.GetString("S3_PREFIX"),
		S3AccessKey:            v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:            v.GetString("S3_SECRET_KEY"),
		S3UseSSL:               v.GetBool("S3_USE_SSL"),
		DiscountSink:           strings.ToLower(v.GetString("DISCOUNT_SINK")),
		DiscountServiceURL:     v.GetString("DISCOUNT_SERVICE_URL"),
		DiscountServiceTimeout: v.GetDuration("DISCOUNT_SERVICE_TIMEOUT"),
		WorkerPoolSize:         v.GetInt("WORKER_POOL_SIZE"),
		BatchSize:              v.GetInt("BATCH_SIZE"),
		SchedulerPollInterval:  v.GetDuration("SCHEDULER_POLL_INTERVAL"),
		ProgressInterval:       v.GetDuration("PROGRESS_INTERVAL"),
		QueueCapacity:          v.GetInt("QUEUE_CAPACITY"),
		MaxErrorSamples:        v.GetInt("MAX_ERROR_SAMPLES"),
		DryRunDelay:            v.GetDuration("DRY_RUN_DELAY"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFormat:              strings.ToLower(v.GetString("LOG_FORMAT")),
		LogFile:                v.GetString("LOG_FILE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.WorkerPoolSize < 1 {
		return fmt.Errorf("WORKER_POOL_SIZE must be at least 1")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be at least 1")
	}
	if c.SchedulerPollInterval <= 0 {
		return fmt.Errorf("SCHEDULER_POLL_INTERVAL must be positive")
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("PROGRESS_INTERVAL must be positive")
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("QUEUE_CAPACITY must not be negative")
	}
	if c.MaxErrorSamples < 1 {
		return fmt.Errorf("MAX_ERROR_SAMPLES must be at least 1")
	}
	if c.DryRunDelay < 0 {
		return fmt.Errorf("DRY_RUN_DELAY must not be negative")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}

	// Postgres backs the product store in every setup.
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	switch c.JobStore {
	case StorePostgres:
	case StoreMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required when JOB_STORE=mongo")
		}
	default:
		return fmt.Errorf("JOB_STORE must be %s or %s", StorePostgres, StoreMongo)
	}

	switch c.SourceType {
	case SourceFile:
		if c.SourceDir == "" {
			return fmt.Errorf("SOURCE_DIR is required when SOURCE_TYPE=file")
		}
	case SourceS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when SOURCE_TYPE=s3")
		}
	default:
		return fmt.Errorf("SOURCE_TYPE must be %s or %s", SourceFile, SourceS3)
	}
	if c.ProductsFile == "" || c.DiscountsFile == "" {
		return fmt.Errorf("PRODUCTS_FILE and DISCOUNTS_FILE are required")
	}

	switch c.DiscountSink {
	case SinkPostgres:
	case SinkHTTP:
		if c.DiscountServiceURL == "" {
			return fmt.Errorf("DISCOUNT_SERVICE_URL is required when DISCOUNT_SINK=http")
		}
		if c.DiscountServiceTimeout <= 0 {
			return fmt.Errorf("DISCOUNT_SERVICE_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("DISCOUNT_SINK must be %s or %s", SinkPostgres, SinkHTTP)
	}
	return nil
}

// JobDefaults returns the job configuration submitted jobs start from.
func (c *Config) JobDefaults() domain.JobConfig {
	cfg := domain.DefaultJobConfig()
	cfg.Workers = c.WorkerPoolSize
	cfg.ChunkSize = c.BatchSize
	return cfg
}

// DatabaseURL returns the Postgres connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
