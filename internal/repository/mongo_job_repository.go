package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

// JobsCollection is the name of the Mongo collection holding ingestion jobs.
const JobsCollection = "ingestion_jobs"

type jobDocument struct {
	ID              string               `bson:"_id"`
	Mode            string               `bson:"mode"`
	Workers         int                  `bson:"workers"`
	ChunkSize       int                  `bson:"chunk_size"`
	Retries         int                  `bson:"retries"`
	FailFast        bool                 `bson:"fail_fast"`
	DryRun          bool                 `bson:"dry_run"`
	Status          string               `bson:"status"`
	FilesDiscovered int                  `bson:"files_discovered"`
	FilesProcessed  int                  `bson:"files_processed"`
	Products        domain.EntitySummary `bson:"products"`
	Discounts       domain.EntitySummary `bson:"discounts"`
	Errors          []domain.ErrorSample `bson:"errors"`
	ErrorMessage    *string              `bson:"error_message,omitempty"`
	StartedAt       time.Time            `bson:"started_at"`
	UpdatedAt       *time.Time           `bson:"updated_at,omitempty"`
}

func toDocument(job *domain.IngestionJob) jobDocument {
	samples := job.Errors
	if samples == nil {
		samples = []domain.ErrorSample{}
	}
	return jobDocument{
		ID:              job.ID,
		Mode:            string(job.Mode),
		Workers:         job.Workers,
		ChunkSize:       job.ChunkSize,
		Retries:         job.Retries,
		FailFast:        job.FailFast,
		DryRun:          job.DryRun,
		Status:          string(job.Status),
		FilesDiscovered: job.FilesDiscovered,
		FilesProcessed:  job.FilesProcessed,
		Products:        job.Products,
		Discounts:       job.Discounts,
		Errors:          samples,
		ErrorMessage:    job.ErrorMessage,
		StartedAt:       job.StartedAt.UTC(),
		UpdatedAt:       job.UpdatedAt,
	}
}

func (d jobDocument) toDomain() *domain.IngestionJob {
	samples := d.Errors
	if samples == nil {
		samples = []domain.ErrorSample{}
	}
	return &domain.IngestionJob{
		ID: d.ID,
		JobConfig: domain.JobConfig{
			Mode:      domain.IngestMode(d.Mode),
			Workers:   d.Workers,
			ChunkSize: d.ChunkSize,
			Retries:   d.Retries,
			FailFast:  d.FailFast,
			DryRun:    d.DryRun,
		},
		Status:          domain.JobStatus(d.Status),
		FilesDiscovered: d.FilesDiscovered,
		FilesProcessed:  d.FilesProcessed,
		Products:        d.Products,
		Discounts:       d.Discounts,
		Errors:          samples,
		ErrorMessage:    d.ErrorMessage,
		StartedAt:       d.StartedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// MongoJobRepository implements JobRepository using MongoDB.
type MongoJobRepository struct {
	coll *mongo.Collection
}

// NewMongoJobRepository creates a new MongoJobRepository.
func NewMongoJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{coll: db.Collection(JobsCollection)}
}

// EnsureIndexes creates the status index and the partial unique index that
// allows at most one started job.
func (r *MongoJobRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "started_at", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
			Options: options.Index().
				SetName("single_started").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.JobStatusStarted)}),
		},
	})
	if err != nil {
		return fmt.Errorf("create job indexes: %w", err)
	}
	return nil
}

// CreateJob inserts a new ingestion job.
func (r *MongoJobRepository) CreateJob(ctx context.Context, job *domain.IngestionJob) error {
	if _, err := r.coll.InsertOne(ctx, toDocument(job)); err != nil {
		return fmt.Errorf("insert ingestion job: %w", err)
	}
	return nil
}

// FindByID retrieves an ingestion job by ID.
func (r *MongoJobRepository) FindByID(ctx context.Context, id string) (*domain.IngestionJob, error) {
	var doc jobDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingestion job: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByStatus retrieves all jobs in the given status, oldest first.
func (r *MongoJobRepository) FindByStatus(ctx context.Context, status domain.JobStatus) ([]*domain.IngestionJob, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"status": string(status)}, opts)
}

// List retrieves a page of jobs ordered by start time.
func (r *MongoJobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.IngestionJob, error) {
	filter = filter.Normalize()

	dir := 1
	if filter.Sort == domain.SortDesc {
		dir = -1
	}

	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	return r.find(ctx, query, opts)
}

// UpdateStatus moves a job to status if its current status allows it.
func (r *MongoJobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (bool, error) {
	preds := domain.AllowedPredecessors(status)
	if len(preds) == 0 {
		return false, fmt.Errorf("update status to %s: %w", status, domain.ErrInvalidTransition)
	}
	from := make([]string, len(preds))
	for i, p := range preds {
		from[i] = string(p)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("update job status: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// UpdateProgress writes the provided progress fields of a non-terminal job.
func (r *MongoJobRepository) UpdateProgress(ctx context.Context, id string, update domain.ProgressUpdate) (bool, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.FilesDiscovered != nil {
		set["files_discovered"] = *update.FilesDiscovered
	}
	if update.FilesProcessed != nil {
		set["files_processed"] = *update.FilesProcessed
	}
	if update.Products != nil {
		set["products"] = *update.Products
	}
	if update.Discounts != nil {
		set["discounts"] = *update.Discounts
	}
	if update.Errors != nil {
		set["errors"] = update.Errors
	}
	if update.ErrorMessage != nil {
		set["error_message"] = *update.ErrorMessage
	}

	terminal := []string{string(domain.JobStatusCompleted), string(domain.JobStatusFailed)}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$nin": terminal}},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("update job progress: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoJobRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.IngestionJob, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := make([]*domain.IngestionJob, 0)
	for cur.Next(ctx) {
		var doc jobDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}
