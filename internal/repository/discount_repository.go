package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

const applyDiscountQuery = `
	INSERT INTO product_discounts (product_id, discount_id, percent, applied_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (product_id, discount_id) DO NOTHING
`

// PostgresDiscountRepository implements DiscountRepository using PostgreSQL.
type PostgresDiscountRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDiscountRepository creates a new PostgresDiscountRepository.
func NewPostgresDiscountRepository(pool *pgxpool.Pool) *PostgresDiscountRepository {
	return &PostgresDiscountRepository{pool: pool}
}

// Apply applies a single discount to a product.
func (r *PostgresDiscountRepository) Apply(ctx context.Context, discount domain.DiscountRequest) error {
	tag, err := r.pool.Exec(ctx, applyDiscountQuery, discount.ProductID, discount.DiscountID, discount.Percent)
	if err != nil {
		return fmt.Errorf("apply discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("discount %s: %w", discount.Key(), ErrDuplicate)
	}
	return nil
}

// ApplyBatch applies discounts in a single transaction using a pgx batch.
func (r *PostgresDiscountRepository) ApplyBatch(ctx context.Context, discounts []domain.DiscountRequest) ([]bool, error) {
	if len(discounts) == 0 {
		return []bool{}, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, d := range discounts {
		batch.Queue(applyDiscountQuery, d.ProductID, d.DiscountID, d.Percent)
	}

	br := tx.SendBatch(ctx, batch)
	applied := make([]bool, len(discounts))
	for i := range discounts {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("apply discount batch item %d: %w", i, err)
		}
		applied[i] = tag.RowsAffected() > 0
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close discount batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit discount batch: %w", err)
	}

	return applied, nil
}
