package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/svebrant/product-api-assignment/internal/domain"
)

// PostgresProductRepository implements ProductRepository using PostgreSQL.
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepository creates a new PostgresProductRepository.
func NewPostgresProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{pool: pool}
}

// Create inserts a single product.
func (r *PostgresProductRepository) Create(ctx context.Context, product domain.ProductRequest) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, base_price, country, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, product.ID, product.Name, product.BasePrice, product.Country)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("product %s: %w", product.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}
