package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/catalog-svc/internal/service"

	"github.com/lib/pq"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresRepository is the entity store. A repository returned to a
// WithinTx callback is bound to that transaction and locks the restaurant
// rows it reads.
type PostgresRepository struct {
	DB *sql.DB
	q  querier
	tx *sql.Tx
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db, q: db}
}

var _ service.Store = (*PostgresRepository)(nil)

func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(tx service.Store) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&PostgresRepository{DB: r.DB, q: tx, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) lockClause() string {
	if r.tx == nil {
		return ""
	}
	return " FOR UPDATE OF r"
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS kitchens (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(60) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS states (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(80) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cities (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(80) NOT NULL,
		state_id BIGINT NOT NULL REFERENCES states(id)
	)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id BIGSERIAL PRIMARY KEY,
		code VARCHAR(36) NOT NULL UNIQUE,
		name VARCHAR(80) NOT NULL,
		shipping_fee NUMERIC(10,2) NOT NULL CHECK (shipping_fee >= 0),
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		is_open BOOLEAN NOT NULL DEFAULT FALSE,
		kitchen_id BIGINT NOT NULL REFERENCES kitchens(id),
		address_zip_code VARCHAR(9) NOT NULL,
		address_street VARCHAR(100) NOT NULL,
		address_number VARCHAR(20) NOT NULL,
		address_complement VARCHAR(60),
		address_district VARCHAR(60) NOT NULL,
		address_city_id BIGINT NOT NULL REFERENCES cities(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT restaurants_open_requires_active CHECK (NOT is_open OR is_active)
	)`,
	`CREATE INDEX IF NOT EXISTS restaurants_kitchen_idx ON restaurants (kitchen_id)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
		name VARCHAR(80) NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS product_photos (
		product_id BIGINT PRIMARY KEY REFERENCES products(id),
		file_name VARCHAR(150) NOT NULL,
		description VARCHAR(150),
		content_type VARCHAR(80) NOT NULL,
		size BIGINT NOT NULL
	)`,
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

func isPQError(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

func notFoundOr(err error, kind string, key any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(kind, key)
	}
	return err
}

// likePattern escapes LIKE wildcards so the fragment is matched literally.
func likePattern(fragment string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(fragment) + "%"
}
