// Copyright (c) 2026 Plume. All rights reserved.

package category

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	const query = `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		ORDER BY name ASC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Category")
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Category, error) {
	const query = `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		WHERE id = $1`

	c := &Category{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return c, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, category *Category) error {
	const query = `
		INSERT INTO categories (name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := repository.pool.QueryRow(ctx, query, category.Name, category.Slug, now).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, category *Category) error {
	const query = `
		UPDATE categories
		SET name = $2, slug = $3, updated_at = $4
		WHERE id = $1
		RETURNING updated_at`

	err := repository.pool.QueryRow(ctx, query, category.ID, category.Name, category.Slug, time.Now()).
		Scan(&category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	return nil
}

// Delete removes the category row. Join rows in post_categories are removed
// by the ON DELETE CASCADE declared in the schema; posts are never touched.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	commandTag, err := repository.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

// FindOrCreate resolves a category by exact name, creating it when absent.
//
// The upsert relies on the unique constraint on name: two concurrent
// requests naming the same new category both land on the same row. The
// no-op DO UPDATE makes RETURNING yield the existing row's id on conflict.
func (repository *PostgresRepository) FindOrCreate(ctx context.Context, name, slug string) (int64, error) {
	const query = `
		INSERT INTO categories (name, slug, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id int64
	if err := repository.pool.QueryRow(ctx, query, name, slug).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, "Category")
	}

	return id, nil
}
