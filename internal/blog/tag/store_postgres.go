// Copyright (c) 2026 Plume. All rights reserved.

package tag

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

func (repository *PostgresRepository) List(ctx context.Context) ([]Tag, error) {
	const query = `
		SELECT id, name, slug, created_at, updated_at
		FROM tags
		ORDER BY name ASC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	defer rows.Close()

	tags := make([]Tag, 0)
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Tag")
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Tag, error) {
	const query = `
		SELECT id, name, slug, created_at, updated_at
		FROM tags
		WHERE id = $1`

	t := &Tag{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}

	return t, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, tag *Tag) error {
	const query = `
		INSERT INTO tags (name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := repository.pool.QueryRow(ctx, query, tag.Name, tag.Slug, now).
		Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Tag")
	}

	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, tag *Tag) error {
	const query = `
		UPDATE tags
		SET name = $2, slug = $3, updated_at = $4
		WHERE id = $1
		RETURNING updated_at`

	err := repository.pool.QueryRow(ctx, query, tag.ID, tag.Name, tag.Slug, time.Now()).
		Scan(&tag.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Tag")
	}

	return nil
}

// Delete removes the tag row; post_tags rows go with it via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	commandTag, err := repository.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Tag")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Tag")
	}

	return nil
}

// FindOrCreate resolves a tag by exact name with an atomic upsert; see the
// category repository for the concurrency rationale.
func (repository *PostgresRepository) FindOrCreate(ctx context.Context, name, slug string) (int64, error) {
	const query = `
		INSERT INTO tags (name, slug, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id int64
	if err := repository.pool.QueryRow(ctx, query, name, slug).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, "Tag")
	}

	return id, nil
}
