// Copyright (c) 2026 Plume. All rights reserved.

package comment

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

const selectColumns = `id, content, post_id, user_id, created_at, updated_at`

func (repository *PostgresRepository) List(ctx context.Context) ([]Comment, error) {
	query := `SELECT ` + selectColumns + ` FROM comments ORDER BY created_at DESC, id DESC`
	return repository.queryComments(ctx, query)
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Comment, error) {
	query := `SELECT ` + selectColumns + ` FROM comments WHERE id = $1`

	c := &Comment{}
	err := repository.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}

	return c, nil
}

func (repository *PostgresRepository) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	query := `SELECT ` + selectColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at ASC, id ASC`
	return repository.queryComments(ctx, query, postID)
}

func (repository *PostgresRepository) Insert(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO comments (content, post_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := repository.pool.QueryRow(ctx, query, comment.Content, comment.PostID, comment.UserID, now).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}

	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, comment *Comment) error {
	const query = `
		UPDATE comments
		SET content = $2, post_id = $3, user_id = $4, updated_at = $5
		WHERE id = $1
		RETURNING updated_at`

	err := repository.pool.QueryRow(ctx, query,
		comment.ID, comment.Content, comment.PostID, comment.UserID, time.Now(),
	).Scan(&comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	commandTag, err := repository.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) PostExists(ctx context.Context, postID int64) (bool, error) {
	return repository.exists(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID, "Post")
}

func (repository *PostgresRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return repository.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID, "User")
}

func (repository *PostgresRepository) exists(ctx context.Context, query string, id int64, resource string) (bool, error) {
	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return exists, nil
}

func (repository *PostgresRepository) queryComments(ctx context.Context, query string, args ...any) ([]Comment, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Comment")
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
