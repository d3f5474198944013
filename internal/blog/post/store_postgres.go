// Copyright (c) 2026 Plume. All rights reserved.

package post

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumehq/plume/internal/blog/category"
	"github.com/plumehq/plume/internal/blog/tag"
	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// Label associations are hydrated with json_agg sub-queries so a post list is
// a single round trip instead of N+1 junction lookups.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// hydratedSelect is the shared projection for all post reads: scalar columns,
// the author, and both label sets aggregated as JSON arrays.
const hydratedSelect = `
	SELECT
		p.id, p.title, p.slug, p.content, p.featured_image, p.status,
		p.published_at, p.user_id, p.created_at, p.updated_at,
		u.name, u.email,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', c.id, 'name', c.name, 'slug', c.slug,
				'created_at', c.created_at, 'updated_at', c.updated_at
			) ORDER BY c.name)
			FROM categories c
			JOIN post_categories pc ON pc.category_id = c.id
			WHERE pc.post_id = p.id
		), '[]') AS categories,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', t.id, 'name', t.name, 'slug', t.slug,
				'created_at', t.created_at, 'updated_at', t.updated_at
			) ORDER BY t.name)
			FROM tags t
			JOIN post_tags pt ON pt.tag_id = t.id
			WHERE pt.post_id = p.id
		), '[]') AS tags
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func (repository *PostgresRepository) FindAll(ctx context.Context) ([]Post, error) {
	return repository.queryPosts(ctx, hydratedSelect+` ORDER BY p.created_at DESC, p.id DESC`)
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Post, error) {
	row := repository.pool.QueryRow(ctx, hydratedSelect+` WHERE p.id = $1`, id)

	post, err := scanPost(row)
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}

	return post, nil
}

func (repository *PostgresRepository) FindByUser(ctx context.Context, userID int64) ([]Post, error) {
	query := hydratedSelect + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC`
	return repository.queryPosts(ctx, query, userID)
}

func (repository *PostgresRepository) FindByCategory(ctx context.Context, categoryID int64) ([]Post, error) {
	query := hydratedSelect + `
		WHERE EXISTS (
			SELECT 1 FROM post_categories pc
			WHERE pc.post_id = p.id AND pc.category_id = $1
		)
		ORDER BY p.created_at DESC, p.id DESC`
	return repository.queryPosts(ctx, query, categoryID)
}

func (repository *PostgresRepository) FindByTag(ctx context.Context, tagID int64) ([]Post, error) {
	query := hydratedSelect + `
		WHERE EXISTS (
			SELECT 1 FROM post_tags pt
			WHERE pt.post_id = p.id AND pt.tag_id = $1
		)
		ORDER BY p.created_at DESC, p.id DESC`
	return repository.queryPosts(ctx, query, tagID)
}

func (repository *PostgresRepository) FindCategories(ctx context.Context, postID int64) ([]category.Category, error) {
	const query = `
		SELECT c.id, c.name, c.slug, c.created_at, c.updated_at
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = $1
		ORDER BY c.name ASC`

	rows, err := repository.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Category")
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (repository *PostgresRepository) FindTags(ctx context.Context, postID int64) ([]tag.Tag, error) {
	const query = `
		SELECT t.id, t.name, t.slug, t.created_at, t.updated_at
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name ASC`

	rows, err := repository.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	defer rows.Close()

	tags := make([]tag.Tag, 0)
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Tag")
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

// Create inserts the post row and attaches the given label sets in one
// transaction.
func (repository *PostgresRepository) Create(ctx context.Context, post *Post, categoryIDs, tagIDs []int64) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}
	defer transaction.Rollback(ctx)

	const query = `
		INSERT INTO posts (title, slug, content, featured_image, status, published_at, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err = transaction.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Content,
		post.FeaturedImage,
		post.Status,
		post.PublishedAt,
		post.UserID,
		now,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}

	if err := attachJunction(ctx, transaction, "post_categories", "category_id", post.ID, categoryIDs); err != nil {
		return err
	}
	if err := attachJunction(ctx, transaction, "post_tags", "tag_id", post.ID, tagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "Post")
	}

	return nil
}

// Update overwrites the post row and replaces both association sets with the
// given ones, all in one transaction. Label rows are never deleted here, only
// junction rows.
func (repository *PostgresRepository) Update(ctx context.Context, post *Post, categoryIDs, tagIDs []int64) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}
	defer transaction.Rollback(ctx)

	const query = `
		UPDATE posts
		SET title = $2, slug = $3, content = $4, featured_image = $5,
		    status = $6, published_at = $7, user_id = $8, updated_at = $9
		WHERE id = $1
		RETURNING updated_at`

	err = transaction.QueryRow(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.FeaturedImage,
		post.Status,
		post.PublishedAt,
		post.UserID,
		time.Now(),
	).Scan(&post.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}

	if err := syncJunction(ctx, transaction, "post_categories", "category_id", post.ID, categoryIDs); err != nil {
		return err
	}
	if err := syncJunction(ctx, transaction, "post_tags", "tag_id", post.ID, tagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "Post")
	}

	return nil
}

// Delete removes the post row; junction rows go with it via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	commandTag, err := repository.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

func (repository *PostgresRepository) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Post")
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}

// scanPost reads one hydrated row; the JSON label aggregates are decoded into
// their entity slices.
func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{User: &Author{}}
	var categoriesJSON, tagsJSON []byte

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.FeaturedImage,
		&post.Status,
		&post.PublishedAt,
		&post.UserID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.User.Name,
		&post.User.Email,
		&categoriesJSON,
		&tagsJSON,
	)
	if err != nil {
		return nil, err
	}
	post.User.ID = post.UserID

	if err := json.Unmarshal(categoriesJSON, &post.Categories); err != nil {
		return nil, fmt.Errorf("decode categories aggregate: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
		return nil, fmt.Errorf("decode tags aggregate: %w", err)
	}

	return post, nil
}

// attachJunction inserts junction rows additively. Re-attaching an already
// linked label is a no-op.
func attachJunction(ctx context.Context, transaction pgx.Tx, table, labelColumn string, postID int64, labelIDs []int64) error {
	if len(labelIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (post_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		table, labelColumn,
	)

	batch := &pgx.Batch{}
	for _, labelID := range labelIDs {
		batch.Queue(query, postID, labelID)
	}

	results := transaction.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "Post")
	}

	return nil
}

// syncJunction makes the stored junction set equal to labelIDs: clears the
// post's rows, then re-inserts the resolved set.
func syncJunction(ctx context.Context, transaction pgx.Tx, table, labelColumn string, postID int64, labelIDs []int64) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE post_id = $1`, table)
	if _, err := transaction.Exec(ctx, deleteQuery, postID); err != nil {
		return dberr.Wrap(err, "Post")
	}

	return attachJunction(ctx, transaction, table, labelColumn, postID, labelIDs)
}
