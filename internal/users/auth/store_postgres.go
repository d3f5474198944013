// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plumehq/plume/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// Create inserts the account; the unique index on email surfaces as a 409
// through dberr.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := repository.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, now).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}
