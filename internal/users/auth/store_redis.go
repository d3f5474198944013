// Copyright (c) 2026 Plume. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] on Redis.
//
// Sessions live under constants.RedisPrefixSession + tokenHash with a TTL, so
// expiry needs no sweeper and a Find hit is always a live session.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Save(ctx context.Context, tokenHash string, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("auth: marshal session: %w", err)
	}

	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("auth: save session: %w", err)
	}

	return nil
}

func (repository *RedisSessionRepository) Find(ctx context.Context, tokenHash string) (*Session, error) {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("auth: load session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("auth: decode session: %w", err)
	}

	return session, nil
}

// Delete is idempotent: removing an absent session is not an error.
func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("auth: delete session: %w", err)
	}

	return nil
}
