// Copyright (c) 2026 Plume. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plumehq/plume/internal/platform/ctxutil"
	"github.com/plumehq/plume/internal/platform/sec"
)

func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Falls back to the default logger when nothing is attached.
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{UserID: 42, Name: "Ada"}
	ctx = ctxutil.WithAuthUser(ctx, claims)
	assert.Equal(t, claims, ctxutil.GetAuthUser(ctx))
}
