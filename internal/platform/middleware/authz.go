// Copyright (c) 2026 Plume. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/ctxutil"
	"github.com/plumehq/plume/internal/platform/respond"
	"github.com/plumehq/plume/internal/platform/sec"
)

// TokenVerifier is the contract needed to verify bearer tokens.
//
// Declaring it here decouples the middleware from the auth service, so tests
// can inject a stub verifier.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//
//  1. No 'Authorization: Bearer <token>' header: proceed as anonymous.
//  2. Malformed header or invalid token: reject with 401.
//  3. Valid token: inject [*sec.AuthClaims] into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// It is the write-operation gate: every mutating blog route mounts it.
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
