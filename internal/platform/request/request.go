// Copyright (c) 2026 Plume. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts the router's parameter extraction and common body decoding,
ensuring consistent error handling across handlers.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/plumehq/plume/internal/platform/apperr"
	"github.com/plumehq/plume/internal/platform/ctxutil"
	"github.com/plumehq/plume/internal/platform/sec"
	"github.com/plumehq/plume/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns [validate.ErrInvalidJSON] when the body is not valid JSON.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID parses a named URL parameter as a positive int64 identifier.
//
// Malformed or non-positive values return a validation error so handlers
// reject bad paths before any repository lookup.
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a valid identifier")
	}
	return id, nil
}

// Param retrieves a named URL parameter from the request as-is.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the authenticated user claims from the request context.
// It returns nil if the request is anonymous.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
