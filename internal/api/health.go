// Copyright (c) 2026 Plume. All rights reserved.

package api

import (
	"log/slog"
	"net/http"

	"github.com/plumehq/plume/internal/platform/respond"
)

// HealthDependencies holds the dependency checks run by the /ready probe.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache pings the Redis client.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready handler funcs.
func NewHealthHandlers(dependencies HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: dependencies, logger: logger}
	return handler.liveness, handler.readiness
}

func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	checks := map[string]func() error{
		"postgres": handler.dependencies.CheckDatabase,
		"redis":    handler.dependencies.CheckCache,
	}

	results := make([]checkResult, 0, len(checks))
	ready := true

	for _, name := range []string{"postgres", "redis"} {
		check := checks[name]
		if check == nil {
			continue
		}

		result := checkResult{Name: name, IsOK: true}
		if err := check(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			ready = false
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	status := "ready"
	httpStatus := http.StatusOK
	if !ready {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		"status": status,
		"checks": results,
	}})
}
