// Copyright (c) 2026 Plume. All rights reserved.

package client

import (
	"context"
	"sync"
)

// State is the lifecycle phase of a [Resource].
type State int

const (
	// StateIdle means no fetch has been requested yet.
	StateIdle State = iota

	// StatePending means a fetch is in flight.
	StatePending

	// StateSucceeded means the last fetch completed and Value is current.
	StateSucceeded

	// StateFailed means the last fetch errored. A previously loaded payload
	// is retained internally but not exposed through Value.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resource is a fetch view model around a single remote read.
//
// # Semantics
//
//   - At most one fetch is in flight: Fetch during pending is a no-op.
//   - Success replaces the whole payload; results never merge.
//   - Failure keeps the previous payload cached but Value stops exposing
//     it, so the UI shows the error rather than stale data.
//
// Resource is safe for concurrent use.
type Resource[T any] struct {
	fetch func(context.Context) (T, error)

	mu        sync.Mutex
	state     State
	value     T
	hasValue  bool
	lastError string
	done      chan struct{}
}

// NewResource wraps a fetch function, typically a bound [API] call:
//
//	posts := client.NewResource(api.Posts)
func NewResource[T any](fetch func(context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{fetch: fetch}
}

// Fetch starts a background fetch and reports whether one was started.
// It returns false while a previous fetch is still pending.
func (resource *Resource[T]) Fetch(ctx context.Context) bool {
	resource.mu.Lock()
	if resource.state == StatePending {
		resource.mu.Unlock()
		return false
	}
	resource.state = StatePending
	resource.lastError = ""
	done := make(chan struct{})
	resource.done = done
	resource.mu.Unlock()

	go func() {
		defer close(done)

		value, err := resource.fetch(ctx)

		resource.mu.Lock()
		defer resource.mu.Unlock()

		if err != nil {
			resource.state = StateFailed
			resource.lastError = err.Error()
			return
		}

		resource.state = StateSucceeded
		resource.value = value
		resource.hasValue = true
	}()

	return true
}

// State returns the current lifecycle phase.
func (resource *Resource[T]) State() State {
	resource.mu.Lock()
	defer resource.mu.Unlock()
	return resource.state
}

// Value returns the payload, but only in the succeeded state.
func (resource *Resource[T]) Value() (T, bool) {
	resource.mu.Lock()
	defer resource.mu.Unlock()

	if resource.state != StateSucceeded {
		var zero T
		return zero, false
	}
	return resource.value, true
}

// Cached returns the last successful payload regardless of state. It lets a
// caller inspect what would be shown after a recovery without re-exposing it
// in the failed state.
func (resource *Resource[T]) Cached() (T, bool) {
	resource.mu.Lock()
	defer resource.mu.Unlock()

	if !resource.hasValue {
		var zero T
		return zero, false
	}
	return resource.value, true
}

// Err returns the failure message of the last fetch, or "" if it succeeded.
func (resource *Resource[T]) Err() string {
	resource.mu.Lock()
	defer resource.mu.Unlock()
	return resource.lastError
}

// Wait blocks until the in-flight fetch (if any) settles.
func (resource *Resource[T]) Wait() {
	resource.mu.Lock()
	done := resource.done
	resource.mu.Unlock()

	if done != nil {
		<-done
	}
}
