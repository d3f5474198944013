// Copyright (c) 2026 Plume. All rights reserved.

/*
Package slice complements the standard [slices] package with functional
utilities (Map, Filter, Dedup) built on generics.
*/
package slice

// Map transforms a slice of T into a slice of U element-wise.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns the elements for which the predicate evaluates to true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	// Not pre-allocating full length to avoid excess memory on heavy filters.
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// Dedup returns the input with duplicates removed, preserving first-seen order.
func Dedup[T comparable](input []T) []T {
	if input == nil {
		return nil
	}

	seen := make(map[T]struct{}, len(input))
	result := make([]T, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
