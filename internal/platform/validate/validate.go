// Copyright (c) 2026 Plume. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Input is validated before any repository call: business logic and storage
// only ever see semantically valid data, and malformed requests are rejected
// with a 400 listing every failed field at once.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/plumehq/plume/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// DateFormats are the accepted layouts for date fields such as published_at.
var DateFormats = []string{time.RFC3339, "2006-01-02"}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. Create a new instance per request.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// URL fails if the value is not an absolute http(s) URL.
func (v *Validator) URL(field, value string) *Validator {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.add(field, "Must be a valid URL")
	}
	return v
}

// Date fails if the value does not parse with any of the [DateFormats].
func (v *Validator) Date(field, value string) *Validator {
	for _, layout := range DateFormats {
		if _, err := time.Parse(layout, value); err == nil {
			return v
		}
	}
	v.add(field, "Must be a valid date")
	return v
}

// PositiveID fails if the value is not a positive integer identifier.
func (v *Validator) PositiveID(field string, value int64) *Validator {
	if value <= 0 {
		v.add(field, "Must be a valid identifier")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns an [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
