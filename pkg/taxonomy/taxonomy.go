// Package taxonomy classifies errors raised by the dispatcher into the
// categories that drive retry policy, using an error-code-to-category
// mapping.
package taxonomy

import (
	"context"
	"errors"
	"net"
)

// Category is one of the error taxonomy buckets in the retry/error design.
type Category int

const (
	// CategoryNone indicates a nil error.
	CategoryNone Category = iota
	// CategoryTransient covers network failures and 5xx responses: retry
	// with backoff; if exhausted, log and continue the batch.
	CategoryTransient
	// CategoryClientError covers 4xx responses other than 404: log, retry
	// up to the configured limit, then drop the request.
	CategoryClientError
	// CategoryNotFound (404) is logged but never retried and never treated
	// as a session-level failure.
	CategoryNotFound
	// CategoryTimeout covers per-call timeout expiry: retryable.
	CategoryTimeout
	// CategoryValidation covers transform-stage schema validation failures:
	// logged once per response that fails to decode, non-fatal, other
	// records in the batch still load.
	CategoryValidation
	// CategorySessionCreation covers failure to (re)create the underlying
	// HTTP session: retry with backoff; fatal to the Task if exhausted.
	CategorySessionCreation
	// CategoryInvariant covers internal invariant violations such as an
	// illegal state transition: always fatal, always surfaced.
	CategoryInvariant
)

// Retryable reports whether a category's standard policy permits a retry
// (subject to the caller's remaining-attempts budget). CategoryNotFound and
// CategoryInvariant are never retried; CategoryValidation is handled inline
// by the transform stage and is not part of the dispatcher's retry loop.
func (c Category) Retryable() bool {
	switch c {
	case CategoryTransient, CategoryClientError, CategoryTimeout, CategorySessionCreation:
		return true
	default:
		return false
	}
}

// Fatal reports whether the category fails the whole batch rather than
// being absorbed per-request.
func (c Category) Fatal() bool {
	return c == CategorySessionCreation || c == CategoryInvariant
}

func (c Category) String() string {
	switch c {
	case CategoryTransient:
		return "transient"
	case CategoryClientError:
		return "client_error"
	case CategoryNotFound:
		return "not_found"
	case CategoryTimeout:
		return "timeout"
	case CategoryValidation:
		return "validation"
	case CategorySessionCreation:
		return "session_creation"
	case CategoryInvariant:
		return "invariant"
	default:
		return "none"
	}
}

// ErrInvariantViolation is wrapped by callers that detect an illegal
// internal state transition (e.g. a Job status change from a disallowed
// predecessor).
var ErrInvariantViolation = errors.New("taxonomy: internal invariant violation")

// ErrSessionCreationFailed is wrapped by AsyncSession when the underlying
// HTTP session cannot be (re)created after exhausting backoff retries.
var ErrSessionCreationFailed = errors.New("taxonomy: session creation failed")

// ErrValidation is wrapped by the transform stage when a response body
// fails schema validation.
var ErrValidation = errors.New("taxonomy: validation failed")

// Classify determines the error category for a failed HTTP exchange. status
// is the HTTP status code observed, or 0 if the request never completed
// (network/timeout failure, in which case err carries the classification
// signal).
func Classify(err error, status int) Category {
	if err == nil {
		return CategoryNone
	}

	if errors.Is(err, ErrInvariantViolation) {
		return CategoryInvariant
	}
	if errors.Is(err, ErrSessionCreationFailed) {
		return CategorySessionCreation
	}
	if errors.Is(err, ErrValidation) {
		return CategoryValidation
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CategoryTimeout
		}
		return CategoryTransient
	}

	switch {
	case status == 404:
		return CategoryNotFound
	case status >= 500:
		return CategoryTransient
	case status >= 400:
		return CategoryClientError
	default:
		return CategoryTransient
	}
}
