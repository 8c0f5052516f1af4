// Package resilience classifies provider failures and computes class-aware
// retry backoff for the extraction orchestrator.
package resilience

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Class buckets a provider failure by how the orchestrator should react.
type Class int

const (
	// ClassStructural marks a contract violation (malformed response shape).
	// A caller/provider integration bug, not a transient condition; never
	// retried.
	ClassStructural Class = iota

	// ClassAuthConfig marks invalid or missing credentials and invalid
	// request parameters. Never retried; surfaced with a remediation hint.
	ClassAuthConfig

	// ClassRateLimit marks provider throttling. Retried with a larger
	// backoff base than generic transient failures.
	ClassRateLimit

	// ClassTransient marks connectivity failures and timeouts. Retried with
	// standard exponential backoff.
	ClassTransient

	// ClassServer marks upstream 5xx-class failures. Retried, bounded.
	ClassServer
)

func (c Class) String() string {
	switch c {
	case ClassStructural:
		return "structural"
	case ClassAuthConfig:
		return "auth_config"
	case ClassRateLimit:
		return "rate_limit"
	case ClassTransient:
		return "transient"
	case ClassServer:
		return "server"
	default:
		return "unknown"
	}
}

// Retryable reports whether another attempt against the same provider may
// succeed.
func (c Class) Retryable() bool {
	switch c {
	case ClassRateLimit, ClassTransient, ClassServer:
		return true
	default:
		return false
	}
}

// FallbackEligible reports whether switching to a fallback provider is worth
// trying. Structural and auth/config failures would fail identically there.
func (c Class) FallbackEligible() bool {
	return c.Retryable()
}

// Error tags a provider failure with its classification and, when known, the
// HTTP-like status code the provider reported.
type Error struct {
	Class      Class
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with an explicit classification.
func NewError(class Class, statusCode int, err error) *Error {
	return &Error{Class: class, StatusCode: statusCode, Err: err}
}

// ClassifyStatus maps an HTTP-like status code to a failure class.
func ClassifyStatus(statusCode int) (Class, bool) {
	switch {
	case statusCode == 429:
		return ClassRateLimit, true
	case statusCode == 408:
		return ClassTransient, true
	case statusCode == 400 || statusCode == 401 || statusCode == 403 || statusCode == 404 || statusCode == 422:
		return ClassAuthConfig, true
	case statusCode >= 500 && statusCode <= 599:
		return ClassServer, true
	default:
		return 0, false
	}
}

// Classify buckets an arbitrary error. Explicitly tagged errors win; then
// network-level checks; then substring heuristics over the message text.
//
// The substring table is a known fragility: provider error messages are not
// a stable contract, and the patterns below should be revisited per real
// provider. Structured status codes from the provider layer are preferred
// wherever available.
func Classify(err error) Class {
	if err == nil {
		return ClassTransient
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Class
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTransient
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return ClassTransient
	}

	msg := strings.ToLower(err.Error())

	for _, p := range []string{"missing required field", "unexpected response shape", "malformed response", "schema violation"} {
		if strings.Contains(msg, p) {
			return ClassStructural
		}
	}
	for _, p := range []string{"api key", "unauthorized", "authentication", "invalid request", "permission denied", "forbidden"} {
		if strings.Contains(msg, p) {
			return ClassAuthConfig
		}
	}
	for _, p := range []string{"rate limit", "too many requests", "quota exceeded", "429"} {
		if strings.Contains(msg, p) {
			return ClassRateLimit
		}
	}
	for _, p := range []string{"overloaded", "internal server error", "bad gateway", "service unavailable", "gateway timeout"} {
		if strings.Contains(msg, p) {
			return ClassServer
		}
	}

	// Remaining failures are treated as transient so a bounded retry gets a
	// chance; the attempt cap keeps misclassification cheap.
	return ClassTransient
}
