package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a generation failure.
type ErrorKind string

const (
	// KindInvalidInput means the idea was empty; no request was made.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindNotConfigured means no gateway credential is available. This is
	// a configuration problem, not a per-request failure.
	KindNotConfigured ErrorKind = "not_configured"
	// KindRateLimited maps HTTP 429; the caller may retry after waiting.
	KindRateLimited ErrorKind = "rate_limited"
	// KindQuotaExceeded maps HTTP 402; remediation is external.
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	// KindUpstream covers every other gateway-side failure.
	KindUpstream ErrorKind = "upstream_error"
	// KindMalformedResponse means the gateway replied but the content did
	// not parse as a PRD.
	KindMalformedResponse ErrorKind = "malformed_response"
)

// GenerationError is the typed outcome for a failed generation. It never
// crosses the orchestrator boundary as a panic; callers branch on Kind.
type GenerationError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may reasonably retry the call.
// The client itself never retries; each call is at-most-once.
func (e *GenerationError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindUpstream
}

// KindOf extracts the error kind, or an empty kind for foreign errors.
func KindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return ""
}
