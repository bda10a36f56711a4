package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoAccount is returned when an operation requires a connected account
	ErrNoAccount = errors.New("no connected account")

	// ErrPriceUnknown is returned when a mint is attempted before the mint price has been read
	ErrPriceUnknown = errors.New("mint price not yet known")

	// ErrQuantityOutOfRange is returned when the requested quantity fails eligibility validation
	ErrQuantityOutOfRange = errors.New("quantity exceeds current allowance")
)

// ChainReadError wraps a failed contract read. The previously held snapshot
// is retained unchanged when a refresh fails with this error.
type ChainReadError struct {
	Field string
	Err   error
}

func (e *ChainReadError) Error() string {
	return fmt.Sprintf("chain read %s: %v", e.Field, e.Err)
}

func (e *ChainReadError) Unwrap() error { return e.Err }

// NewChainReadError wraps err as a failed read of the named contract field
func NewChainReadError(field string, err error) *ChainReadError {
	return &ChainReadError{Field: field, Err: err}
}

// SubmissionErrorKind distinguishes signer declines from everything else
type SubmissionErrorKind string

const (
	SubmissionUserRejected SubmissionErrorKind = "user_rejected"
	SubmissionUnknown      SubmissionErrorKind = "unknown"
)

// SubmissionError wraps a failed transaction submission. UserRejected is a
// recoverable, user-facing outcome; Unknown is surfaced as a generic failure.
type SubmissionError struct {
	Kind SubmissionErrorKind
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission %s: %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ClassifySubmissionError converts a raw wallet error into a SubmissionError,
// detecting signer declines by the rejection/denial indication in the reason.
func ClassifySubmissionError(err error) *SubmissionError {
	if IsUserRejection(err) {
		return &SubmissionError{Kind: SubmissionUserRejected, Err: err}
	}
	return &SubmissionError{Kind: SubmissionUnknown, Err: err}
}

// IsUserRejection reports whether err indicates the signer declined to sign
func IsUserRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rejected") || strings.Contains(msg, "denied")
}

// HTTPError is returned for non-2xx responses from the indexing API
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.StatusCode, e.URL)
}

// ConfigurationError indicates a missing or invalid deployment-time
// configuration value. Fatal at startup; never recoverable at runtime.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
}
