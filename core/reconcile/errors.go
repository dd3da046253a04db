package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a feed row or listing that cannot be normalized.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrCreateConflict marks a create for a key that already exists on the marketplace.
	// Marketplace clients wrap it so the executor can classify the failure.
	ErrCreateConflict = errors.New("listing already exists")

	// ErrClientFailure marks any other marketplace call failure.
	ErrClientFailure = errors.New("marketplace call failed")
)

// MalformedRecordError describes why a single row was rejected.
type MalformedRecordError struct {
	// Line is the feed line of the row, or the listing index for marketplace data.
	Line int `json:"line"`

	// Key is the raw key of the row, when available.
	Key string `json:"key,omitempty"`

	// Field is the offending field (key, price, stock).
	Field string `json:"field"`

	// Reason is a human readable explanation.
	Reason string `json:"reason"`
}

func (e MalformedRecordError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("malformed record at line %d (%s): %s: %s", e.Line, e.Key, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed record at line %d: %s: %s", e.Line, e.Field, e.Reason)
}

func (e MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// classify maps an executor error to a failure kind.
func classify(err error) FailureKind {
	if errors.Is(err, ErrCreateConflict) {
		return KindCreateConflict
	}
	return KindClientFailure
}
