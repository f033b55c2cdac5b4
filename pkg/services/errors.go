package services

import "errors"

var (
	// ErrNotFound means the message id is not in the store. Frequent and
	// recoverable: the dashboard may act on a stale reference.
	ErrNotFound = errors.New("message not found")

	// ErrMissingFields means a write call lacked required fields. Rejected
	// before any state is touched.
	ErrMissingFields = errors.New("missing required fields")
)
