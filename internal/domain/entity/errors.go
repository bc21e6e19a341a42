package entity

import "errors"

// Error taxonomy surfaced to the acting user. Nothing is retried transparently.
var (
	ErrAuth             = errors.New("authentication failed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrUnknownService   = errors.New("unknown service")
	ErrCorruptRecord    = errors.New("stored record is unreadable")
)
