package domain

import "errors"

// Domain errors represent failures at the boundary of the engine.
// Malformed robots.txt content never produces an error; it degrades to
// fewer recognised rules and is reported through diagnostics instead.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidUserAgent indicates a user-agent token with characters
	// outside letters, digits, '-' and '_'.
	ErrInvalidUserAgent = errors.New("invalid user-agent token")

	// ErrSourceUnavailable indicates the robots.txt input could not be opened or read.
	ErrSourceUnavailable = errors.New("robots.txt source unavailable")

	// ErrUnsupportedFormat indicates an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrUnknownSetting indicates a settings key that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")
)
