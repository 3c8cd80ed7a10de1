// Package common defines sentinel errors shared by the clientdb packages.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Output errors.
	ErrUnknownFormat = errors.New("unknown output format")

	// Configuration errors.
	ErrInvalidLogLevel = errors.New("invalid log level")
)
