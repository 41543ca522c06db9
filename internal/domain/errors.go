// Package domain defines the core business entities and errors.
package domain

import "errors"

// ErrValidation is the root of all entity validation errors. The
// field-specific sentinels in this package wrap it, so callers can match
// the whole class with errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")
