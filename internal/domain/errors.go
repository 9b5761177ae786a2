package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("conflict with current state")
	ErrImport       = errors.New("import rejected")
	ErrUnauthorized = errors.New("unauthorized")
)

// ImportError describes why an import file was rejected as a whole.
// Row is 1-indexed with the header counted as row 1; zero means the file itself is malformed.
type ImportError struct {
	Row    int
	Reason string
}

func (e *ImportError) Error() string {
	if e.Row == 0 {
		return e.Reason
	}
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// Unwrap lets errors.Is(err, ErrImport) match.
func (e *ImportError) Unwrap() error { return ErrImport }

// Validationf builds an ErrValidation with a human-readable detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
