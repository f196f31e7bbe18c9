package lightcurve

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader indicates a file without its two header lines.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrTooFewColumns indicates a data row with fewer than three tokens.
	ErrTooFewColumns = errors.New("too few columns")
	// ErrInvalidNumber indicates a data token that is not a float.
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseError describes why a light-curve file could not be parsed.
// Line is 1-based; zero means the error is not tied to a line.
type ParseError struct {
	Source string
	Line   int
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, msg)
	}
	return fmt.Sprintf("%s: %s", e.Source, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
