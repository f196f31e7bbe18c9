package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrFilenameFormat indicates a filename that does not follow
	// <lc_field>.<tile>.<seq>.<color>.<ext>.
	ErrFilenameFormat = errors.New("malformed light-curve filename")
	// ErrInvalidFacet indicates a facet name other than field, tile or color.
	ErrInvalidFacet = errors.New("invalid facet")
)

// FilenameFormatError reports why a filename could not be split into facets.
type FilenameFormatError struct {
	Name   string
	Reason string
	Err    error // underlying strconv error, if any
}

func (e *FilenameFormatError) Error() string {
	msg := fmt.Sprintf("%s %q: %s", ErrFilenameFormat, e.Name, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrFilenameFormat) hold.
func (e *FilenameFormatError) Is(target error) bool {
	return target == ErrFilenameFormat
}

func (e *FilenameFormatError) Unwrap() error {
	return e.Err
}

// InvalidFacetError is returned when a lookup names an unknown facet.
type InvalidFacetError struct {
	Facet string
}

func (e *InvalidFacetError) Error() string {
	return fmt.Sprintf("%s %q: want one of field, tile, color", ErrInvalidFacet, e.Facet)
}

func (e *InvalidFacetError) Unwrap() error {
	return ErrInvalidFacet
}
