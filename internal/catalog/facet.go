package catalog

import (
	"fmt"
	"strconv"
)

// Facet names one of the three indexes.
type Facet string

const (
	FacetField Facet = "field"
	FacetTile  Facet = "tile"
	FacetColor Facet = "color"
)

// AllFacets lists every facet in display order.
var AllFacets = []Facet{FacetField, FacetTile, FacetColor}

// ParseFacet validates a facet name.
func ParseFacet(s string) (Facet, error) {
	switch f := Facet(s); f {
	case FacetField, FacetTile, FacetColor:
		return f, nil
	}
	return "", &InvalidFacetError{Facet: s}
}

// ParseValue converts a textual lookup value to the type the facet is keyed
// by: int for field and tile, string for color.
func ParseValue(f Facet, s string) (any, error) {
	switch f {
	case FacetField, FacetTile:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s value %q is not an integer: %w", f, s, err)
		}
		return n, nil
	case FacetColor:
		return s, nil
	}
	return nil, &InvalidFacetError{Facet: string(f)}
}
