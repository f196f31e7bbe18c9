package catalog

import (
	"strconv"
	"strings"
)

// Facets are the index keys encoded in a light-curve filename.
type Facets struct {
	Field int
	Tile  int
	Seq   string
	Color string
	Ext   string
}

// ParseFilename decodes <lc_field>.<tile>.<seq>.<color>.<ext>.
//
//	lc_0042.103.1.g.mjd → Field 42, Tile 103, Color "g"
//
// The field is the last underscore-delimited token of the first part.
func ParseFilename(name string) (Facets, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 5 {
		return Facets{}, &FilenameFormatError{
			Name:   name,
			Reason: "want 5 dot-separated parts, got " + strconv.Itoa(len(parts)),
		}
	}
	lc, tileStr, seq, color, ext := parts[0], parts[1], parts[2], parts[3], parts[4]

	fieldStr := lc[strings.LastIndexByte(lc, '_')+1:]
	field, err := strconv.Atoi(fieldStr)
	if err != nil {
		return Facets{}, &FilenameFormatError{Name: name, Reason: "field " + strconv.Quote(fieldStr), Err: err}
	}
	tile, err := strconv.Atoi(tileStr)
	if err != nil {
		return Facets{}, &FilenameFormatError{Name: name, Reason: "tile " + strconv.Quote(tileStr), Err: err}
	}

	return Facets{
		Field: field,
		Tile:  tile,
		Seq:   seq,
		Color: color,
		Ext:   ext,
	}, nil
}
