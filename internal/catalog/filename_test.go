package catalog

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	cases := []struct {
		name string
		want Facets
	}{
		{"lc_0042.103.1.g.mjd", Facets{Field: 42, Tile: 103, Seq: "1", Color: "g", Ext: "mjd"}},
		{"lc_0007.55.1.r.mjd", Facets{Field: 7, Tile: 55, Seq: "1", Color: "r", Ext: "mjd"}},
		{"lc_a_b_12.0.x.I.mjd", Facets{Field: 12, Tile: 0, Seq: "x", Color: "I", Ext: "mjd"}},
		{"0042.7.2.B.mjd", Facets{Field: 42, Tile: 7, Seq: "2", Color: "B", Ext: "mjd"}},
	}
	for _, c := range cases {
		got, err := ParseFilename(c.name)
		require.NoError(t, err, c.name)
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestParseFilename_Malformed(t *testing.T) {
	cases := []string{
		"a.mjd",
		"lc_1.2.3.g.mjd.bak",
		"lc_x.2.3.g.mjd",
		"lc.2.3.g.mjd",
		"lc_1.tile.3.g.mjd",
		"lc_1..3.g.mjd",
	}
	for _, name := range cases {
		_, err := ParseFilename(name)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrFilenameFormat, name)

		var fe *FilenameFormatError
		require.True(t, errors.As(err, &fe), name)
		assert.Equal(t, name, fe.Name)
	}
}

func TestParseFilename_WrapsStrconvError(t *testing.T) {
	_, err := ParseFilename("lc_1.big99999999999999999999.3.g.mjd")
	require.Error(t, err)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestParseFacet(t *testing.T) {
	for _, f := range AllFacets {
		got, err := ParseFacet(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFacet("band")
	assert.ErrorIs(t, err, ErrInvalidFacet)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(FacetTile, "55")
	require.NoError(t, err)
	assert.Equal(t, 55, v)

	v, err = ParseValue(FacetColor, "55")
	require.NoError(t, err)
	assert.Equal(t, "55", v)

	_, err = ParseValue(FacetField, "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidFacet)

	_, err = ParseValue(Facet("band"), "x")
	assert.ErrorIs(t, err, ErrInvalidFacet)
}
