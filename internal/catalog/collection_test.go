package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamusis/lcdb/internal/lightcurve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	curveA = "label t1 t2\nlabel v1 v2\n1.0 2.0 0.1\n2.0 2.5 0.1\n"
	curveB = "label t1\nlabel v1\n1.0 9.0 0.2\n"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func loaded(t *testing.T, dir string) *Collection {
	t.Helper()
	c := New()
	require.NoError(t, c.Populate(dir))
	require.NoError(t, c.Index())
	return c
}

func TestCollection_SingleFileScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	c := loaded(t, dir)

	byField, err := c.Retrieve("field", 7)
	require.NoError(t, err)
	require.Len(t, byField, 1)
	assert.Equal(t, []float64{2.0, 2.5}, byField[0].Amplitudes())

	byTile, err := c.Retrieve("tile", 55)
	require.NoError(t, err)
	require.Len(t, byTile, 1)
	assert.Same(t, byField[0], byTile[0])

	byColor, err := c.Retrieve("color", "r")
	require.NoError(t, err)
	require.Len(t, byColor, 1)
	assert.Same(t, byField[0], byColor[0])

	none, err := c.Retrieve("tile", 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	rec, ok := c.Get("lc_0007.55.1.r.mjd")
	require.True(t, ok)
	assert.Same(t, rec, byField[0])
	assert.Equal(t, filepath.Join(dir, "lc_0007.55.1.r.mjd"), rec.Source())
}

func TestCollection_SharedTileBucket(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", curveB)
	c := loaded(t, dir)

	recs, err := c.Retrieve("tile", 55)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []float64{2.0, 2.5}, recs[0].Amplitudes())
	assert.Equal(t, []float64{9.0}, recs[1].Amplitudes())

	assert.Len(t, c.ByColor("r"), 1)
	assert.Len(t, c.ByColor("g"), 1)
	assert.Len(t, c.ByField(8), 1)
}

func TestCollection_UnknownValuesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	c := loaded(t, dir)

	for _, q := range []struct {
		facet string
		value any
	}{
		{"field", 8},
		{"tile", 0},
		{"color", "z"},
		{"tile", "55"}, // wrong type is just never indexed
		{"color", 7},
	} {
		recs, err := c.Retrieve(q.facet, q.value)
		require.NoError(t, err, q)
		assert.Empty(t, recs, q)
	}

	recs, err := c.Retrieve("tile", int64(55))
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestCollection_RetrieveAcceptsUnsigned(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", curveA)
	c := loaded(t, dir)

	for _, v := range []any{uint(55), uint64(55), uint32(55), uint8(55)} {
		recs, err := c.Retrieve("tile", v)
		require.NoError(t, err, v)
		assert.Len(t, recs, 2, "%T", v)
	}

	recs, err := c.Retrieve("field", uint64(math.MaxUint64))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCollection_InvalidFacet(t *testing.T) {
	c := loaded(t, t.TempDir())

	recs, err := c.Retrieve("band", "r")
	require.Error(t, err)
	assert.Nil(t, recs)
	assert.ErrorIs(t, err, ErrInvalidFacet)

	var fe *InvalidFacetError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "band", fe.Facet)
}

func TestCollection_IndexIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", curveB)
	c := loaded(t, dir)

	before := c.ByTile(55)
	require.NoError(t, c.Index())
	after := c.ByTile(55)

	assert.Len(t, after, 2)
	assert.Equal(t, before, after)
	assert.Len(t, c.ByField(7), 1)
	assert.Len(t, c.ByColor("g"), 1)
}

func TestCollection_RepopulateOverwritesInPlace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", curveB)
	c := loaded(t, dir)
	names := c.Names()

	require.NoError(t, c.Populate(dir))
	require.NoError(t, c.Index())

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, names, c.Names())
	assert.Len(t, c.ByTile(55), 2)
}

func TestCollection_PopulateIsDepthOne(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, sub, "lc_0009.55.1.r.mjd", curveA)
	// A directory whose name matches the marker must not be parsed either.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.mjd"), 0o755))

	c := loaded(t, dir)
	assert.Equal(t, []string{"lc_0007.55.1.r.mjd"}, c.Names())
	assert.Empty(t, c.ByField(9))
}

func TestCollection_PopulateFiltersByMarker(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "README.txt", "not a light curve")
	writeFile(t, dir, "lc_0008.55.1.g.dat", "garbage")

	c := New()
	require.NoError(t, c.Populate(dir))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_PopulateStrictAborts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", "only one header line\n")

	c := New()
	err := c.Populate(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, lightcurve.ErrMalformedHeader)

	var pe *lightcurve.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, filepath.Join(dir, "lc_0008.55.1.g.mjd"), pe.Source)
}

func TestCollection_PopulateLenientSkips(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", "l a\nl 1\n1 2\n")
	writeFile(t, dir, "lc_0009.56.1.g.mjd", curveB)

	c := New()
	res, err := c.PopulateLenient(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "lc_0008.55.1.g.mjd", res.Skipped[0].Name)
	assert.ErrorIs(t, res.Skipped[0].Err, lightcurve.ErrTooFewColumns)

	require.NoError(t, c.Index())
	assert.Len(t, c.ByColor("g"), 1)
}

func TestCollection_PopulateMissingDir(t *testing.T) {
	c := New()
	err := c.Populate(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = c.PopulateLenient(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCollection_IndexFailureKeepsPreviousIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	c := loaded(t, dir)

	writeFile(t, dir, "bad.mjd", curveB)
	require.NoError(t, c.Populate(dir))

	err := c.Index()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFilenameFormat)
	assert.Len(t, c.ByTile(55), 1)
}

func TestCollection_States(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)

	c := New()
	assert.Equal(t, StateEmpty, c.State())

	require.NoError(t, c.Populate(dir))
	assert.Equal(t, StatePopulated, c.State())
	assert.Empty(t, c.ByTile(55), "lookups before Index are empty")

	require.NoError(t, c.Index())
	assert.Equal(t, StateIndexed, c.State())
	assert.Equal(t, "indexed", c.State().String())
}

func TestCollection_RetrieveReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", curveB)
	c := loaded(t, dir)

	got := c.ByTile(55)
	got[0], got[1] = got[1], nil

	fresh := c.ByTile(55)
	require.Len(t, fresh, 2)
	assert.Equal(t, 2, fresh[0].Len())
}

func TestCollection_Buckets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lc_0007.55.1.r.mjd", curveA)
	writeFile(t, dir, "lc_0008.55.1.g.mjd", curveB)
	writeFile(t, dir, "lc_0008.12.2.g.mjd", curveB)
	c := loaded(t, dir)

	tiles, err := c.Buckets(FacetTile)
	require.NoError(t, err)
	assert.Equal(t, []BucketSize{{Value: 12, Count: 1}, {Value: 55, Count: 2}}, tiles)

	colors, err := c.Buckets(FacetColor)
	require.NoError(t, err)
	assert.Equal(t, []BucketSize{{Value: "g", Count: 2}, {Value: "r", Count: 1}}, colors)

	_, err = c.Buckets(Facet("band"))
	assert.ErrorIs(t, err, ErrInvalidFacet)
}
