// Package catalog holds a directory of light curves in memory and indexes
// them by the field, tile and color encoded in their filenames.
package catalog

import (
	"cmp"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/kamusis/lcdb/internal/lightcurve"
	"github.com/rs/zerolog"
)

// lcMarker selects light-curve files during Populate.
const lcMarker = ".mjd"

// State is the lifecycle stage of a Collection.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateIndexed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateIndexed:
		return "indexed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Collection owns a set of records keyed by bare filename, plus three
// one-to-many indexes over them. Index buckets share the record pointers.
//
// Records keep the order in which they were first added, so bucket order is
// deterministic. All methods are safe for concurrent use; Populate and Index
// hold an exclusive lock for their whole duration.
type Collection struct {
	mu sync.RWMutex

	names   []string
	records map[string]*lightcurve.Record

	fieldIndex map[int][]*lightcurve.Record
	tileIndex  map[int][]*lightcurve.Record
	colorIndex map[string][]*lightcurve.Record
	indexed    bool

	log zerolog.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Collection) { c.log = l }
}

// New returns an empty collection.
func New(opts ...Option) *Collection {
	c := &Collection{
		records:    make(map[string]*lightcurve.Record),
		fieldIndex: make(map[int][]*lightcurve.Record),
		tileIndex:  make(map[int][]*lightcurve.Record),
		colorIndex: make(map[string][]*lightcurve.Record),
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SkippedFile is a file PopulateLenient could not load.
type SkippedFile struct {
	Name string
	Err  error
}

// PopulateResult summarizes a lenient populate.
type PopulateResult struct {
	Loaded  int
	Skipped []SkippedFile
}

// Populate loads every file directly inside dir whose name contains ".mjd".
// Subdirectories are never entered. The first parse failure aborts the call;
// records stored before it are kept.
func (c *Collection) Populate(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.populate(dir, false)
	return err
}

// PopulateLenient is Populate that records unparseable files in the result
// and keeps going. Only a failure to list dir is returned as an error.
func (c *Collection) PopulateLenient(dir string) (*PopulateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.populate(dir, true)
}

func (c *Collection) populate(dir string, lenient bool) (*PopulateResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", dir, err)
	}

	result := &PopulateResult{}
	for _, e := range entries {
		name := e.Name()
		if !strings.Contains(name, lcMarker) {
			continue
		}
		path := filepath.Join(dir, name)
		if isDir(e, path) {
			continue
		}

		rec, err := lightcurve.ReadFile(path)
		if err != nil {
			if !lenient {
				return result, err
			}
			c.log.Warn().Err(err).Str("file", name).Msg("skipping unreadable light curve")
			result.Skipped = append(result.Skipped, SkippedFile{Name: name, Err: err})
			continue
		}
		c.put(name, rec)
		result.Loaded++
		c.log.Debug().Str("file", name).Int("samples", rec.Len()).Msg("loaded light curve")
	}
	return result, nil
}

// isDir reports whether a directory entry is, or links to, a directory.
func isDir(e fs.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// put stores rec under name, keeping the original position on overwrite.
func (c *Collection) put(name string, rec *lightcurve.Record) {
	if _, ok := c.records[name]; !ok {
		c.names = append(c.names, name)
	}
	c.records[name] = rec
}

// Index rebuilds the field, tile and color indexes from the current records.
// The new indexes replace the old ones only if every filename parses, so a
// failed call leaves the previous indexes untouched and repeated calls never
// duplicate entries.
func (c *Collection) Index() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fieldIndex := make(map[int][]*lightcurve.Record)
	tileIndex := make(map[int][]*lightcurve.Record)
	colorIndex := make(map[string][]*lightcurve.Record)

	for _, name := range c.names {
		f, err := ParseFilename(name)
		if err != nil {
			return err
		}
		rec := c.records[name]
		fieldIndex[f.Field] = append(fieldIndex[f.Field], rec)
		tileIndex[f.Tile] = append(tileIndex[f.Tile], rec)
		colorIndex[f.Color] = append(colorIndex[f.Color], rec)
	}

	c.fieldIndex, c.tileIndex, c.colorIndex = fieldIndex, tileIndex, colorIndex
	c.indexed = true
	c.log.Debug().
		Int("records", len(c.names)).
		Int("fields", len(fieldIndex)).
		Int("tiles", len(tileIndex)).
		Int("colors", len(colorIndex)).
		Msg("index rebuilt")
	return nil
}

// Retrieve returns the records indexed under value for the named facet, in
// collection order. field and tile are keyed by int, color by string. A value
// that was never indexed (including one of the wrong type) yields an empty
// slice and no error; an unknown facet yields an *InvalidFacetError. Any Go
// integer type is accepted for field and tile; unsigned values above MaxInt
// match nothing.
func (c *Collection) Retrieve(facet string, value any) ([]*lightcurve.Record, error) {
	f, err := ParseFacet(facet)
	if err != nil {
		return nil, err
	}
	switch f {
	case FacetField, FacetTile:
		n, ok := asInt(value)
		if !ok {
			return []*lightcurve.Record{}, nil
		}
		if f == FacetField {
			return c.ByField(n), nil
		}
		return c.ByTile(n), nil
	default:
		s, ok := value.(string)
		if !ok {
			return []*lightcurve.Record{}, nil
		}
		return c.ByColor(s), nil
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// ByField returns the records whose filename encodes field.
func (c *Collection) ByField(field int) []*lightcurve.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return bucket(c.fieldIndex, field)
}

// ByTile returns the records whose filename encodes tile.
func (c *Collection) ByTile(tile int) []*lightcurve.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return bucket(c.tileIndex, tile)
}

// ByColor returns the records whose filename encodes color.
func (c *Collection) ByColor(color string) []*lightcurve.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return bucket(c.colorIndex, color)
}

// bucket copies a bucket so callers cannot reorder the index.
func bucket[K comparable](idx map[K][]*lightcurve.Record, key K) []*lightcurve.Record {
	return append([]*lightcurve.Record{}, idx[key]...)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}

// Get returns the record stored under a bare filename.
func (c *Collection) Get(name string) (*lightcurve.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[name]
	return rec, ok
}

// Names returns record keys in collection order.
func (c *Collection) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.names)
}

// State reports how far the collection has been built.
func (c *Collection) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.indexed:
		return StateIndexed
	case len(c.names) > 0:
		return StatePopulated
	}
	return StateEmpty
}

// BucketSize is the number of records under one facet value.
type BucketSize struct {
	Value any
	Count int
}

// Buckets lists the indexed values of a facet with their sizes, sorted by
// value.
func (c *Collection) Buckets(facet Facet) ([]BucketSize, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch facet {
	case FacetField:
		return bucketSizes(c.fieldIndex), nil
	case FacetTile:
		return bucketSizes(c.tileIndex), nil
	case FacetColor:
		return bucketSizes(c.colorIndex), nil
	}
	return nil, &InvalidFacetError{Facet: string(facet)}
}

func bucketSizes[K cmp.Ordered](idx map[K][]*lightcurve.Record) []BucketSize {
	keys := make([]K, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]BucketSize, 0, len(keys))
	for _, k := range keys {
		out = append(out, BucketSize{Value: k, Count: len(idx[k])})
	}
	return out
}
