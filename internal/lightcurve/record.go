// Package lightcurve reads light-curve files into immutable records.
//
// A light curve is a time-ordered series of brightness measurements, each
// with an uncertainty. One file holds one light curve.
package lightcurve

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// reprPoints is the number of points rendered by Record.String.
const reprPoints = 10

// Sample is one parsed data row.
type Sample struct {
	Time      float64
	Amplitude float64
	Error     float64
}

// Point is one (time, amplitude) pair of a record's time series.
type Point struct {
	Time      float64
	Amplitude float64
}

// Record is a parsed light curve. It is never mutated after construction;
// every accessor returns a copy.
type Record struct {
	times      []float64
	amplitudes []float64
	errors     []float64
	timeseries []Point
	metadata   map[string]string
	source     string
}

// New builds a Record from samples in file order.
func New(samples []Sample, metadata map[string]string, source string) *Record {
	r := &Record{
		times:      make([]float64, len(samples)),
		amplitudes: make([]float64, len(samples)),
		errors:     make([]float64, len(samples)),
		timeseries: make([]Point, len(samples)),
		metadata:   maps.Clone(metadata),
		source:     source,
	}
	if r.metadata == nil {
		r.metadata = map[string]string{}
	}
	for i, s := range samples {
		r.times[i] = s.Time
		r.amplitudes[i] = s.Amplitude
		r.errors[i] = s.Error
		r.timeseries[i] = Point{Time: s.Time, Amplitude: s.Amplitude}
	}
	return r
}

// Times returns the timestamps.
func (r *Record) Times() []float64 { return slices.Clone(r.times) }

// Amplitudes returns the measured values.
func (r *Record) Amplitudes() []float64 { return slices.Clone(r.amplitudes) }

// Errors returns the per-sample uncertainties.
func (r *Record) Errors() []float64 { return slices.Clone(r.errors) }

// Timeseries returns the (time, amplitude) pairs.
func (r *Record) Timeseries() []Point { return slices.Clone(r.timeseries) }

// Metadata returns the header facets, name to value.
func (r *Record) Metadata() map[string]string { return maps.Clone(r.metadata) }

// Meta returns one header facet value.
func (r *Record) Meta(name string) (string, bool) {
	v, ok := r.metadata[name]
	return v, ok
}

// Source returns the path the record was read from.
func (r *Record) Source() string { return r.source }

// Len returns the number of samples.
func (r *Record) Len() int { return len(r.times) }

// At returns the i-th point of the time series. It panics if i is out of range.
func (r *Record) At(i int) Point { return r.timeseries[i] }

// String renders at most the first ten points, e.g.
//
//	LightCurve([(1, 2), (2, 2.5)])
//
// Longer records end with ", ...".
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("LightCurve([")
	n := min(len(r.timeseries), reprPoints)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		p := r.timeseries[i]
		fmt.Fprintf(&b, "(%g, %g)", p.Time, p.Amplitude)
	}
	if len(r.timeseries) > reprPoints {
		b.WriteString(", ...")
	}
	b.WriteString("])")
	return b.String()
}
