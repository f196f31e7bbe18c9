package lightcurve

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single line; bufio's 64 KiB default is too small for
// wide rows.
const maxLineSize = 1 << 20

// ReadFile parses the light-curve file at path. The returned record's
// Source is path.
func ReadFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open light curve %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a light curve from r.
//
// Format:
//   - line 1: a label followed by facet names
//   - line 2: a label followed by facet values, paired with the names by position
//   - then data rows "time amplitude error [ignored...]"; lines starting
//     with '#' and blank lines are skipped
func Read(r io.Reader, source string) (*Record, error) {
	var (
		names   []string
		values  []string
		samples []Sample
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		switch lineNo {
		case 1:
			names = headerTokens(line)
			continue
		case 2:
			values = headerTokens(line)
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		s, err := parseRow(fields)
		if err != nil {
			err.Source = source
			err.Line = lineNo
			return nil, err
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read light curve %s: %w", source, err)
	}
	if lineNo < 2 {
		return nil, &ParseError{
			Source: source,
			Err:    ErrMalformedHeader,
			Detail: fmt.Sprintf("want 2 header lines, got %d", lineNo),
		}
	}

	return New(samples, zipMetadata(names, values), source), nil
}

// headerTokens drops the leading label of a header line.
func headerTokens(line string) []string {
	fields := strings.Fields(line)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

func zipMetadata(names, values []string) map[string]string {
	n := min(len(names), len(values))
	out := make(map[string]string, n)
	for i := 0; i < n; i++ {
		out[names[i]] = values[i]
	}
	return out
}

func parseRow(fields []string) (Sample, *ParseError) {
	if len(fields) < 3 {
		return Sample{}, &ParseError{
			Err:    ErrTooFewColumns,
			Detail: fmt.Sprintf("want at least 3, got %d", len(fields)),
		}
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Sample{}, &ParseError{
				Err:    ErrInvalidNumber,
				Detail: fmt.Sprintf("column %d: %q", i+1, fields[i]),
			}
		}
		v[i] = f
	}
	return Sample{Time: v[0], Amplitude: v[1], Error: v[2]}, nil
}
