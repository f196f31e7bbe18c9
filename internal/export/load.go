package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a listing written by Write.
func Load(dir string) (*Listing, error) {
	manifestPath := filepath.Join(dir, manifestFile)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported listing format %d in %s", m.FormatVersion, manifestPath)
	}
	if m.RecordsFile == "" {
		m.RecordsFile = defaultRecordsFile
	}

	entries, err := loadEntries(filepath.Join(dir, m.RecordsFile))
	if err != nil {
		return nil, err
	}
	if len(entries) != m.Records {
		return nil, fmt.Errorf("record count mismatch in %s: manifest says %d, file has %d", dir, m.Records, len(entries))
	}
	return &Listing{Manifest: m, Entries: entries}, nil
}

func loadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open records file %s: %w", path, err)
	}
	defer f.Close()

	var out []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("invalid records JSONL %s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read records file %s: %w", path, err)
	}
	return out, nil
}
