package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamusis/lcdb/internal/catalog"
)

const (
	manifestFile       = "catalog_manifest.json"
	defaultRecordsFile = "records.jsonl"
)

// Entries converts every record of c, in collection order, to listing rows.
// It fails on the first filename that does not encode facets.
func Entries(c *catalog.Collection) ([]Entry, error) {
	names := c.Names()
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		rec, ok := c.Get(name)
		if !ok {
			continue
		}
		f, err := catalog.ParseFilename(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{
			Name:     name,
			Source:   rec.Source(),
			Field:    f.Field,
			Tile:     f.Tile,
			Color:    f.Color,
			Samples:  rec.Len(),
			Metadata: rec.Metadata(),
		})
	}
	return out, nil
}

// Write writes listing artifacts to dir.
func Write(dir string, manifest Manifest, entries []Entry) error {
	if manifest.RecordsFile == "" {
		manifest.RecordsFile = defaultRecordsFile
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if manifest.FormatVersion == 0 {
		manifest.FormatVersion = FormatVersion
	}
	manifest.Records = len(entries)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create export dir %s: %w", dir, err)
	}

	// manifest
	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	// records jsonl
	rf, err := os.Create(filepath.Join(dir, manifest.RecordsFile))
	if err != nil {
		return fmt.Errorf("cannot create records file: %w", err)
	}
	bw := bufio.NewWriter(rf)
	enc := json.NewEncoder(bw)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			_ = rf.Close()
			return fmt.Errorf("cannot write record %s: %w", e.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = rf.Close()
		return err
	}
	return rf.Close()
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}
