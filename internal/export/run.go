package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamusis/lcdb/internal/catalog"
)

// Run writes the listing for c into outDir. It builds the listing in a
// temporary sibling directory and swaps it in, holding the export lock.
func Run(c *catalog.Collection, sourceDir, outDir string, lockTimeout time.Duration) (*Manifest, error) {
	release, err := AcquireLock(outDir, lockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	entries, err := Entries(c)
	if err != nil {
		return nil, err
	}

	parent := filepath.Dir(filepath.Clean(outDir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", parent, err)
	}
	tmpDir, err := os.MkdirTemp(parent, ".export-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp export dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	m := Manifest{SourceDir: sourceDir}
	if err := Write(tmpDir, m, entries); err != nil {
		return nil, err
	}
	if err := AtomicSwap(tmpDir, outDir); err != nil {
		return nil, fmt.Errorf("cannot install export: %w", err)
	}

	l, err := Load(outDir)
	if err != nil {
		return nil, err
	}
	return &l.Manifest, nil
}
