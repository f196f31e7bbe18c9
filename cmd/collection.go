package cmd

import (
	"fmt"

	"github.com/kamusis/lcdb/internal/catalog"
	"github.com/kamusis/lcdb/internal/config"
	"github.com/kamusis/lcdb/internal/logger"
)

// loadCollection populates and indexes the resolved data directory.
// In lenient mode unreadable files are reported and skipped.
func loadCollection(o loadOptions) (*catalog.Collection, string, error) {
	dir, err := config.ResolveDataDir(o.dir, cfg)
	if err != nil {
		return nil, "", err
	}

	c := catalog.New(catalog.WithLogger(logger.Get("catalog")))
	if o.lenient || (cfg != nil && cfg.Lenient) {
		res, err := c.PopulateLenient(dir)
		if err != nil {
			return nil, "", err
		}
		for _, s := range res.Skipped {
			printWarn(s.Name, fmt.Sprintf("skipped: %v", s.Err))
		}
	} else if err := c.Populate(dir); err != nil {
		return nil, "", fmt.Errorf("cannot load %s: %w\nRe-run with --lenient to skip unreadable files.", dir, err)
	}

	if err := c.Index(); err != nil {
		return nil, "", fmt.Errorf("cannot index %s: %w", dir, err)
	}
	return c, dir, nil
}
