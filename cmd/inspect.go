package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/kamusis/lcdb/internal/catalog"
	"github.com/kamusis/lcdb/internal/lightcurve"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Parse one light-curve file and show its metadata and samples",
	Long: `Parse a single light-curve file and print its header metadata, the
facets encoded in its filename, and the first samples.

Example:
  lcdb inspect ./curves/lc_0042.103.1.g.mjd`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	rec, err := lightcurve.ReadFile(args[0])
	if err != nil {
		return err
	}
	name := filepath.Base(rec.Source())

	printSection(name)
	printOK("", fmt.Sprintf("%d samples", rec.Len()))

	if f, err := catalog.ParseFilename(name); err != nil {
		printWarn("", fmt.Sprintf("filename does not encode facets: %v", err))
	} else {
		printInfo("", fmt.Sprintf("field=%d tile=%d color=%s", f.Field, f.Tile, f.Color))
	}

	meta := rec.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(stdout, "\nMetadata (%d):\n", len(keys))
	if len(keys) == 0 {
		printMiss("", "none")
	}
	for _, k := range keys {
		fmt.Fprintf(stdout, "  %s: %s\n", k, meta[k])
	}

	fmt.Fprintf(stdout, "\n%s\n", rec)
	return nil
}
