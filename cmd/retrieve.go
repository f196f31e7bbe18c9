package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/kamusis/lcdb/internal/catalog"
	"github.com/kamusis/lcdb/internal/lightcurve"
	"github.com/spf13/cobra"
)

// loadOptions are the flags of a command that loads a directory.
type loadOptions struct {
	dir     string
	lenient bool
}

var retrieveOpts loadOptions

var retrieveCmd = &cobra.Command{
	Use:   "retrieve <field|tile|color> <value>",
	Short: "List light curves with a given field, tile or color",
	Long: `Load every .mjd file in the data directory, index it by the facets in
its filename, and print the light curves under one facet value.

Filenames follow <lc_field>.<tile>.<seq>.<color>.<ext>, for example
lc_0042.103.1.g.mjd has field 42, tile 103 and color g.

Example:
  lcdb retrieve tile 103 --dir ./curves
  lcdb retrieve color g`,
	Args: cobra.ExactArgs(2),
	RunE: runRetrieve,
}

func init() {
	addLoadFlags(retrieveCmd, &retrieveOpts)
	rootCmd.AddCommand(retrieveCmd)
}

// addLoadFlags registers the flags shared by commands that load a directory.
func addLoadFlags(c *cobra.Command, o *loadOptions) {
	c.Flags().StringVar(&o.dir, "dir", "", "Light-curve directory (default: $LCDB_DATA_DIR or data_dir in ~/.lcdb/lcdb.yaml)")
	c.Flags().BoolVar(&o.lenient, "lenient", false, "Skip unreadable files instead of failing")
}

func runRetrieve(_ *cobra.Command, args []string) error {
	facet, err := catalog.ParseFacet(args[0])
	if err != nil {
		return err
	}
	value, err := catalog.ParseValue(facet, args[1])
	if err != nil {
		return err
	}

	c, dir, err := loadCollection(retrieveOpts)
	if err != nil {
		return err
	}
	recs, err := c.Retrieve(string(facet), value)
	if err != nil {
		return err
	}

	printInfo("", fmt.Sprintf("%d light curves loaded from %s", c.Len(), dir))
	printRecords(fmt.Sprintf("%s=%v", facet, value), recs)
	return nil
}

func printRecords(query string, recs []*lightcurve.Record) {
	fmt.Fprintf(stdout, "\nResults for %s (%d found):\n", query, len(recs))
	if len(recs) == 0 {
		printMiss("", "no light curves match")
		return
	}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for i, r := range recs {
		fmt.Fprintf(w, "  %d.\t%s\t%d samples\t%s\n", i+1, filepath.Base(r.Source()), r.Len(), r)
	}
	_ = w.Flush()
}
