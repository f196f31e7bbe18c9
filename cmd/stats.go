package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/lcdb/internal/catalog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var statsOpts loadOptions

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many light curves fall under each field, tile and color",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	addLoadFlags(statsCmd, &statsOpts)
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	c, dir, err := loadCollection(statsOpts)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	printInfo("", p.Sprintf("%d light curves loaded from %s", c.Len(), dir))

	for _, f := range catalog.AllFacets {
		buckets, err := c.Buckets(f)
		if err != nil {
			return err
		}
		printSection(fmt.Sprintf("%s (%d values)", strings.ToUpper(string(f[:1]))+string(f[1:]), len(buckets)))
		if len(buckets) == 0 {
			printMiss("", "nothing indexed")
			continue
		}
		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, b := range buckets {
			p.Fprintf(w, "  %s\t%d\t\n", fmt.Sprint(b.Value), b.Count)
		}
		_ = w.Flush()
	}
	return nil
}
