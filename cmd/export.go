package cmd

import (
	"fmt"
	"time"

	"github.com/kamusis/lcdb/internal/config"
	"github.com/kamusis/lcdb/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportOpts            loadOptions
	flagExportOut         string
	flagExportLockTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON listing of every light curve and its facets",
	Long: `Load and index the data directory, then write catalog_manifest.json and
records.jsonl into the output directory. The previous listing is replaced
atomically.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	addLoadFlags(exportCmd, &exportOpts)
	exportCmd.Flags().StringVar(&flagExportOut, "out", "", "Output directory (default: export_dir in ~/.lcdb/lcdb.yaml)")
	exportCmd.Flags().DurationVar(&flagExportLockTimeout, "lock-timeout", 10*time.Second, "How long to wait for a concurrent export to finish")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	out := flagExportOut
	if out == "" && cfg != nil {
		out = cfg.ExportDir
	}
	if out == "" {
		return fmt.Errorf("no output directory: pass --out or set export_dir in the config")
	}
	out, err := config.ExpandPath(out)
	if err != nil {
		return err
	}

	c, dir, err := loadCollection(exportOpts)
	if err != nil {
		return err
	}
	m, err := export.Run(c, dir, out, flagExportLockTimeout)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	printOK("", fmt.Sprintf("%d light curves written to %s", m.Records, out))
	return nil
}
