package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/kamusis/lcdb/internal/catalog"
	"github.com/kamusis/lcdb/internal/config"
	"github.com/spf13/cobra"
)

var doctorDir string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config and every light-curve file in the data directory",
	Long: `Check that lcdb's config is readable and that every .mjd file in the
data directory parses and has a filename that encodes field, tile and color.
Run this command when populate or index fails to see every problem at once.`,
	Args:        cobra.NoArgs,
	RunE:        runDoctor,
	Annotations: map[string]string{annotationTolerateConfig: "true"},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorDir, "dir", "", "Light-curve directory to check")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	problems := 0
	failD := func(name, format string, args ...any) {
		printErr(name, fmt.Sprintf(format, args...))
		problems++
	}

	printSection("lcdb doctor")

	// ── Check 1: config file ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ lcdb.yaml ]")
	cfgPath, _ := config.ConfigPath()
	if _, err := config.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			printWarn("", fmt.Sprintf("%s not found, using defaults (run 'lcdb init')", cfgPath))
		} else {
			failD("", "%v", err)
		}
	} else {
		printOK("", fmt.Sprintf("valid YAML: %s", cfgPath))
	}

	// ── Check 2: data directory ───────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ data directory ]")
	dir, err := config.ResolveDataDir(doctorDir, cfg)
	if err != nil {
		failD("", "%v", err)
		return fmt.Errorf("%d problem(s) found", problems)
	}
	if info, err := os.Stat(dir); err != nil {
		failD("", "cannot access %s: %v", dir, err)
		return fmt.Errorf("%d problem(s) found", problems)
	} else if !info.IsDir() {
		failD("", "%s is not a directory", dir)
		return fmt.Errorf("%d problem(s) found", problems)
	}
	printOK("", dir)

	// ── Check 3: light-curve files ────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ light curves ]")
	c := catalog.New()
	res, err := c.PopulateLenient(dir)
	if err != nil {
		failD("", "%v", err)
		return fmt.Errorf("%d problem(s) found", problems)
	}
	for _, s := range res.Skipped {
		failD(s.Name, "%v", s.Err)
	}
	var badNames int
	for _, name := range c.Names() {
		if _, err := catalog.ParseFilename(name); err != nil {
			failD(name, "%v", err)
			badNames++
		}
	}
	if res.Loaded == 0 && len(res.Skipped) == 0 {
		printMiss("", "no .mjd files found")
	} else {
		printOK("", fmt.Sprintf("%d parsed, %d unreadable, %d with malformed names",
			res.Loaded, len(res.Skipped), badNames))
	}

	fmt.Fprintln(stdout)
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	printOK("", "all checks passed")
	return nil
}
