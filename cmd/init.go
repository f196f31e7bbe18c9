package cmd

import (
	"fmt"
	"os"

	"github.com/kamusis/lcdb/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.lcdb with a default config and .env template",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.lcdb directory ──────────────────────────────────────────
	dir, err := config.LcdbDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("lcdb directory ready: %s", dir))

	// ── 2. Write lcdb.yaml if missing ─────────────────────────────────────────
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	current := cfg
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		current, err = config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(current); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	} else {
		printInfo("", fmt.Sprintf("config already exists: %s", cfgPath))
	}

	// ── 3. Write .env template if missing ─────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	printOK("", "dotenv template ready")

	// ── 4. Create the data directory ──────────────────────────────────────────
	if current != nil && current.DataDir != "" {
		if err := os.MkdirAll(current.DataDir, 0o755); err != nil {
			return fmt.Errorf("cannot create data dir %s: %w", current.DataDir, err)
		}
		printOK("", fmt.Sprintf("data directory ready: %s (put .mjd files here)", current.DataDir))
	}
	return nil
}
