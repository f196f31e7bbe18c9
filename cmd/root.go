package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/kamusis/lcdb/internal/config"
	"github.com/kamusis/lcdb/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagLogLevel  string
	flagLogFormat string

	// cfg is loaded once before any command runs.
	cfg *config.Config
)

// annotationTolerateConfig marks commands that still run on defaults when
// lcdb.yaml cannot be read, so they can report the problem themselves.
const annotationTolerateConfig = "lcdb/tolerate-config-error"

var rootCmd = &cobra.Command{
	Use:          "lcdb",
	Short:        "Load and index light-curve files",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `lcdb reads a directory of light-curve (.mjd) files and looks them up
by the field, tile and color encoded in their filenames.`,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: console or json (default console)")
}

// setup loads the config file and configures logging. Flags beat
// LCDB_LOG_* variables, which beat the config file.
func setup(cmd *cobra.Command, _ []string) error {
	var loadErr error
	cfg, loadErr = config.LoadOrDefault()
	if loadErr != nil {
		if cmd.Annotations[annotationTolerateConfig] == "" {
			return loadErr
		}
		def, err := config.DefaultConfig()
		if err != nil {
			return errors.Join(loadErr, err)
		}
		cfg = def
	}
	level, format, err := logSettings()
	if err != nil {
		return err
	}
	logger.Setup(level, format)
	if loadErr != nil {
		log := logger.Get("config")
		log.Warn().Err(loadErr).Msg("config unreadable, using defaults")
	}
	return nil
}

// logSettings resolves the log level and format; the format defaults to
// console.
func logSettings() (level, format string, err error) {
	if level, err = firstSet(flagLogLevel, config.EnvLogLevel, cfg.LogLevel); err != nil {
		return "", "", err
	}
	if format, err = firstSet(flagLogFormat, config.EnvLogFormat, cfg.LogFormat); err != nil {
		return "", "", err
	}
	if format == "" {
		format = "console"
	}
	return level, format, nil
}

func firstSet(flag, envKey, fromConfig string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	v, err := config.GetConfigValue(envKey)
	if err != nil {
		return "", err
	}
	if v != "" {
		return v, nil
	}
	return fromConfig, nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
