package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment keys, read from the process first and ~/.lcdb/.env second.
const (
	EnvDataDir   = "LCDB_DATA_DIR"
	EnvLogLevel  = "LCDB_LOG_LEVEL"
	EnvLogFormat = "LCDB_LOG_FORMAT"
)

// Config is the in-memory representation of ~/.lcdb/lcdb.yaml.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	Lenient   bool   `yaml:"lenient,omitempty"`
	ExportDir string `yaml:"export_dir,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
}

// LcdbDir returns the absolute path to ~/.lcdb/.
func LcdbDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".lcdb"), nil
}

// ConfigPath returns the absolute path to ~/.lcdb/lcdb.yaml.
func ConfigPath() (string, error) {
	dir, err := LcdbDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lcdb.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written by lcdb init.
func DefaultConfig() (*Config, error) {
	dir, err := LcdbDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DataDir:   filepath.Join(dir, "data"),
		ExportDir: filepath.Join(dir, "export"),
		LogLevel:  "warn",
		LogFormat: "console",
	}, nil
}

// Load reads and parses ~/.lcdb/lcdb.yaml.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	// Expand ~ in paths at load time.
	if cfg.DataDir, err = ExpandPath(cfg.DataDir); err != nil {
		return nil, err
	}
	if cfg.ExportDir, err = ExpandPath(cfg.ExportDir); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault is Load, falling back to DefaultConfig when the file does
// not exist yet.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig()
	}
	return cfg, err
}

// Save marshals cfg and writes it to ~/.lcdb/lcdb.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// ResolveDataDir picks the light-curve directory: flag, then LCDB_DATA_DIR,
// then data_dir from the config file.
func ResolveDataDir(flag string, cfg *Config) (string, error) {
	if flag != "" {
		return ExpandPath(flag)
	}
	v, err := GetConfigValue(EnvDataDir)
	if err != nil {
		return "", err
	}
	if v != "" {
		return ExpandPath(v)
	}
	if cfg != nil && cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	return "", fmt.Errorf("no data directory: pass --dir, set %s, or run 'lcdb init'", EnvDataDir)
}
