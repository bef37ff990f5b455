package models

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultMaxDepth bounds directory recursion when no depth is configured.
const DefaultMaxDepth = 16

// DefaultIgnore lists directories that never hold projects of their own.
var DefaultIgnore = []string{
	".git", ".hg", ".svn",
	"node_modules", "vendor", "target",
	"__pycache__", ".venv", "venv", ".tox", ".mypy_cache", ".pytest_cache",
	"dist", "build",
}

// Config holds configuration for the scanner
type Config struct {
	// Root directory to scan
	Root string

	// Traversal settings
	MaxDepth int      // Directories deeper than this are not visited
	Ignore   []string // Gitignore-style patterns matched against root-relative paths

	// Output settings
	OutputFormat string // "terminal", "json"
	OutputFile   string // Optional output file path

	// Behavior settings
	FailOnError bool // Exit with code 1 if any manifest failed
	Workers     int  // Projects parsed concurrently
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Root:         ".",
		MaxDepth:     DefaultMaxDepth,
		Ignore:       append([]string(nil), DefaultIgnore...),
		OutputFormat: "terminal",
		FailOnError:  false,
		Workers:      runtime.NumCPU(),
	}
}

// Environment variables understood by LoadEnv.
const (
	EnvMaxDepth = "DEVHEALTH_MAX_DEPTH"
	EnvWorkers  = "DEVHEALTH_WORKERS"
	EnvFormat   = "DEVHEALTH_FORMAT"
	EnvIgnore   = "DEVHEALTH_IGNORE"
)

// LoadEnv loads .env files (missing files are ignored) and applies any
// DEVHEALTH_* variables on top of c.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return c.ApplyEnv(os.Getenv)
}

// ApplyEnv applies DEVHEALTH_* values looked up through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvMaxDepth)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxDepth, err)
		}
		c.MaxDepth = n
	}
	if v := strings.TrimSpace(getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v := strings.TrimSpace(getenv(EnvFormat)); v != "" {
		c.OutputFormat = v
	}
	if v := strings.TrimSpace(getenv(EnvIgnore)); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Ignore = append(c.Ignore, p)
			}
		}
	}
	return nil
}

// Validate reports configuration values the scanner cannot work with.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root path is required")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	switch c.OutputFormat {
	case "terminal", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}
	return nil
}
