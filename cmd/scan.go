package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Art-Jashari/DevHealth/internal/models"
	"github.com/Art-Jashari/DevHealth/internal/reporter"
	"github.com/Art-Jashari/DevHealth/internal/scanner"
)

// ErrScanErrors is returned with --fail-on-error when any file could not be scanned.
var ErrScanErrors = errors.New("scan recorded errors")

type scanOptions struct {
	maxDepth        int
	ignore          []string
	noDefaultIgnore bool
	format          string
	output          string
	workers         int
	failOnError     bool
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree and report project dependencies",
		Long: `Scan walks path (default: the current directory), detects every project
beneath it and reports the dependencies declared in its manifests.

Malformed manifests and unreadable directories are reported and skipped.

Settings may also come from the environment or a .env file in the working
directory: DEVHEALTH_MAX_DEPTH, DEVHEALTH_WORKERS, DEVHEALTH_FORMAT and
DEVHEALTH_IGNORE (comma separated). Flags take precedence.

Examples:
  # Scan the current directory
  devhealth scan

  # Scan a workspace and emit JSON
  devhealth scan ~/src --format json --output deps.json

  # Skip generated code and fail when any manifest is broken
  devhealth scan --ignore 'testdata' --fail-on-error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.maxDepth, "max-depth", models.DefaultMaxDepth, "deepest directory level to visit (root is 0)")
	flags.StringArrayVar(&opts.ignore, "ignore", nil, "gitignore-style pattern to skip (repeatable)")
	flags.BoolVar(&opts.noDefaultIgnore, "no-default-ignore", false, "do not skip node_modules, target, .git and similar directories")
	flags.StringVarP(&opts.format, "format", "f", "terminal", "output format: terminal, json")
	flags.StringVarP(&opts.output, "output", "o", "", "output file path (default: stdout)")
	flags.IntVar(&opts.workers, "workers", 0, "projects parsed concurrently (default: number of CPUs)")
	flags.BoolVar(&opts.failOnError, "fail-on-error", false, "exit with an error if any manifest or directory could not be scanned")

	return cmd
}

// config layers defaults, environment and explicitly set flags.
func (o *scanOptions) config(cmd *cobra.Command, args []string) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if o.noDefaultIgnore {
		cfg.Ignore = nil
	}
	if err := cfg.LoadEnv(".env"); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Root = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth = o.maxDepth
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("format") {
		cfg.OutputFormat = o.format
	}
	cfg.Ignore = append(cfg.Ignore, o.ignore...)
	cfg.OutputFile = o.output
	cfg.FailOnError = o.failOnError

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string, opts *scanOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.config(cmd, args)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := scanner.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize scanner: %w", err)
	}

	prog := newProgress(logger)
	summary, err := s.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	prog.done(fmt.Sprintf("Scanned %d projects", summary.ProjectCount()))

	// Files never get color codes
	var dest io.Writer = cmd.OutOrStdout()
	if cfg.OutputFile != "" {
		dest = io.Discard
	}
	rep, err := reporter.Get(cfg.OutputFormat, dest)
	if err != nil {
		return err
	}
	output, err := rep.Report(summary)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	if len(output) > 0 && output[len(output)-1] != '\n' {
		output = append(output, '\n')
	}

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, output, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("Report written", "path", cfg.OutputFile)
	} else if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.FailOnError && len(summary.Errors) > 0 {
		return fmt.Errorf("%w: %d", ErrScanErrors, len(summary.Errors))
	}
	return nil
}
