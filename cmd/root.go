package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// newRootCmd builds the command tree. Reports go to stdout, logs to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "devhealth",
		Short: "Inventory the third-party dependencies of every project in a tree",
		Long: `devhealth walks a directory tree, detects software projects by their
manifest files and reports the dependencies each one declares.

It supports multiple ecosystems:
  - Rust: Cargo.toml
  - Node.js: package.json
  - Python: requirements.txt, pyproject.toml, Pipfile
  - Go: go.mod`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newScanCmd())

	return root
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}
