// Package main provides the CLI entrypoint for format-generator.
//
// format-generator reads YAML call-site files, assembles or checks the format
// string of every declared call, and emits Go wrapper functions containing
// only the validated sink calls. A call-site file that fails to resolve
// produces no output and a non-zero exit status.
//
// Commands:
//   - gen: generate wrapper files
//   - check: report generated files that are missing or out of date
//   - explain: print the resolved calls
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"format-generator/internal/config"
	"format-generator/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	strict     bool
	outputDir  string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "format-generator",
		Short: "Generate type-checked printf-style calls from call-site files",
		Long: `format-generator turns YAML call-site files into Go functions that call a
printf-like sink with an already assembled and validated format string.

Examples:
  # Generate calls_gen.go next to calls.yaml
  format-generator gen report/calls.yaml

  # Fail if generated files are stale
  format-generator check report/calls.yaml

  # Show the assembled format strings
  format-generator explain report/calls.yaml`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.strict, "strict", false, "treat warnings as errors")
	flags.StringVarP(&a.outputDir, "output", "o", "", "output directory (default: next to each call-site file)")

	root.AddCommand(a.newGenCmd(), a.newCheckCmd(), a.newExplainCmd())

	return root
}

// setup loads configuration and applies command line overrides.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		level, err := zapcore.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}

		cfg.Log.Level = level
	}

	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}

	if flags.Changed("output") {
		cfg.OutputDir = a.outputDir
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
