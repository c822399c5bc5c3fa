package main

import (
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"format-generator/internal/gen"
	"format-generator/internal/plan"
)

func (a *app) newGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen <calls.yaml>...",
		Short: "Generate wrapper functions from call-site files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.buildAll(args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			for _, res := range results {
				if err := gen.WriteFiles([]gen.GeneratedFile{*res.file}, res.outputDir); err != nil {
					return err
				}

				a.logger.Info("wrote file",
					zap.String("source", res.source),
					zap.String("path", filepath.Join(res.outputDir, res.file.Filename)),
					zap.Int("calls", len(res.plan.Calls)),
				)
			}

			return nil
		},
	}
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <calls.yaml>...",
		Short: "Check that generated files are present and up to date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.buildAll(args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			stale := 0

			for _, res := range results {
				state, err := gen.CheckFile(*res.file, res.outputDir)
				if err != nil {
					return err
				}

				path := filepath.Join(res.outputDir, res.file.Filename)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, state)

				if state != gen.UpToDate {
					stale++
				}
			}

			if stale > 0 {
				return fmt.Errorf("%d generated files need regeneration", stale)
			}

			return nil
		},
	}
}

func (a *app) newExplainCmd() *cobra.Command {
	var (
		dump    bool
		lowered bool
	)

	cmd := &cobra.Command{
		Use:   "explain <calls.yaml>",
		Short: "Print the resolved calls of a call-site file",
		Long: `Print the resolved calls of a call-site file: the assembled format string,
the emitted sink call and the argument keys. Resolution errors are included.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if p == nil {
				return err
			}

			out := cmd.OutOrStdout()

			switch {
			case dump:
				spew.Fdump(out, p)
			case lowered:
				data, marshalErr := plan.ExportCallSitesYAML(p)
				if marshalErr != nil {
					return marshalErr
				}

				_, _ = out.Write(data)
			default:
				data, marshalErr := plan.ReportYAML(p)
				if marshalErr != nil {
					return marshalErr
				}

				_, _ = out.Write(data)
			}

			return err
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the full plan structure")
	cmd.Flags().BoolVar(&lowered, "lowered", false, "print the call-site file with every call in format form")

	return cmd
}
