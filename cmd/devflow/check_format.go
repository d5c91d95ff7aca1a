package main

import (
	"github.com/spf13/cobra"

	"github.com/steelcutops/devflow/devflow/formatmanager"
)

func newCheckFormatCmd(a *app) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check-format",
		Short: "Check the sources against the project's .clang-format",
		Long: `Runs clang-format over the configured source directories and reports every
file it would change. Nothing is modified, so --dry-run is ignored here and
clang-format always runs.

Exit status: 0 clean, 1 formatting errors, 2 no .clang-format or clang-format
could not run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &formatmanager.FormatManager{
				CommandManager: a.capturing(a.log),
				FileManager:    a.files,
				Logger:         a.log,
				Out:            cmd.OutOrStdout(),
			}
			code, _ := f.Check(cmd.Context(), formatmanager.Options{
				Root:        a.root,
				ClangFormat: stringFlag(cmd, "clang-format-path", a.cfg.Format.ClangFormat),
				Paths:       a.cfg.Format.Paths,
				Extensions:  a.cfg.Format.Extensions,
				ShowDiff:    showDiff,
			})
			return exitWith(code)
		},
	}

	cmd.Flags().StringP("clang-format-path", "c", "", "Path to the clang-format executable")
	cmd.Flags().BoolVar(&showDiff, "show-diff", false, "Print a unified diff for every file with errors")
	return cmd
}
