package main

import (
	"github.com/spf13/cobra"

	"github.com/steelcutops/devflow/devflow/testmanager"
)

func newTestCmd(a *app) *cobra.Command {
	var o testmanager.Options

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run a test executable from the build directory",
		Long: `Finds the executable of the given target below the build directory and runs
it there, optionally under valgrind (Linux only).

Exit status: 0 ok, 1 no target or executable, 2 no build directory,
otherwise the status the tests exited with.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Root = a.root
			o.BuildDir = a.cfg.BuildDir
			o.Suppressions = a.cfg.Test.Suppressions
			o.GOOS = a.goos

			tm := &testmanager.TestManager{
				CommandManager: a.streaming(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.log),
				FileManager:    a.files,
				Logger:         a.log,
				Out:            cmd.OutOrStdout(),
				DryRun:         a.flags.DryRun,
			}
			return exitWith(tm.Run(cmd.Context(), o))
		},
	}

	cmd.Flags().StringVarP(&o.Target, "target", "t", "", "Test target to run")
	cmd.Flags().BoolVar(&o.Valgrind, "valgrind", false, "Run the tests under valgrind memcheck")
	return cmd
}
