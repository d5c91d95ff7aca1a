package main

import (
	"github.com/spf13/cobra"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	"github.com/steelcutops/devflow/devflow/packagemanager"
	"github.com/steelcutops/devflow/devflow/platform"
)

func newInstallDepsCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "install-deps",
		Short: "Install the build dependencies with the system package manager",
		Long: `Refreshes the package index and installs the build dependencies with apt-get
on Linux or brew on macOS. Other systems are skipped.

Exit status: 0 ok or skipped, 1 update failed, 2 install failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			installer := packagemanager.NewInstaller(
				a.streaming(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.log),
				a.log,
				cmd.OutOrStdout(),
			)
			if list {
				return exitWith(int(installer.List(a.platform)))
			}

			policy := cm.Policy{DryRun: a.flags.DryRun, Sudo: a.useSudo(cmd)}
			return exitWith(int(installer.Run(cmd.Context(), a.platform, policy)))
		},
	}

	cmd.Flags().Bool("sudo", false, "Run the package manager with sudo")
	cmd.Flags().Bool("no-sudo", false, "Run the package manager without sudo")
	cmd.MarkFlagsMutuallyExclusive("sudo", "no-sudo")
	cmd.Flags().BoolVar(&list, "list", false, "List the packages that would be installed")
	return cmd
}

// useSudo applies, in increasing precedence, the platform default, the
// [deps] sudo setting and the --sudo/--no-sudo flags.
func (a *app) useSudo(cmd *cobra.Command) bool {
	sudo := platform.NeedsSudo(a.platform)
	if a.cfg.Deps.Sudo != nil {
		sudo = *a.cfg.Deps.Sudo
	}
	if cmd.Flags().Changed("sudo") {
		sudo, _ = cmd.Flags().GetBool("sudo")
	}
	if cmd.Flags().Changed("no-sudo") {
		noSudo, _ := cmd.Flags().GetBool("no-sudo")
		sudo = !noSudo
	}
	return sudo
}
