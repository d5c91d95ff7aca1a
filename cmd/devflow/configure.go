package main

import (
	"github.com/spf13/cobra"

	"github.com/steelcutops/devflow/devflow/buildmanager"
)

func (a *app) buildManager(cmd *cobra.Command) *buildmanager.BuildManager {
	return &buildmanager.BuildManager{
		CommandManager: a.streaming(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.log),
		FileManager:    a.files,
		Logger:         a.log,
		Out:            cmd.OutOrStdout(),
		DryRun:         a.flags.DryRun,
		FindTool:       a.findTool,
	}
}

func (a *app) buildOptions(cmd *cobra.Command) buildmanager.Options {
	return buildmanager.Options{
		Root:      a.root,
		BuildDir:  a.cfg.BuildDir,
		CMakePath: stringFlag(cmd, "cmake-path", a.cfg.CMake.Path),
		BuildType: stringFlag(cmd, "build-type", a.cfg.CMake.BuildType),
		Defines:   a.cfg.CMake.Defines,
	}
}

func newConfigureCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Recreate the build directory and generate the build system",
		Long: `Removes the build directory, creates it again and runs CMake to generate the
build system in it.

Exit status: 0 ok, 1 cmake not found, 2 cmake failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := a.buildOptions(cmd)
			o.Generator = stringFlag(cmd, "generator", a.cfg.CMake.Generator)
			return exitWith(a.buildManager(cmd).Configure(cmd.Context(), o))
		},
	}

	cmd.Flags().StringP("generator", "g", "", "CMake generator, for example Ninja")
	cmd.Flags().String("cmake-path", "", "Path to the cmake executable")
	cmd.Flags().String("build-type", "", "Value for CMAKE_BUILD_TYPE")
	return cmd
}

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the project in an existing build directory",
		Long: `Runs "cmake --build" in the build directory created by configure.

Exit status: 0 ok, 1 cmake not found, 2 no build directory, otherwise the
status cmake exited with.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := a.buildOptions(cmd)
			o.Target, _ = cmd.Flags().GetString("target")
			return exitWith(a.buildManager(cmd).Build(cmd.Context(), o))
		},
	}

	cmd.Flags().String("cmake-path", "", "Path to the cmake executable")
	cmd.Flags().StringP("target", "t", "", "Build only this target")
	cmd.Flags().String("build-type", "", "Configuration for multi-config generators")
	return cmd
}
