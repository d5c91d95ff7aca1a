package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	"github.com/steelcutops/devflow/devflow/config"
	fm "github.com/steelcutops/devflow/devflow/filemanager"
	"github.com/steelcutops/devflow/devflow/platform"
	"github.com/steelcutops/devflow/logger"
)

type globalFlags struct {
	Root       string
	ConfigFile string
	Debug      bool
	DryRun     bool
	BuildDir   string
}

// app holds everything the subcommands share. Tests swap the runners and the
// tool lookup.
type app struct {
	platform platform.Platform
	goos     string

	// streaming runs tools whose output the user should see as it happens.
	streaming func(stdout, stderr io.Writer, log logger.Logger) cm.CommandManager
	// capturing runs tools whose output devflow parses.
	capturing func(log logger.Logger) cm.CommandManager
	findTool  func(explicit, name string) (string, error)

	flags globalFlags
	root  string
	cfg   *config.Config
	log   logger.Logger
	files *fm.LocalFileManager
}

func newApp(p platform.Platform, goos string) *app {
	return &app{
		platform: p,
		goos:     goos,
		streaming: func(stdout, stderr io.Writer, log logger.Logger) cm.CommandManager {
			return cm.NewLocalCommandManager(stdout, stderr, log)
		},
		capturing: func(log logger.Logger) cm.CommandManager {
			return &cm.LocalCommandManager{Logger: log}
		},
		findTool: cm.FindTool,
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devflow",
		Short: "Configure, build, test and format-check a CMake project",
		Long: `devflow drives the developer workflow of a CMake based project by running
CMake, clang-format, valgrind and the system package manager.

Every step runs in the foreground without a timeout; a hung tool hangs devflow.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.flags.Root, "root", "", "Project root (default is the current directory)")
	flags.StringVar(&a.flags.ConfigFile, "config", "", "Additional config file merged over "+config.FileName)
	flags.BoolVar(&a.flags.Debug, "debug", false, "Enable debug logging")
	flags.BoolVarP(&a.flags.DryRun, "dry-run", "n", false, "Print commands instead of running them")
	flags.StringVar(&a.flags.BuildDir, "build-dir", "", "Build directory relative to the project root")

	cmd.AddCommand(
		newInstallDepsCmd(a),
		newConfigureCmd(a),
		newBuildCmd(a),
		newTestCmd(a),
		newCheckFormatCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	a.log = logger.New(cmd.ErrOrStderr(), a.flags.Debug)

	root := a.flags.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}
	a.root = abs

	cfg, err := config.Load(a.root, a.flags.ConfigFile)
	if err != nil {
		return err
	}
	if a.flags.BuildDir != "" {
		cfg.BuildDir = a.flags.BuildDir
	}
	a.cfg = cfg
	a.files = fm.NewFileManager(a.log)

	a.log.Debug("Project resolved", "root", a.root, "build_dir", cfg.BuildDir, "platform", a.platform)
	return nil
}

// stringFlag returns the flag value when it was set on the command line and
// fallback otherwise.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}
