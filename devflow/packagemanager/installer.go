package packagemanager

import (
	"context"
	"fmt"
	"io"
	"strings"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	"github.com/steelcutops/devflow/devflow/platform"
	"github.com/steelcutops/devflow/logger"
)

type ExitStatus int

const (
	ExitOK            ExitStatus = 0
	ExitUpdateFailed  ExitStatus = 1
	ExitInstallFailed ExitStatus = 2
)

// Installer refreshes the package index and then installs the manifest of the
// platform's package manager. Install never runs after a failed update.
type Installer struct {
	CommandManager cm.CommandManager
	Logger         logger.Logger
	Out            io.Writer
}

func NewInstaller(commandManager cm.CommandManager, log logger.Logger, out io.Writer) *Installer {
	return &Installer{
		CommandManager: commandManager,
		Logger:         log,
		Out:            out,
	}
}

func (i *Installer) Run(ctx context.Context, p platform.Platform, policy cm.Policy) ExitStatus {
	pm, ok := ForPlatform(p)
	if !ok {
		i.Logger.Info("No supported package manager for this platform, skipping", "platform", p)
		return ExitOK
	}

	if policy.DryRun {
		_, _ = fmt.Fprintln(i.Out, "dry-run option specified, no commands will be executed.")
		_, _ = fmt.Fprintln(i.Out, "The following commands would be run:")
		_, _ = fmt.Fprintln(i.Out)
	}

	i.Logger.Debug("Updating package index", "manager", pm.Name(), "sudo", policy.Sudo)
	if _, err := cm.Execute(ctx, i.CommandManager, i.Out, pm.UpdateCommand(policy), policy); err != nil {
		i.Logger.Error("Failed updating packages, cannot continue", "manager", pm.Name(), "error", err)
		return ExitUpdateFailed
	}

	i.Logger.Debug("Installing packages", "manager", pm.Name(), "packages", strings.Join(pm.Packages(), " "))
	if _, err := cm.Execute(ctx, i.CommandManager, i.Out, pm.InstallCommand(policy), policy); err != nil {
		i.Logger.Error("Failed installing packages", "manager", pm.Name(), "error", err)
		return ExitInstallFailed
	}

	if !policy.DryRun {
		i.Logger.Info("Dependencies installed", "manager", pm.Name())
	}
	return ExitOK
}

// List prints the manifest of the platform's package manager, one per line.
func (i *Installer) List(p platform.Platform) ExitStatus {
	pm, ok := ForPlatform(p)
	if !ok {
		i.Logger.Info("No supported package manager for this platform", "platform", p)
		return ExitOK
	}
	for _, pkg := range pm.Packages() {
		_, _ = fmt.Fprintln(i.Out, pkg)
	}
	return ExitOK
}
