package packagemanager

import (
	cm "github.com/steelcutops/devflow/devflow/commandmanager"
)

// brewPackages is the toolchain for Homebrew on macOS. The compiler ships with
// the Xcode command line tools.
var brewPackages = []string{"cmake", "ninja"}

type BrewPackageManager struct{}

func (bpm *BrewPackageManager) Name() string {
	return "brew"
}

func (bpm *BrewPackageManager) Packages() []string {
	return append([]string(nil), brewPackages...)
}

func (bpm *BrewPackageManager) UpdateCommand(p cm.Policy) cm.Invocation {
	return cm.Compose(bpm.Name(), "update", nil, p)
}

func (bpm *BrewPackageManager) InstallCommand(p cm.Policy) cm.Invocation {
	return cm.Compose(bpm.Name(), "install", bpm.Packages(), p)
}
