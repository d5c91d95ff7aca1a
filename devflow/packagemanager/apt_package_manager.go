package packagemanager

import (
	cm "github.com/steelcutops/devflow/devflow/commandmanager"
)

// aptPackages is the toolchain for Debian-based Linux systems.
var aptPackages = []string{"cmake", "clang", "ninja-build"}

type AptPackageManager struct{}

func (apm *AptPackageManager) Name() string {
	return "apt-get"
}

func (apm *AptPackageManager) Packages() []string {
	return append([]string(nil), aptPackages...)
}

func (apm *AptPackageManager) UpdateCommand(p cm.Policy) cm.Invocation {
	return cm.Compose(apm.Name(), "update", nil, p)
}

func (apm *AptPackageManager) InstallCommand(p cm.Policy) cm.Invocation {
	return cm.Compose(apm.Name(), "install", apm.Packages(), p)
}
