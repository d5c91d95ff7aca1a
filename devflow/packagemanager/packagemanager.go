package packagemanager

import (
	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	"github.com/steelcutops/devflow/devflow/platform"
)

// PackageManager binds one OS package manager. The manifest is fixed per
// variant and installed in a single invocation.
type PackageManager interface {
	// Name is the binary that is invoked.
	Name() string
	// Packages returns the variant's manifest in declaration order.
	Packages() []string
	// UpdateCommand refreshes the package index.
	UpdateCommand(p cm.Policy) cm.Invocation
	// InstallCommand installs every package of the manifest.
	InstallCommand(p cm.Policy) cm.Invocation
}

// ForPlatform selects the variant for p. Unsupported platforms have none.
func ForPlatform(p platform.Platform) (PackageManager, bool) {
	switch p {
	case platform.Debian:
		return &AptPackageManager{}, true
	case platform.Homebrew:
		return &BrewPackageManager{}, true
	default:
		return nil, false
	}
}
