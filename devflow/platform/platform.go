// Package platform maps the host operating system to the package manager family
// devflow knows how to drive.
package platform

import "runtime"

type Platform int

const (
	// Unsupported has no package manager mapping. It is a normal outcome.
	Unsupported Platform = iota
	// Debian is a Debian-based Linux system using apt-get.
	Debian
	// Homebrew is macOS using brew.
	Homebrew
)

func (p Platform) String() string {
	switch p {
	case Debian:
		return "debian"
	case Homebrew:
		return "homebrew"
	default:
		return "unsupported"
	}
}

// Resolve maps a GOOS value to a Platform. Unknown systems resolve to Unsupported.
func Resolve(goos string) Platform {
	switch goos {
	case "windows":
		// No package manager is supported on Windows
		return Unsupported
	case "darwin":
		return Homebrew
	case "linux":
		// Only Debian-based distributions are supported
		return Debian
	default:
		return Unsupported
	}
}

// Current resolves the platform of the running process.
func Current() Platform {
	return Resolve(runtime.GOOS)
}

// NeedsSudo reports whether the platform's package manager needs privilege
// elevation by default. Currently only apt does.
func NeedsSudo(p Platform) bool {
	return p == Debian
}
