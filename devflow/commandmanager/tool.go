package commandmanager

import (
	"fmt"
	"os"
	"os/exec"
)

// FindTool resolves an external binary. An explicit path wins when it exists
// (or resolves on $PATH); otherwise name is looked up on $PATH.
func FindTool(explicit, name string) (string, error) {
	if explicit != "" {
		if info, err := os.Stat(explicit); err == nil && !info.IsDir() {
			return explicit, nil
		}
		if path, err := exec.LookPath(explicit); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%s: %w", explicit, ErrToolNotFound)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in $PATH: %w", name, ErrToolNotFound)
	}
	return path, nil
}
