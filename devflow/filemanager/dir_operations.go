package filemanager

import (
	"fmt"
	"os"
)

// DirOperations are the directory preconditions of the workflow steps.
type DirOperations interface {
	// EnsureCleanDirectory removes path if present, then creates it.
	EnsureCleanDirectory(path string) error
	// RequireExistingDirectory fails with ErrDirectoryMissing when path is absent.
	RequireExistingDirectory(path string) error
}

func (lfm *LocalFileManager) EnsureCleanDirectory(path string) error {
	if _, err := os.Lstat(path); err == nil {
		lfm.logger().Info("Removing existing build directory", "path", path)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	lfm.logger().Debug("Creating build directory", "path", path)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}

func (lfm *LocalFileManager) RequireExistingDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, ErrDirectoryMissing)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", path, ErrDirectoryMissing)
	}
	return nil
}
