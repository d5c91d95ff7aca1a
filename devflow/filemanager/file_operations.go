package filemanager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileOperations represents lookups performed on files.
type FileOperations interface {
	// RequireFile fails with ErrFileMissing when path is not a regular file.
	RequireFile(path string) error
	// FindExecutable walks root and returns the first file called name.
	FindExecutable(root, name string) (string, error)
	// FindFiles returns the files below dirs whose extension is one of exts.
	FindFiles(dirs []string, exts []string) ([]string, error)
	ReadFile(path string) ([]byte, error)
}

func (lfm *LocalFileManager) RequireFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, ErrFileMissing)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, ErrFileMissing)
	}
	return nil
}

func (lfm *LocalFileManager) FindExecutable(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("%s in %s: %w", name, root, ErrExecutableNotFound)
	}
	lfm.logger().Debug("Found executable", "path", found)
	return found, nil
}

// FindFiles skips directories that do not exist. Results are in lexical order.
func (lfm *LocalFileManager) FindFiles(dirs []string, exts []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir && errors.Is(err, fs.ErrNotExist) {
					lfm.logger().Debug("Skipping missing directory", "path", dir)
					return fs.SkipDir
				}
				return err
			}
			if !d.IsDir() && hasExtension(d.Name(), exts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func (lfm *LocalFileManager) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// ExecutableName appends the platform's executable suffix to name.
func ExecutableName(goos, name string) string {
	if goos == "windows" {
		return name + ".exe"
	}
	return name
}

func hasExtension(name string, exts []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.TrimPrefix(e, ".") == ext {
			return true
		}
	}
	return false
}
