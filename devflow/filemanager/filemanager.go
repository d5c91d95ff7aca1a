package filemanager

import "errors"

var (
	// ErrDirectoryMissing is returned when a required directory does not exist.
	ErrDirectoryMissing = errors.New("directory missing")
	// ErrFileMissing is returned when a required marker file does not exist.
	ErrFileMissing = errors.New("file missing")
	// ErrExecutableNotFound is returned when no executable matches a name.
	ErrExecutableNotFound = errors.New("executable not found")
)

// FileManager encompasses operations on both files and directories.
type FileManager interface {
	FileOperations
	DirOperations
}
