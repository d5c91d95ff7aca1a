package filemanager

import "github.com/steelcutops/devflow/logger"

// LocalFileManager operates directly on the local filesystem.
type LocalFileManager struct {
	Logger logger.Logger
}

func NewFileManager(log logger.Logger) *LocalFileManager {
	return &LocalFileManager{Logger: log}
}

func (lfm *LocalFileManager) logger() logger.Logger {
	if lfm.Logger == nil {
		return logger.Discard()
	}
	return lfm.Logger
}
