// Package buildmanager drives the CMake configure and build steps.
package buildmanager

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sort"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	fm "github.com/steelcutops/devflow/devflow/filemanager"
	"github.com/steelcutops/devflow/logger"
)

const cmakeBinary = "cmake"

const (
	ExitOK              = 0
	ExitToolNotFound    = 1
	ExitGeneratorFailed = 2
	ExitBuildDirMissing = 2
)

type Options struct {
	Root      string
	BuildDir  string
	CMakePath string
	Generator string
	BuildType string
	Target    string
	Defines   map[string]string
}

// BuildPath returns BuildDir resolved against Root.
func (o Options) BuildPath() string {
	if filepath.IsAbs(o.BuildDir) {
		return o.BuildDir
	}
	return filepath.Join(o.Root, o.BuildDir)
}

// ConfigureCommand composes "cmake -S <root> -B <build> [-G gen] [-D...]".
func ConfigureCommand(cmake string, o Options) cm.Invocation {
	args := []string{"-S", o.Root, "-B", o.BuildPath()}
	if o.Generator != "" {
		args = append(args, "-G", o.Generator)
	}
	if o.BuildType != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+o.BuildType)
	}
	args = append(args, definesArgs(o.Defines)...)
	return cm.Compose(cmake, "", args, cm.Policy{}).WithDir(o.BuildPath())
}

// BuildCommand composes "cmake --build <build> [--target t] [--config type]".
func BuildCommand(cmake string, o Options) cm.Invocation {
	args := []string{"--build", o.BuildPath()}
	if o.Target != "" {
		args = append(args, "--target", o.Target)
	}
	if o.BuildType != "" {
		args = append(args, "--config", o.BuildType)
	}
	return cm.Compose(cmake, "", args, cm.Policy{}).WithDir(o.BuildPath())
}

type BuildManager struct {
	CommandManager cm.CommandManager
	FileManager    fm.DirOperations
	Logger         logger.Logger
	Out            io.Writer
	DryRun         bool

	// FindTool defaults to commandmanager.FindTool.
	FindTool func(explicit, name string) (string, error)
}

// Configure recreates the build directory and runs CMake in it.
func (b *BuildManager) Configure(ctx context.Context, o Options) int {
	cmake, ok := b.cmake(o)
	if !ok {
		return ExitToolNotFound
	}

	if b.DryRun {
		b.Logger.Info("Would recreate build directory", "path", o.BuildPath())
	} else if err := b.FileManager.EnsureCleanDirectory(o.BuildPath()); err != nil {
		b.Logger.Error("Could not prepare build directory", "path", o.BuildPath(), "error", err)
		return ExitGeneratorFailed
	}

	b.Logger.Info("Running CMake")
	if _, err := cm.Execute(ctx, b.CommandManager, b.Out, ConfigureCommand(cmake, o), b.policy()); err != nil {
		b.Logger.Error("CMake configure failed", "error", err)
		return ExitGeneratorFailed
	}
	return ExitOK
}

// Build runs "cmake --build" in an existing build directory. The subprocess
// exit status is propagated.
func (b *BuildManager) Build(ctx context.Context, o Options) int {
	if err := b.FileManager.RequireExistingDirectory(o.BuildPath()); err != nil {
		b.Logger.Error("Build directory not found, did you forget to run configure?", "path", o.BuildPath())
		return ExitBuildDirMissing
	}

	cmake, ok := b.cmake(o)
	if !ok {
		return ExitToolNotFound
	}

	b.Logger.Info("Running CMake")
	if _, err := cm.Execute(ctx, b.CommandManager, b.Out, BuildCommand(cmake, o), b.policy()); err != nil {
		b.Logger.Error("CMake build failed", "error", err)
		return cm.ExitCode(err)
	}
	return ExitOK
}

// cmake resolves the CMake binary. In dry-run a missing binary falls back to
// its bare name so the command can still be shown.
func (b *BuildManager) cmake(o Options) (string, bool) {
	find := b.FindTool
	if find == nil {
		find = cm.FindTool
	}

	path, err := find(o.CMakePath, cmakeBinary)
	if err == nil {
		return path, true
	}
	if b.DryRun && errors.Is(err, cm.ErrToolNotFound) {
		b.Logger.Warn("CMake not found, showing commands with the default name", "error", err)
		if o.CMakePath != "" {
			return o.CMakePath, true
		}
		return cmakeBinary, true
	}
	b.Logger.Error("CMake not found, please use the --cmake-path option", "error", err)
	return "", false
}

func (b *BuildManager) policy() cm.Policy {
	return cm.Policy{DryRun: b.DryRun}
}

func definesArgs(defines map[string]string) []string {
	if len(defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(defines))
	for k := range defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, "-D"+k+"="+defines[k])
	}
	return args
}
