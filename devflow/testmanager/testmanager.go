// Package testmanager locates a built test executable and runs it, optionally
// under valgrind's memcheck.
package testmanager

import (
	"context"
	"io"
	"path/filepath"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	fm "github.com/steelcutops/devflow/devflow/filemanager"
	"github.com/steelcutops/devflow/logger"
)

const (
	ExitOK              = 0
	ExitTargetMissing   = 1
	ExitBuildDirMissing = 2
)

const valgrindBinary = "valgrind"

var valgrindFlags = []string{
	"--leak-check=full",
	"--show-reachable=yes",
	"--gen-suppressions=all",
	"--error-exitcode=1",
}

type Options struct {
	Root         string
	BuildDir     string
	Target       string
	Valgrind     bool
	Suppressions string
	GOOS         string
}

func (o Options) buildPath() string {
	return resolve(o.Root, o.BuildDir)
}

// SuppressionsPath is the memcheck suppressions file resolved against Root.
func (o Options) SuppressionsPath() string {
	return resolve(o.Root, o.Suppressions)
}

type TestManager struct {
	CommandManager cm.CommandManager
	FileManager    fm.FileManager
	Logger         logger.Logger
	Out            io.Writer
	DryRun         bool
}

// Command composes the test invocation for exe. Valgrind wraps the executable
// on linux only.
func Command(exe string, o Options) cm.Invocation {
	var args []string
	binary := exe
	if o.Valgrind && o.GOOS == "linux" {
		binary = valgrindBinary
		args = append(args, valgrindFlags...)
		if o.Suppressions != "" {
			args = append(args, "--suppressions="+o.SuppressionsPath())
		}
		args = append(args, exe)
	}
	return cm.Compose(binary, "", args, cm.Policy{}).WithDir(o.buildPath())
}

// Run executes the target's test binary and returns its exit status.
func (tm *TestManager) Run(ctx context.Context, o Options) int {
	build := o.buildPath()
	if err := tm.FileManager.RequireExistingDirectory(build); err != nil {
		tm.Logger.Error("Build directory not found, did you forget to run configure?", "path", build)
		return ExitBuildDirMissing
	}

	if o.Target == "" {
		tm.Logger.Error("Target not specified, please use the --target option")
		return ExitTargetMissing
	}

	exe, err := tm.FileManager.FindExecutable(build, fm.ExecutableName(o.GOOS, o.Target))
	if err != nil {
		tm.Logger.Error("Could not find test executable, did you forget to build?", "target", o.Target, "error", err)
		return ExitTargetMissing
	}
	tm.Logger.Debug("Test executable found", "path", exe)

	if o.Valgrind && o.GOOS != "linux" {
		tm.Logger.Error("Valgrind is only supported on Linux, running without it", "os", o.GOOS)
	}

	inv := Command(exe, o)
	tm.Logger.Info("Running tests", "target", o.Target)
	if _, err := cm.Execute(ctx, tm.CommandManager, tm.Out, inv, cm.Policy{DryRun: tm.DryRun}); err != nil {
		tm.Logger.Error("Tests failed", "target", o.Target, "error", err)
		return cm.ExitCode(err)
	}
	return ExitOK
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
