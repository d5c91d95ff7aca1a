// Package formatmanager checks source files against the project's
// .clang-format style without modifying them.
package formatmanager

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
	multierror "github.com/hashicorp/go-multierror"

	cm "github.com/steelcutops/devflow/devflow/commandmanager"
	fm "github.com/steelcutops/devflow/devflow/filemanager"
	"github.com/steelcutops/devflow/logger"
)

const (
	ExitClean        = 0
	ExitDefectsFound = 1
	ExitCannotFormat = 2
)

// StyleFileName must exist at the project root.
const StyleFileName = ".clang-format"

const (
	summaryFixMessage = "Formatting errors found, please fix with clang-format -style=file -i"
	styleFlag         = "-style=file"
	replacementsFlag  = "-output-replacements-xml"
)

// DefectError reports a file clang-format would change.
type DefectError struct {
	Path         string
	Replacements []Replacement
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("%s has formatting errors (%d replacements)", e.Path, len(e.Replacements))
}

type Options struct {
	Root        string
	ClangFormat string
	Paths       []string
	Extensions  []string
	ShowDiff    bool
}

type FormatManager struct {
	CommandManager cm.CommandManager
	FileManager    fm.FileOperations
	Logger         logger.Logger
	Out            io.Writer
}

// ReplacementsCommand composes the clang-format invocation that reports edits
// as XML instead of applying them.
func ReplacementsCommand(clangFormat, file string) cm.Invocation {
	return cm.Compose(clangFormat, "", []string{styleFlag, replacementsFlag, file}, cm.Policy{})
}

// FormatCommand composes the clang-format invocation that prints the formatted file.
func FormatCommand(clangFormat, file string) cm.Invocation {
	return cm.Compose(clangFormat, "", []string{styleFlag, file}, cm.Policy{})
}

// Check runs clang-format over every matching file and returns the exit
// status along with the aggregated defects, if any.
func (f *FormatManager) Check(ctx context.Context, o Options) (int, error) {
	if err := f.FileManager.RequireFile(filepath.Join(o.Root, StyleFileName)); err != nil {
		f.Logger.Error("No .clang-format found, run from the top-level project directory or pass --root", "root", o.Root)
		return ExitCannotFormat, nil
	}

	var defects *multierror.Error
	for _, path := range o.Paths {
		dir := path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(o.Root, path)
		}
		f.Logger.Info("Checking files", "path", path)

		files, err := f.FileManager.FindFiles([]string{dir}, o.Extensions)
		if err != nil {
			f.Logger.Error("Could not list source files", "path", dir, "error", err)
			return ExitCannotFormat, nil
		}

		for _, file := range files {
			defect, err := f.checkFile(ctx, o, file)
			if err != nil {
				f.Logger.Error("Could not execute clang-format, try the --clang-format-path option",
					"clang-format", o.ClangFormat, "file", file, "error", err)
				return ExitCannotFormat, nil
			}
			if defect != nil {
				f.Logger.Warn("File has formatting errors", "file", defect.Path)
				defects = multierror.Append(defects, defect)
			}
		}
	}

	if err := defects.ErrorOrNil(); err != nil {
		f.Logger.Warn(summaryFixMessage, "files", len(defects.Errors))
		_, _ = fmt.Fprintln(f.Out, color.RedString("%d file(s) need formatting", len(defects.Errors)))
		return ExitDefectsFound, err
	}

	f.Logger.Debug("No formatting errors found!")
	return ExitClean, nil
}

func (f *FormatManager) checkFile(ctx context.Context, o Options, file string) (*DefectError, error) {
	result, err := cm.Execute(ctx, f.CommandManager, nil, ReplacementsCommand(o.ClangFormat, file).WithDir(o.Root), cm.Policy{})
	if err != nil {
		return nil, err
	}

	reps, err := ParseReplacements([]byte(result.STDOUT))
	if err != nil {
		return nil, err
	}
	if len(reps) == 0 {
		return nil, nil
	}

	if o.ShowDiff {
		if err := f.showDiff(ctx, o, file); err != nil {
			return nil, err
		}
	}
	return &DefectError{Path: file, Replacements: reps}, nil
}

func (f *FormatManager) showDiff(ctx context.Context, o Options, file string) error {
	original, err := f.FileManager.ReadFile(file)
	if err != nil {
		return err
	}

	result, err := cm.Execute(ctx, f.CommandManager, nil, FormatCommand(o.ClangFormat, file).WithDir(o.Root), cm.Policy{})
	if err != nil {
		return err
	}

	name := file
	if rel, err := filepath.Rel(o.Root, file); err == nil {
		name = rel
	}
	diff := udiff.Unified("a/"+filepath.ToSlash(name), "b/"+filepath.ToSlash(name), string(original), result.STDOUT)
	_, _ = fmt.Fprint(f.Out, diff)
	return nil
}
