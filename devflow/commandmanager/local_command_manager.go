package commandmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/steelcutops/devflow/logger"
)

// LocalCommandManager runs invocations on the local machine. Output is always
// captured into the CommandResult and additionally copied to Stdout/Stderr
// when those are set.
type LocalCommandManager struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger logger.Logger
}

// NewLocalCommandManager streams output to stdout/stderr. Stdin is attached
// only when it is a terminal, so sudo can prompt for a password.
func NewLocalCommandManager(stdout, stderr io.Writer, log logger.Logger) *LocalCommandManager {
	lcm := &LocalCommandManager{
		Stdout: stdout,
		Stderr: stderr,
		Logger: log,
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		lcm.Stdin = os.Stdin
	}
	return lcm
}

func (l *LocalCommandManager) Run(ctx context.Context, inv Invocation) (CommandResult, error) {
	if inv.Empty() {
		return CommandResult{}, errors.New("empty command")
	}

	l.logger().Debug("Running command", "command", inv.String(), "dir", inv.Dir())
	start := time.Now()

	cmd := exec.CommandContext(ctx, inv.Name(), inv.Args()...)
	cmd.Dir = inv.Dir()
	cmd.Stdin = l.Stdin

	var stdout, stderr strings.Builder
	cmd.Stdout = tee(&stdout, l.Stdout)
	cmd.Stderr = tee(&stderr, l.Stderr)

	err := cmd.Run()

	result := CommandResult{
		Command:   inv.String(),
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		ExitCode:  ExitCode(err),
		Duration:  time.Since(start),
		Timestamp: start,
	}

	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && pathErr.Op == "chdir" {
			return result, err
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%s: %w", inv.Name(), ErrToolNotFound)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, &ExitError{Command: inv.String(), Code: exitErr.ExitCode(), Stderr: result.STDERR}
		}
		return result, err
	}

	l.logger().Debug("Command finished", "command", inv.String(), "duration", result.Duration)
	return result, nil
}

func (l *LocalCommandManager) logger() logger.Logger {
	if l.Logger == nil {
		return logger.Discard()
	}
	return l.Logger
}

func tee(capture io.Writer, stream io.Writer) io.Writer {
	if stream == nil {
		return capture
	}
	return io.MultiWriter(capture, stream)
}
