package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/steelcutops/devflow/devflow/platform"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError carries a step's exit status out of cobra without printing it.
type SilentExitError struct {
	Code int
}

func (e *SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// exitWith converts a step status into the error returned from RunE.
func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &SilentExitError{Code: code}
}

func execute(a *app, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(a)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(context.Background())
}

// runMain is the only place the host platform is detected.
func runMain(args []string, stdout, stderr io.Writer, exit func(int)) {
	a := newApp(platform.Current(), runtime.GOOS)
	if err := execute(a, args, stdout, stderr); err != nil {
		var silent *SilentExitError
		if !errors.As(err, &silent) {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
		}
		exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		return silent.Code
	}
	return 1
}
