package commandmanager

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrToolNotFound is returned when an external binary cannot be located.
var ErrToolNotFound = errors.New("tool not found")

// ExitError reports a subprocess that ran and exited unsuccessfully.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// ExitCode returns the process exit status carried by err: 0 for nil, the
// subprocess status for exit errors and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	var execErr *exec.ExitError
	if errors.As(err, &execErr) && execErr.ExitCode() > 0 {
		return execErr.ExitCode()
	}
	return 1
}
