package commandmanager

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
)

const sudoCommand = "sudo"

// Compose builds "[sudo] binary [subcommand] extra...". The elevation token must
// come first since sudo treats the rest of the line as the command to run.
func Compose(binary, subcommand string, extra []string, p Policy) Invocation {
	tokens := make([]string, 0, len(extra)+3)
	if p.Sudo {
		tokens = append(tokens, sudoCommand)
	}
	tokens = append(tokens, binary)
	if subcommand != "" {
		tokens = append(tokens, subcommand)
	}
	tokens = append(tokens, extra...)
	return Invocation{tokens: tokens}
}

// Echo writes the command line that would be run.
func Echo(w io.Writer, inv Invocation) {
	line := inv.String()
	if inv.Dir() != "" {
		line = fmt.Sprintf("(cd %s && %s)", inv.Dir(), line)
	}
	_, _ = fmt.Fprintln(w, color.CyanString(line))
}

// Execute runs inv with commandManager, or only echoes it to w when p.DryRun is
// set. A result with a non-zero exit code is always reported as an error.
func Execute(ctx context.Context, commandManager CommandManager, w io.Writer, inv Invocation, p Policy) (CommandResult, error) {
	if p.DryRun {
		Echo(w, inv)
		return CommandResult{Command: inv.String()}, nil
	}

	result, err := commandManager.Run(ctx, inv)
	if err == nil && result.ExitCode != 0 {
		err = &ExitError{Command: inv.String(), Code: result.ExitCode, Stderr: result.STDERR}
	}
	return result, err
}
