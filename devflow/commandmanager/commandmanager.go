package commandmanager

import (
	"context"
	"strings"
	"time"
)

// Policy is fixed from the parsed flags before any command runs.
type Policy struct {
	DryRun bool
	Sudo   bool
}

// Invocation is the argument list of one subprocess call. It is never mutated
// after construction; use the With* helpers to derive a new one.
type Invocation struct {
	tokens []string
	dir    string
}

// NewInvocation copies tokens into a new Invocation.
func NewInvocation(tokens ...string) Invocation {
	return Invocation{tokens: append([]string(nil), tokens...)}
}

// Tokens returns a copy of the full argument list, program name first.
func (i Invocation) Tokens() []string {
	return append([]string(nil), i.tokens...)
}

func (i Invocation) Name() string {
	if len(i.tokens) == 0 {
		return ""
	}
	return i.tokens[0]
}

func (i Invocation) Args() []string {
	if len(i.tokens) < 2 {
		return nil
	}
	return append([]string(nil), i.tokens[1:]...)
}

// Dir is the working directory; empty means the current one.
func (i Invocation) Dir() string {
	return i.dir
}

// WithDir returns a copy of i that runs in dir.
func (i Invocation) WithDir(dir string) Invocation {
	return Invocation{tokens: i.Tokens(), dir: dir}
}

func (i Invocation) Empty() bool {
	return len(i.tokens) == 0
}

func (i Invocation) String() string {
	return strings.Join(i.tokens, " ")
}

// CommandResult encapsulates the results from a command execution.
type CommandResult struct {
	Command   string
	STDOUT    string
	STDERR    string
	ExitCode  int
	Duration  time.Duration
	Timestamp time.Time
}

// CommandManager executes invocations.
type CommandManager interface {
	Run(ctx context.Context, inv Invocation) (CommandResult, error)
}
