package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type Logger interface {
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type LogrusLogger struct {
	internalLogger *logrus.Logger
}

// New returns a Logger writing to w. Colours are only used when w is a terminal.
func New(w io.Writer, debug bool) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !isTerminal(w),
	})

	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return &LogrusLogger{internalLogger: l}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return New(io.Discard, false)
}

func (l *LogrusLogger) Info(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Info(msg)
}

func (l *LogrusLogger) Debug(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Debug(msg)
}

func (l *LogrusLogger) Warn(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, args ...interface{}) {
	l.internalLogger.WithFields(fields(args)).Error(msg)
}

// fields turns slog-style key/value pairs into logrus fields.
func fields(args []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		f[key] = args[i+1]
	}
	return f
}

func isTerminal(w io.Writer) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd()))
}
