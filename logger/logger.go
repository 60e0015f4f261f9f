// Package logger writes prefixed, leveled log lines such as "[APP] [INFO] message".
package logger

import (
	"errors"
	"io"
	"log"

	"github.com/gookit/color"
)

var (
	ErrNilWriter = errors.New("logger writer is nil")
)

var (
	infoTag    = color.Style{color.FgGreen}.Sprint("[INFO]")
	warningTag = color.Style{color.FgYellow, color.OpBold}.Sprint("[WARNING]")
	errorTag   = color.Style{color.FgRed, color.OpBold}.Sprint("[ERROR]")
)

// Logger is a leveled logger bound to a component prefix.
type Logger struct {
	out *log.Logger
}

// New creates a Logger that tags every line with prefix rendered in c.
func New(prefix string, c color.Color, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Logger{
		out: log.New(w, c.Sprint("["+prefix+"]")+" ", log.LstdFlags|log.Lmsgprefix),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Println(infoTag, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.out.Println(warningTag, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Println(errorTag, msg)
}
