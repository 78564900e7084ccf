// Package logger writes leveled, colored log lines in the form
// "[PREFIX] [LEVEL] message".
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/beka-birhanu/vinom-explorer/config"
)

var ErrEmptyPrefix = errors.New("logger prefix must not be empty")

// Logger is a prefixed logger shared by one component.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a logger whose lines start with the given prefix printed in color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(config.LogInfoColor, "INFO", msg)
}

// Warning logs something unexpected that was recovered from.
func (l *Logger) Warning(msg string) {
	l.write(config.LogWarningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) write(levelColor, level, msg string) {
	l.out.Print(fmt.Sprintf("%s[%s]%s %s[%s]%s %s",
		l.color, l.prefix, config.LogColorReset,
		levelColor, level, config.LogColorReset,
		msg))
}
