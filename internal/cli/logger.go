// Package cli implements the rulesync commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

// defaultConfigPath is where commands look for the configuration file
// unless told otherwise.
const defaultConfigPath = ".rulesync.toml"

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// Logger provides logging functionality with verbose support
type Logger struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// NewLogger creates a new Logger instance
func NewLogger(verbose bool) *Logger {
	return &Logger{
		out:     os.Stdout,
		errOut:  os.Stderr,
		verbose: verbose,
	}
}

// Info prints an informational message to stdout
func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Success prints a success message to stdout in green
func (l *Logger) Success(format string, args ...any) {
	fmt.Fprintln(l.out, successColor.Sprintf(format, args...))
}

// Error prints an error message to stderr in red
func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintln(l.errOut, errorColor.Sprintf(format, args...))
}

// Verbose prints a verbose debug message to stdout if verbose mode is enabled
func (l *Logger) Verbose(format string, args ...any) {
	if l.verbose {
		fmt.Fprintf(l.out, "[VERBOSE] "+format+"\n", args...)
	}
}

// SetVerbose enables or disables verbose logging
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// IsVerbose returns whether verbose mode is enabled
func (l *Logger) IsVerbose() bool {
	return l.verbose
}

// verboseFlag reads the global Verbose flag from the parsed CLI model.
func verboseFlag(ctx *kong.Context) bool {
	if ctx == nil || ctx.Model == nil || !ctx.Model.Target.IsValid() {
		return false
	}
	field := ctx.Model.Target.FieldByName("Verbose")
	if field.IsValid() && field.Kind() == reflect.Bool {
		return field.Bool()
	}
	return false
}
