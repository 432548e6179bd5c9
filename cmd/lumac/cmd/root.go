// Package cmd implements lumac's cobra-based CLI: lex, parse, compile,
// inspect, and run, each a thin wrapper around internal/lexer, pkg/compiler,
// or internal/wasmdecoder,
// following the shape of go-dws's cmd/dwscript/cmd commands (flags, RunE,
// wrapped errors, a verbose persistent flag).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "lumac",
	Short:   "Compile Luma source to WebAssembly",
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the CLI and returns the process exit code: 0 on success, 1
// for a lex/parse/codegen error, 2 for an I/O failure (spec.md §6).
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCoder); ok {
			fmt.Fprintln(os.Stderr, err)
			return code.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// exitCoder lets a command distinguish an I/O failure (exit 2) from a
// compilation failure (exit 1); errors that don't implement it default to 1.
type exitCoder interface {
	error
	ExitCode() int
}

// ioError wraps an I/O failure (reading a source file, writing an output
// file) so Execute reports exit code 2 for it.
type ioError struct{ err error }

func (e *ioError) Error() string { return e.err.Error() }
func (e *ioError) ExitCode() int { return 2 }

func wrapIOError(err error) error {
	if err == nil {
		return nil
	}
	return &ioError{err: err}
}
