// Package cliutil provides output helpers for the netexval command.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/netexval/netexerrors"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteError writes err as a single "Error:" line. Retryable errors get a hint
// so scripts and users know the run can be repeated.
func WriteError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if netexerrors.IsRetryable(err) {
		Writef(w, "Error: %v (transient, try again)\n", err)
		return
	}
	var invalid interface{ ExitCode() int }
	if errors.As(err, &invalid) {
		// Invalid reports are already rendered; keep the summary short.
		Writef(w, "%v\n", err)
		return
	}
	Writef(w, "Error: %v\n", err)
}
