// Package commands provides the cobra commands of the netexval CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/netexval/internal/lock"
	"github.com/erraggy/netexval/internal/logging"
	"github.com/erraggy/netexval/netexerrors"
	"github.com/erraggy/netexval/report"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Exit codes beyond the generic failure code 1.
const (
	ExitInvalid   = 2
	ExitTransient = 75
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalStructured encodes data in the specified format (json or yaml).
func MarshalStructured(data any, format string) ([]byte, error) {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return out, nil
}

// ReportInvalidError is returned when a report holds error or critical entries.
type ReportInvalidError struct {
	ReportID string
	Total    int
}

// Error implements the error interface.
func (e *ReportInvalidError) Error() string {
	return fmt.Sprintf("report %s is invalid (%d entries)", e.ReportID, e.Total)
}

// ExitCode returns the exit code for an invalid report.
func (e *ReportInvalidError) ExitCode() int {
	return ExitInvalid
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var invalid *ReportInvalidError
	if errors.As(err, &invalid) {
		return invalid.ExitCode()
	}
	if netexerrors.IsRetryable(err) {
		return ExitTransient
	}
	return 1
}

// checkReport returns a ReportInvalidError when rep is not valid.
func checkReport(rep *report.Report) error {
	if rep.Valid() {
		return nil
	}
	return &ReportInvalidError{ReportID: rep.ReportID, Total: rep.TotalCount()}
}

// emit writes data to outputPath under an advisory lock, or to w when
// outputPath is empty.
func emit(ctx context.Context, w io.Writer, outputPath string, data []byte) error {
	if outputPath == "" {
		_, err := w.Write(data)
		return err
	}
	return lock.WriteFile(ctx, outputPath, data)
}

// newLogger returns a debug-level text logger on w when verbose is set.
func newLogger(w io.Writer, verbose bool) logging.Logger {
	if !verbose {
		return logging.NopLogger{}
	}
	return logging.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
