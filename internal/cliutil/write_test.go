package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/netexval/netexerrors"
)

// TestWritef tests formatted writes.
func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d entries, valid=%v", "FLB_Line_1.xml", 3, false)
	assert.Equal(t, "FLB_Line_1.xml: 3 entries, valid=false", buf.String())
}

type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

// TestWritefWriteError tests that a failing writer does not panic.
func TestWritefWriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(errorWriter{}, "This will fail") })
}

type exitError struct{}

func (exitError) Error() string { return "report FLB-1 is invalid: 2 entries" }
func (exitError) ExitCode() int { return 2 }

// TestWriteError tests the error line for each error class.
func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("boom"), want: "Error: boom\n"},
		{
			name: "retryable",
			err:  netexerrors.Retryable("lock.TryLock", errors.New("held")),
			want: "Error: lock.TryLock: retryable error: held (transient, try again)\n",
		},
		{name: "invalid report", err: exitError{}, want: "report FLB-1 is invalid: 2 entries\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteError(&buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
