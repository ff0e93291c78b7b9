package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRunExitCodes tests the exit codes of the command entry point.
func TestRunExitCodes(t *testing.T) {
	assert.Equal(t, 0, run([]string{"version"}))
	assert.Equal(t, 1, run([]string{"no-such-command"}))
	assert.Equal(t, 1, run([]string{"validate", "--codespace", "FLB", "/nonexistent/line.xml"}))
}
