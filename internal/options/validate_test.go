package options

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/netexval/netexerrors"
)

// TestValidateSingleInputSource tests source counting.
func TestValidateSingleInputSource(t *testing.T) {
	assert.NoError(t, ValidateSingleInputSource("none", "many", false, true, false))

	err := ValidateSingleInputSource("use --dir or --bundle", "many", false, false)
	assert.ErrorIs(t, err, netexerrors.ErrConfig)
	assert.True(t, netexerrors.IsFatal(err))
	assert.Contains(t, err.Error(), "use --dir or --bundle")

	err = ValidateSingleInputSource("none", "exactly one dataset source", true, true, true)
	assert.ErrorIs(t, err, netexerrors.ErrConfig)
	assert.Contains(t, err.Error(), "exactly one dataset source (got 3)")
}
