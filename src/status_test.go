package scm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatingModeFromCode(t *testing.T) {
	for code := uint32(0); code <= 8; code++ {
		var mode, err = OperatingModeFromCode(code)
		require.NoError(t, err)
		assert.Equal(t, OperatingMode(code), mode)
	}
}

func TestOperatingModeFromCodeUnsupported(t *testing.T) {
	for _, code := range []uint32{9, 10, 31} {
		var _, err = OperatingModeFromCode(code)

		var modeErr *UnsupportedOperatingModeError
		require.ErrorAs(t, err, &modeErr)
		assert.Equal(t, code, modeErr.Code)
	}
}

func TestOperatingModeString(t *testing.T) {
	assert.Equal(t, "Unknown", ModeUnknown.String())
	assert.Equal(t, "Deployed", ModeDeployed.String())
	assert.Equal(t, "Pedometer", ModePedometer.String())
	assert.Equal(t, "OperatingMode(12)", OperatingMode(12).String())
}

func TestOperatingModeJSON(t *testing.T) {
	var out, err = ModeHibernation.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"Hibernation"`, string(out))
}
