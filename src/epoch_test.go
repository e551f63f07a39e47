package scm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceEpochsDefault(t *testing.T) {
	var epochs = NewDeviceEpochs()

	assert.Equal(t, DefaultEpochYear, epochs.EpochYear(184999))
	assert.Equal(t, DefaultEpochYear, epochs.EpochYear(0))
}

func TestLoadDeviceEpochs(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "device_epochs.yaml")
	var contents = "default: 2022\ndevices:\n  184999: 2023\n  200001: 2024\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	var epochs, err = LoadDeviceEpochs(path)
	require.NoError(t, err)

	assert.Equal(t, 2023, epochs.EpochYear(184999))
	assert.Equal(t, 2024, epochs.EpochYear(200001))
	assert.Equal(t, 2022, epochs.EpochYear(999999))
}

func TestLoadDeviceEpochsMissingDefault(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "device_epochs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("devices:\n  184999: 2024\n"), 0o644))

	var epochs, err = LoadDeviceEpochs(path)
	require.NoError(t, err)

	assert.Equal(t, 2024, epochs.EpochYear(184999))
	assert.Equal(t, DefaultEpochYear, epochs.EpochYear(1))
}

func TestLoadDeviceEpochsBadFile(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "device_epochs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default: [2022"), 0o644))

	var _, err = LoadDeviceEpochs(path)
	require.Error(t, err)
}

func TestLoadDeviceEpochsNoFileAnywhere(t *testing.T) {
	// Empty path with no file in the search locations falls back
	// to an all-defaults table.
	var cwd, _ = os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(cwd)

	var epochs, err = LoadDeviceEpochs("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEpochYear, epochs.EpochYear(184999))
}
