package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Device epoch table.
 *
 *		Tracking v2 timestamps count days from Jan 1 of a
 *		per-device epoch year fixed at deployment time.  The
 *		mapping lives in a small yaml file so herds deployed
 *		across year boundaries can be corrected without a
 *		rebuild.  Devices not listed fall back to a default
 *		year.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DefaultEpochYear applies when no table entry exists for a device.
const DefaultEpochYear = 2023

// EpochLookup resolves the epoch year for a device id.
type EpochLookup interface {
	EpochYear(deviceID uint64) int
}

// DeviceEpochs is a yaml-backed EpochLookup.
type DeviceEpochs struct {
	Default int            `yaml:"default"`
	Devices map[uint64]int `yaml:"devices"`
}

var epochSearchLocations = []string{
	"device_epochs.yaml", // Current working directory
	"data/device_epochs.yaml",
	"../data/device_epochs.yaml", // Source tree
	"/usr/local/share/scmkit/device_epochs.yaml",
	"/usr/share/scmkit/device_epochs.yaml",
}

// NewDeviceEpochs returns an empty table where every device resolves
// to the default year.
func NewDeviceEpochs() *DeviceEpochs {
	return &DeviceEpochs{Default: DefaultEpochYear}
}

/*-------------------------------------------------------------
 *
 * Name:	LoadDeviceEpochs
 *
 * Purpose:	Read a device epoch table from a yaml file.
 *
 * Inputs:	path	- File to read.  Empty means try the standard
 *			  search locations and fall back to an empty
 *			  table if none exists.
 *
 *--------------------------------------------------------------*/

func LoadDeviceEpochs(path string) (*DeviceEpochs, error) {
	if path == "" {
		for _, location := range epochSearchLocations {
			if _, err := os.Stat(location); err == nil {
				path = location
				break
			}
		}
		if path == "" {
			log.Debug("No device epoch file found, using default epoch year", "default", DefaultEpochYear)
			return NewDeviceEpochs(), nil
		}
	}

	var data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading device epoch file: %w", err)
	}

	var epochs = NewDeviceEpochs()
	if err := yaml.Unmarshal(data, epochs); err != nil {
		return nil, fmt.Errorf("parsing device epoch file %s: %w", path, err)
	}
	if epochs.Default == 0 {
		epochs.Default = DefaultEpochYear
	}

	return epochs, nil
}

func (d *DeviceEpochs) EpochYear(deviceID uint64) int {
	if year, ok := d.Devices[deviceID]; ok {
		return year
	}
	return d.Default
}
