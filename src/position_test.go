package scm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGreatCircleDestinationReference(t *testing.T) {
	// Anchor and offsets from a captured tracking frame; expected
	// coordinates cross-checked against the collar's own sphere.
	var anchor = LatLngFromDegrees(-19.331072, 146.75968)

	var cases = []struct {
		bearing float64
		meters  float64
		wantLat float64
		wantLng float64
	}{
		{22.50000000, 234.3750, -19.32912466132596, 146.76053479568455},
		{338.90625000, 250.0000, -19.3289743495036, 146.75882251438833},
		{340.66406250, 390.6250, -19.32775718029063, 146.75844736292584},
	}

	for _, c := range cases {
		var got = GreatCircleDestination(anchor, c.bearing, c.meters)
		assert.InDelta(t, c.wantLat, got.Lat.Degrees(), 1e-9)
		assert.InDelta(t, c.wantLng, got.Lng.Degrees(), 1e-9)
	}
}

func TestGreatCircleDestinationZeroDistance(t *testing.T) {
	var anchor = LatLngFromDegrees(-19.331072, 146.75968)
	var got = GreatCircleDestination(anchor, 123.0, 0)

	assert.InDelta(t, anchor.Lat.Degrees(), got.Lat.Degrees(), 1e-12)
	assert.InDelta(t, anchor.Lng.Degrees(), got.Lng.Degrees(), 1e-12)
}

// Bearing zero walks due north: latitude strictly increases and
// longitude stays put.
func TestGreatCircleDestinationNorthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var lat = rapid.Float64Range(-80, 80).Draw(t, "lat")
		var lng = rapid.Float64Range(-179, 179).Draw(t, "lng")
		var meters = rapid.Float64Range(1, 100000).Draw(t, "meters")

		var origin = LatLngFromDegrees(lat, lng)
		var got = GreatCircleDestination(origin, 0, meters)

		assert.Greater(t, got.Lat.Degrees(), lat)
		assert.InDelta(t, lng, got.Lng.Degrees(), 1e-9)
	})
}
