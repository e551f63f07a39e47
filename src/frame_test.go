package scm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFullLengthFrameIsNoOp(t *testing.T) {
	var full = codecTestFrames[0]

	var normalized, err = NormalizeFrameHex(full)
	require.NoError(t, err)
	assert.Equal(t, full, normalized)
}

func TestNormalizeProcessedFrame(t *testing.T) {
	// Processed body of codecTestFrames[0]: header and trailer
	// nibbles stripped upstream.
	var processed = "000045FB1FDB210000000007840000041E2000032F2400"
	require.Len(t, processed, processedBodyNibbles)

	var normalized, err = NormalizeFrameHex(processed)
	require.NoError(t, err)

	assert.Len(t, normalized, FrameSize*2)
	assert.Equal(t, strings.Repeat("0", 8)+processed+strings.Repeat("0", 8), normalized)
}

func TestNormalizeRejectsOtherLengths(t *testing.T) {
	for _, frameHex := range []string{"", "0A", strings.Repeat("0", 60), strings.Repeat("0", 64)} {
		var _, err = NormalizeFrameHex(frameHex)

		var lengthErr *InvalidFrameLengthError
		require.ErrorAs(t, err, &lengthErr, "length %d should be rejected", len(frameHex))
		assert.Equal(t, FrameSize, lengthErr.Expected)
		assert.Equal(t, float64(len(frameHex))/2, lengthErr.Actual)
	}
}

func TestParseFrameHexCaseInsensitive(t *testing.T) {
	var lower, err = ParseFrameHex(strings.ToLower(codecTestFrames[1]))
	require.NoError(t, err)

	var upper []byte
	upper, err = ParseFrameHex(strings.ToUpper(codecTestFrames[1]))
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestParseFrameHexRejectsNonHex(t *testing.T) {
	var bad = "zz" + codecTestFrames[0][2:]
	var _, err = ParseFrameHex(bad)
	require.Error(t, err)
}
