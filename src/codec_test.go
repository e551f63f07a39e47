package scm

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Captured transmissions, one per packet type plus one unrecognized.
var codecTestFrames = []string{
	"013a4049000045fb1fdb210000000007840000041e2000032f2400002e2930", // tracking v1
	"0EBAA003003845FA9FDB24001ACCC0123CF80006BD700002CDEA00F3BFF5B9", // tracking v1
	"0F4EE015085C0045FB87F6CDC001490842C0080B0010A002037000C4C7776C", // tracking v2
	"02642000132337907800003F384096000000000000000000000000B35E63CC", // status v1
}

func TestCodecRoundTripCapturedFrames(t *testing.T) {
	for _, frameHex := range codecTestFrames {
		var frame, err = hex.DecodeString(frameHex)
		require.NoError(t, err)

		var tree *FieldTree
		tree, err = DefaultCodec.Decode(frame)
		require.NoError(t, err)

		var encoded []byte
		encoded, err = DefaultCodec.Encode(tree)
		require.NoError(t, err)

		assert.Equal(t, frame, encoded, "round trip changed frame %s", frameHex)
	}
}

func TestCodecRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var frame = rapid.SliceOfN(rapid.Byte(), FrameSize, FrameSize).Draw(t, "frame")

		var tree, err = DefaultCodec.Decode(frame)
		require.NoError(t, err)

		var encoded []byte
		encoded, err = DefaultCodec.Encode(tree)
		require.NoError(t, err)

		assert.Equal(t, frame, encoded)
	})
}

func TestCodecRejectsWrongLength(t *testing.T) {
	var _, err = DefaultCodec.Decode(make([]byte, FrameSize-1))
	require.Error(t, err)

	var lengthErr *InvalidFrameLengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, FrameSize, lengthErr.Expected)
	assert.Equal(t, float64(FrameSize-1), lengthErr.Actual)
}

func TestCodecHeaderFields(t *testing.T) {
	var frame, err = hex.DecodeString(codecTestFrames[0])
	require.NoError(t, err)

	var tree *FieldTree
	tree, err = DefaultCodec.Decode(frame)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), tree.ID)
	assert.Equal(t, uint32(5028), tree.CRC16)
	assert.Equal(t, uint32(0), tree.ServiceFlag)
	assert.Equal(t, uint32(73), tree.MessageCounter)
	assert.Equal(t, uint32(PacketTypeTrackingV1), tree.PacketType)
	assert.Equal(t, uint32(3025200), tree.BCH32)
	require.NotNil(t, tree.TrackingV1)
	assert.Nil(t, tree.TrackingV2)
	assert.Nil(t, tree.StatusV1)
	assert.Nil(t, tree.Opaque)
}

// An unrecognized packet type keeps its payload bits verbatim.
func TestCodecOpaquePayloadRoundTrip(t *testing.T) {
	// Same v1 frame with the packet type code changed to 5.
	var frameHex = codecTestFrames[0][:8] + "28" + codecTestFrames[0][10:]
	var frame, err = hex.DecodeString(frameHex)
	require.NoError(t, err)

	var tree *FieldTree
	tree, err = DefaultCodec.Decode(frame)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), tree.PacketType)
	assert.Nil(t, tree.TrackingV1)
	require.NotNil(t, tree.Opaque)

	var encoded []byte
	encoded, err = DefaultCodec.Encode(tree)
	require.NoError(t, err)
	assert.Equal(t, frame, encoded)
}

func TestFieldTreeCloneIsIndependent(t *testing.T) {
	var frame, err = hex.DecodeString(strings.ToLower(codecTestFrames[1]))
	require.NoError(t, err)

	var tree *FieldTree
	tree, err = DefaultCodec.Decode(frame)
	require.NoError(t, err)

	var clone = tree.Clone()
	clone.CRC16 = 0
	clone.TrackingV1.Battery = 63
	clone.TrackingV1.Points[0].DeltaM = 1

	assert.Equal(t, uint32(60330), tree.CRC16)
	assert.NotEqual(t, uint32(63), tree.TrackingV1.Battery)
	assert.NotEqual(t, uint32(1), tree.TrackingV1.Points[0].DeltaM)
}
