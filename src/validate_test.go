package scm

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTestFrame(t *testing.T, frameHex string) *FieldTree {
	t.Helper()

	var frame, err = hex.DecodeString(frameHex)
	require.NoError(t, err)

	var tree *FieldTree
	tree, err = DefaultCodec.Decode(frame)
	require.NoError(t, err)

	return tree
}

func TestValidateChecksumsOnCapturedFrames(t *testing.T) {
	for _, frameHex := range codecTestFrames {
		var tree = decodeTestFrame(t, frameHex)

		var crc16OK, bch32OK, err = ValidateChecksums(tree, DefaultCodec)
		require.NoError(t, err)

		assert.True(t, crc16OK, "crc16 should verify for %s", frameHex)
		assert.True(t, bch32OK, "bch32 should verify for %s", frameHex)
	}
}

// The id nibble sits outside the crc16 coverage but inside the
// bch32 coverage, so corrupting it splits the verdicts.
func TestValidateChecksumsCorruptID(t *testing.T) {
	var corrupted = "1" + codecTestFrames[0][1:]
	var tree = decodeTestFrame(t, corrupted)

	var crc16OK, bch32OK, err = ValidateChecksums(tree, DefaultCodec)
	require.NoError(t, err)

	assert.True(t, crc16OK)
	assert.False(t, bch32OK)
}

func TestValidateChecksumsCorruptPayload(t *testing.T) {
	var frameHex = codecTestFrames[0]
	var corrupted = frameHex[:20] + "f" + frameHex[21:]
	var tree = decodeTestFrame(t, corrupted)

	var crc16OK, bch32OK, err = ValidateChecksums(tree, DefaultCodec)
	require.NoError(t, err)

	assert.False(t, crc16OK)
	assert.False(t, bch32OK)
}

// Validation zeroes the crc16 field on a clone, never on the tree
// the caller handed in.
func TestValidateChecksumsDoesNotMutate(t *testing.T) {
	var tree = decodeTestFrame(t, codecTestFrames[0])
	var before = *tree

	var _, _, err = ValidateChecksums(tree, DefaultCodec)
	require.NoError(t, err)

	assert.Equal(t, before.CRC16, tree.CRC16)
	assert.Equal(t, before.BCH32, tree.BCH32)
}
