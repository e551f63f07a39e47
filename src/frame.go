package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Hex frame parsing and processed-frame padding.
 *
 *		Ground stations hand us two shapes of the same
 *		transmission:
 *
 *		  raw		all 31 bytes as sent on the uplink
 *		  processed	the payload region only, with the id,
 *				crc16, service flag, message counter
 *				and bch32 stripped upstream
 *
 *		A processed frame is padded back out with zero
 *		nibbles so the one codec handles both.
 *
 *--------------------------------------------------------------*/

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// InvalidFrameLengthError reports a frame that is not the fixed
// transmission size even after padding.  Actual is in bytes and may
// be fractional for an odd number of hex digits.
type InvalidFrameLengthError struct {
	Expected int
	Actual   float64
}

func (e *InvalidFrameLengthError) Error() string {
	return fmt.Sprintf("expected frame length of %d bytes, received %v bytes", e.Expected, e.Actual)
}

// Hex digit counts for the stripped header and trailer.  Each of the
// stripped fields is nibble aligned.
const (
	processedPrefixNibbles = (TransmissionIDSize + TransmissionCRC16Size +
		TransmissionSFSize + TransmissionMCSize) / 4
	processedSuffixNibbles = TransmissionBCH32Size / 4
	processedBodyNibbles   = FrameSize*2 - processedPrefixNibbles - processedSuffixNibbles
)

/*-------------------------------------------------------------
 *
 * Name:	NormalizeFrameHex
 *
 * Purpose:	Pad a processed frame out to the full transmission
 *		length.  A full-length frame passes through untouched.
 *
 * Inputs:	frameHex  - Hex string, either the full 62 digits or
 *			    the 46-digit processed body.
 *
 * Returns:	62-digit hex string, or InvalidFrameLengthError for
 *		any other input length.
 *
 *--------------------------------------------------------------*/

func NormalizeFrameHex(frameHex string) (string, error) {
	if len(frameHex) == processedBodyNibbles {
		frameHex = strings.Repeat("0", processedPrefixNibbles) +
			frameHex +
			strings.Repeat("0", processedSuffixNibbles)
	}

	if err := EnsureFrameLength(frameHex); err != nil {
		return "", err
	}

	return frameHex, nil
}

// EnsureFrameLength checks that frameHex spells exactly one full
// transmission.
func EnsureFrameLength(frameHex string) error {
	if len(frameHex)*4 != FrameSizeBits {
		return &InvalidFrameLengthError{Expected: FrameSize, Actual: float64(len(frameHex)) / 2}
	}
	return nil
}

// ParseFrameHex converts a full-length hex string to frame bytes.
// Case does not matter.
func ParseFrameHex(frameHex string) ([]byte, error) {
	if err := EnsureFrameLength(frameHex); err != nil {
		return nil, err
	}

	var frame, err = hex.DecodeString(frameHex)
	if err != nil {
		return nil, fmt.Errorf("bad frame hex: %w", err)
	}

	return frame, nil
}
