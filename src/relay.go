package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Acceptance policy for relayed processed messages.
 *
 *		Platforms that relay processed frames attach their
 *		own verdicts: a "checked" flag from the operator and
 *		a BCH correction count from the demodulator.  This
 *		layer turns those into a single accept/reject before
 *		the frame is decoded, so downstream stores never see
 *		positions built from corrupt bits.
 *
 *--------------------------------------------------------------*/

import (
	"errors"
	"fmt"
)

// BCHStatusUncorrectable is the correction count reported when the
// BCH32 decoder gave up.  Up to 4 bit errors are correctable;
// anything beyond comes back as this marker.
const BCHStatusUncorrectable = -2

// ErrAmbiguousVerificationInput means neither the checked flag nor
// the BCH status was supplied, so no verdict is possible.
var ErrAmbiguousVerificationInput = errors.New("both checked flag and bch status are absent")

// CorruptedMessageError rejects a relayed message whose declared
// verdicts indicate checksum failure.
type CorruptedMessageError struct {
	Reason string
}

func (e *CorruptedMessageError) Error() string {
	return fmt.Sprintf("corrupted message: %s", e.Reason)
}

/*-------------------------------------------------------------
 *
 * Name:	BCH32Accepted
 *
 * Purpose:	Decide whether the BCH32 trailer passed upstream.
 *
 * Inputs:	checked   - Operator flag, "Y" (any case) means pass.
 *			    nil if the platform does not supply it.
 *		bchStatus - Demodulator correction count.  nil if
 *			    not supplied.
 *
 * Returns:	Whether to treat the BCH32 as verified.  With both
 *		inputs absent there is nothing to decide and the
 *		caller gets ErrAmbiguousVerificationInput.
 *
 *--------------------------------------------------------------*/

func BCH32Accepted(checked *string, bchStatus *int) (bool, error) {
	if checked == nil && bchStatus == nil {
		return false, ErrAmbiguousVerificationInput
	}

	if checked != nil && !equalFoldY(*checked) {
		return false, nil
	}
	if bchStatus != nil && *bchStatus == BCHStatusUncorrectable {
		return false, nil
	}

	return true, nil
}

func equalFoldY(s string) bool {
	return s == "Y" || s == "y"
}

// RelayValues is the envelope a relay platform delivers alongside
// the processed frame hex.
type RelayValues struct {
	RawData        string
	DeviceID       uint64
	ServiceFlag    uint32
	MessageCounter uint32
	CRC16OK        *bool
	Checked        *string
	BCHStatus      *int
}

/*-------------------------------------------------------------
 *
 * Name:	DecodeRelayMessage
 *
 * Purpose:	Validate a relayed envelope and decode its frame.
 *
 * Returns:	Decoded record, or CorruptedMessageError when the
 *		declared verdicts fail, or the policy error when
 *		they are absent.
 *
 *--------------------------------------------------------------*/

func (d *Decoder) DecodeRelayMessage(v RelayValues) (*Record, error) {
	var bchOK, err = BCH32Accepted(v.Checked, v.BCHStatus)
	if err != nil {
		return nil, err
	}
	if !bchOK {
		return nil, &CorruptedMessageError{Reason: "bch32 rejected upstream"}
	}

	var crcOK = v.CRC16OK != nil && *v.CRC16OK
	if !crcOK {
		return nil, &CorruptedMessageError{Reason: "crc16 failed upstream"}
	}

	return d.DecodeProcessed(v.RawData, ProcessedMeta{
		ServiceFlag:    v.ServiceFlag,
		MessageCounter: v.MessageCounter,
		CRC16OK:        crcOK,
		BCH32OK:        bchOK,
		EpochYear:      d.epochYearFor(v.DeviceID),
	})
}

func (d *Decoder) epochYearFor(deviceID uint64) int {
	if d.Epochs == nil {
		return DefaultEpochYear
	}
	return d.Epochs.EpochYear(deviceID)
}
