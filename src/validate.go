package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Checksum verification by re-encoding.
 *
 *		The crc16 and bch32 carried in the frame cover byte
 *		sub-ranges of the frame itself, with the crc16 field
 *		zeroed for its own computation.  We rebuild those
 *		ranges from the decoded field tree and compare.
 *
 *		A mismatch is reported, never fatal.  Corrupted
 *		tracking data is still worth looking at and the
 *		caller decides what to trust.
 *
 *--------------------------------------------------------------*/

var crc16Calculator = NewCRC16Calculator()
var bch32Calculator = NewBCH32Calculator()

// Byte ranges covered by each checksum.  The bch32 covers everything
// before itself; the crc16 skips the leading id nibble's byte and is
// computed with its own field as zeroes.
const (
	checksumEnd   = FrameSize - TransmissionBCH32Size/8
	crc16SkipLead = (TransmissionIDSize + 7) / 8
)

/*-------------------------------------------------------------
 *
 * Name:	ValidateChecksums
 *
 * Purpose:	Recompute both frame checksums for a decoded tree.
 *
 * Inputs:	tree	- Decoded field tree.  Never modified; the
 *			  crc16 zeroing happens on a clone.
 *		codec	- Codec used to re-encode the tree.
 *
 * Returns:	crc16OK, bch32OK - whether each stored checksum
 *		matches the recomputed value.
 *
 *--------------------------------------------------------------*/

func ValidateChecksums(tree *FieldTree, codec FieldCodec) (bool, bool, error) {
	var encoded, err = codec.Encode(tree)
	if err != nil {
		return false, false, err
	}
	var bch32OK = bch32Calculator.Verify(encoded[:checksumEnd], tree.BCH32)

	var blanked = tree.Clone()
	blanked.CRC16 = 0
	encoded, err = codec.Encode(blanked)
	if err != nil {
		return false, false, err
	}
	var crc16OK = crc16Calculator.Verify(encoded[crc16SkipLead:checksumEnd], tree.CRC16)

	return crc16OK, bch32OK, nil
}
