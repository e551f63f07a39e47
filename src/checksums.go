package scm

/*-------------------------------------------------------------
 *
 * Purpose:	CRC calculators for the transmission trailer fields.
 *
 *		Three direct (non-reflected) polynomial division
 *		configurations, all with zero initial value and zero
 *		final xor:
 *
 *		  CRC16	poly 0x1021		(header checksum)
 *		  BCH32	poly 0xEE5B42FD		(frame trailer)
 *		  FCS32	poly 0x04C11DB7		(ground segment)
 *
 *		Only CRC16 and BCH32 appear in frames; FCS32 is kept
 *		for parity with the uplink provider's toolset.
 *
 *--------------------------------------------------------------*/

// Calculator computes a CRC of up to 32 bits, most significant bit
// first, without input or output reflection.
type Calculator struct {
	width      uint
	polynomial uint32
	topbit     uint32
	mask       uint32
}

func NewCalculator(width uint, polynomial uint32) *Calculator {
	var mask = uint32(0xFFFFFFFF)
	if width < 32 {
		mask = (1 << width) - 1
	}
	return &Calculator{
		width:      width,
		polynomial: polynomial,
		topbit:     1 << (width - 1),
		mask:       mask,
	}
}

// NewCRC16Calculator returns the 16-bit CCITT polynomial calculator
// used for the header checksum field.
func NewCRC16Calculator() *Calculator {
	return NewCalculator(16, 0x1021)
}

// NewBCH32Calculator returns the calculator matching the checksum
// portion of the 32-bit BCH trailer.  Error correction happens on
// the space segment; on the ground we only ever verify.
func NewBCH32Calculator() *Calculator {
	return NewCalculator(32, 0xEE5B42FD)
}

// NewFCS32Calculator returns the 32-bit frame check sequence
// calculator (IEEE 802.3 polynomial, direct form).
func NewFCS32Calculator() *Calculator {
	return NewCalculator(32, 0x04C11DB7)
}

/*-------------------------------------------------------------
 *
 * Name:	Checksum
 *
 * Purpose:	Compute the CRC over a byte slice.
 *
 * Inputs:	data	- Message bytes.
 *
 * Returns:	CRC value in the low bits of a uint32.
 *
 *--------------------------------------------------------------*/

func (c *Calculator) Checksum(data []byte) uint32 {
	var remainder uint32

	for _, b := range data {
		remainder = (remainder ^ (uint32(b) << (c.width - 8))) & c.mask
		for bit := 0; bit < 8; bit++ {
			if remainder&c.topbit != 0 {
				remainder = ((remainder << 1) ^ c.polynomial) & c.mask
			} else {
				remainder = (remainder << 1) & c.mask
			}
		}
	}

	return remainder
}

// Verify reports whether data checksums to expected.
func (c *Calculator) Verify(data []byte, expected uint32) bool {
	return c.Checksum(data) == expected
}
