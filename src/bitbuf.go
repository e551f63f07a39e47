package scm

/*-------------------------------------------------------------
 *
 * Purpose:	MSB-first bit packing over a fixed frame buffer.
 *
 *		The transmission format packs fields back to back
 *		with no alignment, so byte-oriented encoding/binary
 *		is no use here.
 *
 *--------------------------------------------------------------*/

type bitReader struct {
	buf []byte
	pos int // absolute bit position from the start of buf
}

type bitWriter struct {
	buf []byte
	pos int
}

func newBitReader(buf []byte) *bitReader {
	return &bitReader{buf: buf}
}

func newBitWriter(buf []byte) *bitWriter {
	return &bitWriter{buf: buf}
}

// take reads the next n bits (n <= 32) as an unsigned value.
func (r *bitReader) take(n int) uint32 {
	return uint32(r.take64(n))
}

// take64 reads the next n bits (n <= 64) as an unsigned value.
func (r *bitReader) take64(n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v <<= 1
		v |= uint64(r.buf[r.pos>>3]>>(7-(r.pos&7))) & 1
		r.pos++
	}
	return v
}

// takeBytes reads n bits into a left-aligned byte slice.  Unused
// trailing bits of the final byte are zero.
func (r *bitReader) takeBytes(n int) []byte {
	var out = make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		var bit = (r.buf[r.pos>>3] >> (7 - (r.pos & 7))) & 1
		out[i>>3] |= bit << (7 - (i & 7))
		r.pos++
	}
	return out
}

// put writes the low n bits (n <= 32) of v.
func (w *bitWriter) put(n int, v uint32) {
	w.put64(n, uint64(v))
}

// put64 writes the low n bits (n <= 64) of v.
func (w *bitWriter) put64(n int, v uint64) {
	for i := n - 1; i >= 0; i-- {
		var bit = byte(v>>uint(i)) & 1
		w.buf[w.pos>>3] |= bit << (7 - (w.pos & 7))
		w.pos++
	}
}

// putBytes writes n bits from a left-aligned byte slice.
func (w *bitWriter) putBytes(n int, src []byte) {
	for i := 0; i < n; i++ {
		var bit = (src[i>>3] >> (7 - (i & 7))) & 1
		w.buf[w.pos>>3] |= bit << (7 - (w.pos & 7))
		w.pos++
	}
}
