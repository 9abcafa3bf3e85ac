// Package bitbuf implements sequential bit-level access to byte buffers.
//
// UCSI and USB PD structures are specified as packed bit fields inside a
// little-endian byte stream, least-significant bit first. Reader and
// Writer consume and produce such streams one field at a time: there is no
// seeking and no backtracking, only forward consumption and byte
// alignment. Both operate on caller-owned buffers and keep no other state
// than the bit position.
package bitbuf

import "errors"

// ErrTruncated is returned when a read or skip requests more bits than the
// buffer still holds.
var ErrTruncated = errors.New("bitbuf: truncated input")

// ErrOverflow is returned when a write does not fit in the target buffer.
var ErrOverflow = errors.New("bitbuf: write past end of buffer")

// ErrRange is returned when a value does not fit the requested field
// width. Masking the value down would silently corrupt the stream, so the
// write is rejected instead.
var ErrRange = errors.New("bitbuf: value does not fit field width")

// errWidth is returned for bit counts outside 1..32.
var errWidth = errors.New("bitbuf: bit count must be between 1 and 32")

// Reader consumes a byte buffer bit by bit, least-significant bit of each
// byte first.
type Reader struct {
	data []byte
	off  int // bit offset from the start of data
}

// NewReader returns a Reader over data. The Reader borrows data; the
// caller must not mutate it while decoding.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int { return len(r.data)*8 - r.off }

// Offset returns the current bit position, useful for diagnostics after a
// decode failure.
func (r *Reader) Offset() int { return r.off }

// ReadBits consumes exactly n bits (1..32) and returns them as an
// unsigned integer with the first-read bit in the least significant
// position. It fails with ErrTruncated without consuming anything if
// fewer than n bits remain.
func (r *Reader) ReadBits(n uint) (uint32, error) {
	if n < 1 || n > 32 {
		return 0, errWidth
	}
	if r.Remaining() < int(n) {
		return 0, ErrTruncated
	}
	var v uint32
	for i := uint(0); i < n; i++ {
		byteIdx := r.off >> 3
		bitIdx := uint(r.off & 7)
		if r.data[byteIdx]>>bitIdx&1 == 1 {
			v |= 1 << i
		}
		r.off++
	}
	return v, nil
}

// ReadBit consumes a single bit as a boolean.
func (r *Reader) ReadBit() (bool, error) {
	v, err := r.ReadBits(1)
	return v == 1, err
}

// Skip advances past n bits without producing a value. Reserved and
// padding fields are skipped, not read, but the bits must still exist.
func (r *Reader) Skip(n uint) error {
	if r.Remaining() < int(n) {
		return ErrTruncated
	}
	r.off += int(n)
	return nil
}

// AlignByte advances to the next byte boundary, discarding any partial
// byte. It is a no-op when already aligned and never fails: the discarded
// bits were already accounted for by the buffer length.
func (r *Reader) AlignByte() {
	if rem := r.off & 7; rem != 0 {
		r.off += 8 - rem
	}
}

// Writer produces a bit stream into a fixed-size caller-owned buffer with
// the same bit order the Reader consumes.
type Writer struct {
	buf []byte
	off int
}

// NewWriter returns a Writer over buf. buf must be zeroed by the caller if
// reserved bits are to read back as zero after partial writes.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Offset returns the number of bits written so far.
func (w *Writer) Offset() int { return w.off }

// Bytes returns the written portion of the buffer, rounded up to whole
// bytes.
func (w *Writer) Bytes() []byte {
	return w.buf[:(w.off+7)>>3]
}

// WriteBits appends the n (1..32) least significant bits of v, least
// significant first. It fails without writing anything: ErrRange if v has
// bits set above the field width, ErrOverflow if the buffer has no room
// for all n bits.
func (w *Writer) WriteBits(v uint32, n uint) error {
	if n < 1 || n > 32 {
		return errWidth
	}
	if n < 32 && v>>n != 0 {
		return ErrRange
	}
	if len(w.buf)*8-w.off < int(n) {
		return ErrOverflow
	}
	for i := uint(0); i < n; i++ {
		byteIdx := w.off >> 3
		bitIdx := uint(w.off & 7)
		if v>>i&1 == 1 {
			w.buf[byteIdx] |= 1 << bitIdx
		} else {
			w.buf[byteIdx] &^= 1 << bitIdx
		}
		w.off++
	}
	return nil
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(b bool) error {
	var v uint32
	if b {
		v = 1
	}
	return w.WriteBits(v, 1)
}

// AlignByte pads with zero bits to the next byte boundary. A no-op when
// already aligned.
func (w *Writer) AlignByte() error {
	rem := w.off & 7
	if rem == 0 {
		return nil
	}
	return w.WriteBits(0, uint(8-rem))
}
