package inflate

import (
	"encoding/binary"
	"errors"
)

var errAlign = errors.New("inflate: byte alignment rewinds past stream start")

// BitReader reads DEFLATE bits (least significant first) from an in-memory
// stream. Whole bytes are loaded into a 64-bit accumulator, so the input
// cursor can always be recovered with ByteAlign.
type BitReader struct {
	data []byte
	pos  int
	acc  uint64
	n    uint
}

func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// Refill pulls four bytes at once while the accumulator holds 32 bits or
// fewer. Near the end of input it does nothing.
func (br *BitReader) Refill() {
	if br.n <= 32 && br.pos+4 <= len(br.data) {
		br.acc |= uint64(binary.LittleEndian.Uint32(br.data[br.pos:])) << br.n
		br.n += 32
		br.pos += 4
	}
}

func (br *BitReader) fill(want uint) {
	for br.n < want && br.pos < len(br.data) {
		br.acc |= uint64(br.data[br.pos]) << br.n
		br.n += 8
		br.pos++
	}
}

// GetBits consumes and returns the next n bits, n <= 16.
func (br *BitReader) GetBits(n uint) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	br.fill(n)
	if br.n < n {
		return 0, ErrTruncated
	}
	v := uint32(br.acc & (1<<n - 1))
	br.acc >>= n
	br.n -= n
	return v, nil
}

// PeekBits returns 16 bits of lookahead without consuming them. Bits past
// the end of input read as zero; check Buffered before consuming.
func (br *BitReader) PeekBits() uint32 {
	br.fill(16)
	return uint32(br.acc & 0xffff)
}

// ConsumeBits drops n bits that were returned by PeekBits.
func (br *BitReader) ConsumeBits(n uint) {
	br.acc >>= n
	br.n -= n
}

// Buffered is the number of real input bits held in the accumulator.
func (br *BitReader) Buffered() uint { return br.n }

// Offset is the index of the first input byte not yet fully consumed.
func (br *BitReader) Offset() int { return br.pos - int(br.n/8) }

// ByteAlign discards the rest of the current byte and moves the input cursor
// back over any whole bytes still sitting in the accumulator.
func (br *BitReader) ByteAlign() error {
	rewind := int(br.n / 8)
	if br.pos-rewind < 0 {
		return errAlign
	}
	br.pos -= rewind
	br.acc = 0
	br.n = 0
	return nil
}
