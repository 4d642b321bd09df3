package inflate

import (
	"encoding/binary"
	"hash/adler32"
)

// bitWriter emits LSB-first bits, the way a DEFLATE encoder does.
type bitWriter struct {
	buf []byte
	acc uint64
	n   uint
}

func (bw *bitWriter) writeBits(v uint32, n uint) {
	bw.acc |= uint64(v) << bw.n
	bw.n += n
	for bw.n >= 8 {
		bw.buf = append(bw.buf, byte(bw.acc))
		bw.acc >>= 8
		bw.n -= 8
	}
}

// writeCode writes a Huffman codeword, most significant bit first.
func (bw *bitWriter) writeCode(code uint16, length uint8) {
	bw.writeBits(uint32(reverse(int(code), int(length))), uint(length))
}

func (bw *bitWriter) bytes() []byte {
	if bw.n > 0 {
		bw.buf = append(bw.buf, byte(bw.acc))
		bw.acc, bw.n = 0, 0
	}
	return bw.buf
}

func fixedLitCode(sym int) (uint16, uint8) { return fixedLit.Code(sym) }

// zlibWrap adds a zlib header and Adler-32 trailer around a raw DEFLATE stream.
func zlibWrap(deflate, plain []byte) []byte {
	out := []byte{0x78, 0x01}
	out = append(out, deflate...)
	return binary.BigEndian.AppendUint32(out, adler32.Checksum(plain))
}
