// Package inflate decodes zlib-wrapped DEFLATE streams (RFC 1950/1951) into
// caller-provided buffers.
package inflate

import (
	"encoding/binary"
	"fmt"
)

const (
	zlibHeaderSize = 2
	zlibDictSize   = 4
	zlibTrailer    = 4
	zlibFlagDict   = 0x20
)

// Decompress inflates src into dst and returns the number of bytes written.
// A leading zlib header is stripped when present, otherwise src is read as a
// raw DEFLATE stream. With verify set, the Adler-32 trailer must match the
// output.
func Decompress(dst, src []byte, verify bool) (int, error) {
	data, err := stripHeader(src)
	if err != nil {
		return 0, err
	}

	f := &inflater{br: NewBitReader(data), out: dst}
	checksum := uint32(1)

	for n := 0; ; n++ {
		at := f.br.Offset()
		final, err := f.br.GetBits(1)
		if err != nil {
			return 0, fmt.Errorf("block %d at byte %d: %w", n, at, err)
		}
		blockType, err := f.br.GetBits(2)
		if err != nil {
			return 0, fmt.Errorf("block %d at byte %d: %w", n, at, err)
		}

		start := f.pos
		if err := f.block(blockType); err != nil {
			return 0, fmt.Errorf("block %d at byte %d: %w", n, at, err)
		}
		if verify {
			checksum = Adler32(checksum, dst[start:f.pos])
		}
		if final == 1 {
			break
		}
	}

	if !verify {
		return f.pos, nil
	}
	if err := f.br.ByteAlign(); err != nil {
		return 0, err
	}
	off := f.br.pos
	if off+zlibTrailer > len(data) {
		return 0, fmt.Errorf("adler32 trailer: %w", ErrTruncated)
	}
	if want := binary.BigEndian.Uint32(data[off:]); want != checksum {
		return 0, fmt.Errorf("%w: stream has %08x, output has %08x", ErrChecksum, want, checksum)
	}
	return f.pos, nil
}

func stripHeader(src []byte) ([]byte, error) {
	if len(src) < zlibHeaderSize {
		return nil, ErrTruncated
	}
	cmf, flg := src[0], src[1]
	if cmf>>4 > 7 || (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return src, nil
	}
	data := src[zlibHeaderSize:]
	if flg&zlibFlagDict != 0 {
		if len(data) < zlibDictSize {
			return nil, ErrTruncated
		}
		data = data[zlibDictSize:]
	}
	return data, nil
}
