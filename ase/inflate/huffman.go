package inflate

import "math/bits"

const (
	maxCodeLen = 15
	maxSymbols = 288

	// Codes up to fastBits long decode with a single table lookup.
	fastBits = 10
	fastMask = 1<<fastBits - 1
)

// HuffmanTable decodes a canonical prefix code built from per-symbol code
// lengths. Build it with Prepare followed by Finalize.
type HuffmanTable struct {
	// fast holds symbol | length<<24 indexed by the bit-reversed codeword;
	// zero marks a slot with no short code.
	fast [1 << fastBits]uint32

	count  [maxCodeLen + 1]int // symbols per code length
	offset [maxCodeLen + 1]int // first index in sorted per code length
	first  [maxCodeLen + 1]int // first canonical codeword per code length

	sorted  [maxSymbols]uint16 // symbols ordered by (length, symbol)
	codes   [maxSymbols]uint16
	lengths [maxSymbols]uint8

	numSorted int
	numTotal  int
}

// Prepare records lengths[:numRead]; symbols numRead..numTotal-1 are unused.
func (h *HuffmanTable) Prepare(lengths []uint8, numRead, numTotal int) error {
	if numRead < 0 || numRead > numTotal || numTotal > maxSymbols || numRead > len(lengths) {
		return ErrHuffman
	}
	*h = HuffmanTable{numTotal: numTotal}

	for sym, l := range lengths[:numRead] {
		if l > maxCodeLen {
			return ErrHuffman
		}
		h.lengths[sym] = l
		if l != 0 {
			h.count[l]++
		}
	}

	pos := 0
	for l := 1; l <= maxCodeLen; l++ {
		h.offset[l] = pos
		pos += h.count[l]
	}
	h.numSorted = pos

	next := h.offset
	for sym := 0; sym < numRead; sym++ {
		if l := h.lengths[sym]; l != 0 {
			h.sorted[next[l]] = uint16(sym)
			next[l]++
		}
	}
	return nil
}

// Finalize assigns canonical codewords and fills the fast lookup table.
// Over-subscribed codes always fail; an incomplete code is accepted only
// when it has at most one symbol.
func (h *HuffmanTable) Finalize() error {
	code, left := 0, 1
	for l := 1; l <= maxCodeLen; l++ {
		code <<= 1
		left <<= 1
		left -= h.count[l]
		if left < 0 {
			return ErrHuffman
		}
		h.first[l] = code

		for i := h.offset[l]; i < h.offset[l]+h.count[l]; i++ {
			sym := h.sorted[i]
			h.codes[sym] = uint16(code)
			if l <= fastBits {
				entry := uint32(sym) | uint32(l)<<24
				for j := reverse(code, l); j < 1<<fastBits; j += 1 << l {
					h.fast[j] = entry
				}
			}
			code++
		}
	}
	if left > 0 && h.numSorted > 1 {
		return ErrHuffman
	}
	return nil
}

// Decode reads one symbol from br.
func (h *HuffmanTable) Decode(br *BitReader) (int, error) {
	stream := br.PeekBits()
	if entry := h.fast[stream&fastMask]; entry != 0 {
		l := uint(entry >> 24)
		if l > br.Buffered() {
			return 0, ErrTruncated
		}
		br.ConsumeBits(l)
		return int(entry & 0xffffff), nil
	}

	code := 0
	for l := 1; l <= maxCodeLen; l++ {
		code |= int(stream & 1)
		stream >>= 1
		if idx := code - h.first[l]; idx >= 0 && idx < h.count[l] {
			if uint(l) > br.Buffered() {
				return 0, ErrTruncated
			}
			br.ConsumeBits(uint(l))
			return int(h.sorted[h.offset[l]+idx]), nil
		}
		code <<= 1
	}
	if br.Buffered() < maxCodeLen {
		return 0, ErrTruncated
	}
	return 0, ErrSymbol
}

// Code returns the canonical codeword (most significant bit first) and its
// length for sym. Unused symbols have length 0.
func (h *HuffmanTable) Code(sym int) (uint16, uint8) {
	if sym < 0 || sym >= h.numTotal || h.lengths[sym] == 0 {
		return 0, 0
	}
	return h.codes[sym], h.lengths[sym]
}

func reverse(code, length int) int {
	return int(bits.Reverse16(uint16(code)) >> (16 - length))
}
