package inflate

import "encoding/binary"

const (
	numLitSyms     = 288
	numDistSyms    = 32
	numCodeLenSyms = 19
	endOfBlock     = 256

	// Matches at least this far back are copied in blocks instead of
	// byte by byte.
	fastCopyMin = 16
)

var (
	lengthBase = [29]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtra = [29]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
	distBase = [30]uint16{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtra = [30]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
	codeLengthOrder = [numCodeLenSyms]uint8{
		16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
	}
)

var fixedLit, fixedDist HuffmanTable

func init() {
	var lengths [numLitSyms]uint8
	for i := range lengths {
		switch {
		case i < 144:
			lengths[i] = 8
		case i < 256:
			lengths[i] = 9
		case i < 280:
			lengths[i] = 7
		default:
			lengths[i] = 8
		}
	}
	mustBuild(&fixedLit, lengths[:], numLitSyms)

	var dist [numDistSyms]uint8
	for i := range dist {
		dist[i] = 5
	}
	mustBuild(&fixedDist, dist[:], numDistSyms)
}

func mustBuild(h *HuffmanTable, lengths []uint8, n int) {
	if err := h.Prepare(lengths, n, n); err != nil {
		panic(err)
	}
	if err := h.Finalize(); err != nil {
		panic(err)
	}
}

// inflater decodes consecutive blocks into a fixed-capacity output buffer.
type inflater struct {
	br  *BitReader
	out []byte
	pos int

	lit, dist, codeLen HuffmanTable
	lengths            [numLitSyms + numDistSyms]uint8
}

func (f *inflater) block(blockType uint32) error {
	switch blockType {
	case 0:
		return f.storedBlock()
	case 1:
		return f.huffmanBlock(&fixedLit, &fixedDist)
	case 2:
		if err := f.readDynamicTables(); err != nil {
			return err
		}
		return f.huffmanBlock(&f.lit, &f.dist)
	default:
		return ErrBlockType
	}
}

func (f *inflater) storedBlock() error {
	br := f.br
	if err := br.ByteAlign(); err != nil {
		return err
	}
	if br.pos+4 > len(br.data) {
		return ErrTruncated
	}
	length := binary.LittleEndian.Uint16(br.data[br.pos:])
	nlength := binary.LittleEndian.Uint16(br.data[br.pos+2:])
	br.pos += 4

	if length != ^nlength {
		return ErrStoredLength
	}
	n := int(length)
	if n > len(f.out)-f.pos {
		return ErrOverflow
	}
	if br.pos+n > len(br.data) {
		return ErrTruncated
	}
	copy(f.out[f.pos:], br.data[br.pos:br.pos+n])
	br.pos += n
	f.pos += n
	return nil
}

func (f *inflater) readDynamicTables() error {
	br := f.br

	hlit, err := br.GetBits(5)
	if err != nil {
		return err
	}
	hdist, err := br.GetBits(5)
	if err != nil {
		return err
	}
	hclen, err := br.GetBits(4)
	if err != nil {
		return err
	}
	numLit := int(hlit) + 257
	numDist := int(hdist) + 1
	numCodeLen := int(hclen) + 4

	var codeLengths [numCodeLenSyms]uint8
	for i := 0; i < numCodeLen; i++ {
		v, err := br.GetBits(3)
		if err != nil {
			return err
		}
		codeLengths[codeLengthOrder[i]] = uint8(v)
	}
	if err := f.codeLen.Prepare(codeLengths[:], numCodeLenSyms, numCodeLenSyms); err != nil {
		return err
	}
	if err := f.codeLen.Finalize(); err != nil {
		return err
	}

	total := numLit + numDist
	for i := 0; i < total; {
		sym, err := f.codeLen.Decode(br)
		if err != nil {
			return err
		}
		if sym < 16 {
			f.lengths[i] = uint8(sym)
			i++
			continue
		}

		var (
			repeat int
			value  uint8
			extra  uint32
		)
		switch sym {
		case 16:
			if i == 0 {
				return ErrRepeat
			}
			value = f.lengths[i-1]
			extra, err = br.GetBits(2)
			repeat = 3 + int(extra)
		case 17:
			extra, err = br.GetBits(3)
			repeat = 3 + int(extra)
		default:
			extra, err = br.GetBits(7)
			repeat = 11 + int(extra)
		}
		if err != nil {
			return err
		}
		if i+repeat > total {
			return ErrRepeat
		}
		for ; repeat > 0; repeat-- {
			f.lengths[i] = value
			i++
		}
	}
	if f.lengths[endOfBlock] == 0 {
		return ErrHuffman
	}

	if err := f.lit.Prepare(f.lengths[:numLit], numLit, numLitSyms); err != nil {
		return err
	}
	if err := f.dist.Prepare(f.lengths[numLit:total], numDist, numDistSyms); err != nil {
		return err
	}
	if err := f.lit.Finalize(); err != nil {
		return err
	}
	return f.dist.Finalize()
}

func (f *inflater) huffmanBlock(lit, dist *HuffmanTable) error {
	br := f.br
	for {
		br.Refill()
		sym, err := lit.Decode(br)
		if err != nil {
			return err
		}

		switch {
		case sym < endOfBlock:
			if f.pos >= len(f.out) {
				return ErrOverflow
			}
			f.out[f.pos] = byte(sym)
			f.pos++
			continue
		case sym == endOfBlock:
			return nil
		}

		sym -= endOfBlock + 1
		if sym >= len(lengthBase) {
			return ErrSymbol
		}
		extra, err := br.GetBits(uint(lengthExtra[sym]))
		if err != nil {
			return err
		}
		length := int(lengthBase[sym]) + int(extra)

		dsym, err := dist.Decode(br)
		if err != nil {
			return err
		}
		if dsym >= len(distBase) {
			return ErrSymbol
		}
		extra, err = br.GetBits(uint(distExtra[dsym]))
		if err != nil {
			return err
		}
		distance := int(distBase[dsym]) + int(extra)

		if err := f.copyMatch(distance, length); err != nil {
			return err
		}
	}
}

// copyMatch copies length bytes starting distance bytes back. Overlapping
// matches repeat the pattern exactly as a byte-at-a-time copy would.
func (f *inflater) copyMatch(distance, length int) error {
	if distance > f.pos {
		return ErrDistance
	}
	if length > len(f.out)-f.pos {
		return ErrOverflow
	}
	src := f.pos - distance
	end := f.pos + length

	if distance >= fastCopyMin {
		for f.pos < end {
			f.pos += copy(f.out[f.pos:end], f.out[src:f.pos])
		}
		return nil
	}
	for ; f.pos < end; f.pos++ {
		f.out[f.pos] = f.out[src]
		src++
	}
	return nil
}
