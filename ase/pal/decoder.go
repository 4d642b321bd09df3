package pal

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"github.com/cam-per/aseload/utils"
)

const entryHasName = 1

type header struct {
	Size  uint32
	First uint32
	Last  uint32
	_     [8]byte
}

type entry struct {
	Flags      uint16
	R, G, B, A uint8
}

type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads a palette chunk body into p. The changed range
// [First, Last] is inclusive.
func (decoder *Decoder) Decode(p *Palette) error {
	var h header
	if err := binary.Read(decoder.r, binary.LittleEndian, &h); err != nil {
		return err
	}
	if h.First > h.Last {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, h.First, h.Last)
	}
	if h.Last >= MaxEntries {
		return fmt.Errorf("%w: %d", ErrOutOfRange, h.Last)
	}

	p.Count = int(h.Size)
	for i := h.First; i <= h.Last; i++ {
		var e entry
		if err := binary.Read(decoder.r, binary.LittleEndian, &e); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		if e.Flags&entryHasName != 0 {
			return fmt.Errorf("%w: index %d", ErrNamedEntry, i)
		}
		p.Entries[i] = color.NRGBA{R: e.R, G: e.G, B: e.B, A: e.A}
	}
	return nil
}

// DecodeLegacy reads an old-style palette chunk: packets of RGB triplets,
// each preceded by a skip count and a color count (0 meaning 256). With
// sixBit set the channels are 0..63 and get scaled to 0..255.
func (decoder *Decoder) DecodeLegacy(p *Palette, sixBit bool) error {
	packets, err := utils.ReadUint16LE(decoder.r)
	if err != nil {
		return err
	}

	index := 0
	for k := 0; k < int(packets); k++ {
		skip, err := utils.ReadByte(decoder.r)
		if err != nil {
			return err
		}
		count, err := utils.ReadByte(decoder.r)
		if err != nil {
			return err
		}
		index += int(skip)
		n := int(count)
		if n == 0 {
			n = MaxEntries
		}

		var rgb [3]byte
		for c := 0; c < n; c++ {
			if _, err := io.ReadFull(decoder.r, rgb[:]); err != nil {
				return err
			}
			if index >= MaxEntries {
				return fmt.Errorf("%w: %d", ErrOutOfRange, index)
			}
			if sixBit {
				for i, v := range rgb {
					rgb[i] = v<<2 | v>>4
				}
			}
			p.Entries[index] = color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
			index++
		}
	}
	if index > p.Count {
		p.Count = index
	}
	return nil
}
