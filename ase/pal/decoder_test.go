package pal

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paletteChunk(size, first, last uint32, entries ...entry) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, header{Size: size, First: first, Last: last})
	for _, e := range entries {
		binary.Write(&buf, binary.LittleEndian, e)
	}
	return buf.Bytes()
}

func TestDecodeInclusiveRange(t *testing.T) {
	data := paletteChunk(8, 2, 4,
		entry{R: 1, G: 2, B: 3, A: 4},
		entry{R: 5, G: 6, B: 7, A: 8},
		entry{R: 9, G: 10, B: 11, A: 12},
	)

	var p Palette
	require.NoError(t, NewDecoder(bytes.NewReader(data)).Decode(&p))
	assert.Equal(t, 8, p.Count)
	assert.Equal(t, color.NRGBA{}, p.Entries[1])
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, p.Entries[2])
	assert.Equal(t, color.NRGBA{R: 9, G: 10, B: 11, A: 12}, p.Entries[4])
	assert.Equal(t, color.NRGBA{}, p.Entries[5])
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		err  error
	}{
		{name: "named entry", data: paletteChunk(1, 0, 0, entry{Flags: 1}), err: ErrNamedEntry},
		{name: "beyond 256", data: paletteChunk(300, 0, 299), err: ErrOutOfRange},
		{name: "inverted range", data: paletteChunk(4, 3, 1), err: ErrInvalidRange},
		{name: "truncated", data: paletteChunk(4, 0, 3, entry{}), err: io.ErrUnexpectedEOF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var p Palette
			assert.ErrorIs(t, NewDecoder(bytes.NewReader(tc.data)).Decode(&p), tc.err)
		})
	}
}

func TestDecodeLegacy(t *testing.T) {
	data := []byte{
		2, 0, // packets
		1, 1, 10, 20, 30, // skip 1, one color
		1, 2, 63, 0, 32, 1, 2, 3, // skip 1, two colors
	}

	var p Palette
	require.NoError(t, NewDecoder(bytes.NewReader(data)).DecodeLegacy(&p, true))
	assert.Equal(t, 5, p.Count)
	assert.Equal(t, color.NRGBA{R: 40, G: 81, B: 121, A: 255}, p.Entries[1])
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 130, A: 255}, p.Entries[3])
	assert.Equal(t, color.NRGBA{R: 4, G: 8, B: 12, A: 255}, p.Entries[4])
}

func TestColorsMakesColorKeyTransparent(t *testing.T) {
	p := Palette{ColorKey: 3}
	p.Entries[3] = color.NRGBA{R: 255, A: 255}
	p.Entries[4] = color.NRGBA{G: 255, A: 255}

	colors := p.Colors()
	require.Len(t, colors, MaxEntries)
	assert.Equal(t, color.NRGBA{}, colors[3])
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, colors[4])
}
