package ase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlitStride(t *testing.T) {
	s := newSprite(&Header{Frames: 3, Width: 4, Height: 3, ColorDepth: DepthRGBA})
	assert.Equal(t, 4*3*4, s.Stride)

	tile := []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4,
	}
	s.blit(2, 1, 1, 2, tile)

	row := func(y int) []byte { return s.Pixels[y*s.Stride : (y+1)*s.Stride] }
	assert.Equal(t, make([]byte, s.Stride), row(0))
	assert.Equal(t, tile[:8], row(1)[(2*4+1)*4:(2*4+3)*4])
	assert.Equal(t, tile[8:], row(2)[(2*4+1)*4:(2*4+3)*4])
	assert.Equal(t, make([]byte, (2*4+1)*4), row(1)[:(2*4+1)*4])
}

func TestFlipOddHeight(t *testing.T) {
	s := newSprite(&Header{Frames: 1, Width: 1, Height: 5, ColorDepth: DepthIndexed})
	copy(s.Pixels, []byte{1, 2, 3, 4, 5})
	s.flipVertically()
	assert.Equal(t, []byte{5, 4, 3, 2, 1}, s.Pixels)
}

func TestTransparentFill(t *testing.T) {
	s := newSprite(&Header{Frames: 2, Width: 2, Height: 2, ColorDepth: DepthIndexed, Transparent: 7})
	assert.Equal(t, []byte{7, 7, 7, 7, 7, 7, 7, 7}, s.Pixels)

	s = newSprite(&Header{Frames: 1, Width: 1, Height: 1, ColorDepth: DepthRGBA, Transparent: 7})
	assert.Equal(t, []byte{0, 0, 0, 0}, s.Pixels)
}

func TestChunkTypeString(t *testing.T) {
	assert.Equal(t, "cel", ChunkCel.String())
	assert.Equal(t, "old palette (6-bit)", ChunkOldPalette6.String())
	assert.Equal(t, "0x7777", ChunkType(0x7777).String())
}

func TestWireSizes(t *testing.T) {
	assert.Equal(t, 128, headerSize)
	assert.Equal(t, 16, frameHeaderSize)
	assert.Equal(t, 6, chunkHeaderSize)
	assert.Equal(t, 20, celHeaderSize)
}
