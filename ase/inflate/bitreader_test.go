package inflate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitReaderGetBits(t *testing.T) {
	br := NewBitReader([]byte{0b10110100, 0b00000001})

	v, err := br.GetBits(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0b00), v)

	v, err = br.GetBits(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(0b101), v)

	v, err = br.GetBits(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0b1101), v)

	v, err = br.GetBits(7)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)

	_, err = br.GetBits(1)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestBitReaderRefill(t *testing.T) {
	br := NewBitReader([]byte{1, 2, 3, 4, 5})
	br.Refill()
	assert.Equal(t, uint(32), br.Buffered())

	// Fewer than four bytes left: no-op.
	br.Refill()
	br.ConsumeBits(8)
	br.Refill()
	assert.Equal(t, uint(24), br.Buffered())

	v, err := br.GetBits(16)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0302), v)
}

func TestBitReaderPeekAtEnd(t *testing.T) {
	br := NewBitReader([]byte{0xff})
	assert.Equal(t, uint32(0x00ff), br.PeekBits())
	assert.Equal(t, uint(8), br.Buffered())
}

func TestBitReaderByteAlign(t *testing.T) {
	br := NewBitReader([]byte{0xff, 0xaa, 0xbb, 0xcc, 0xdd})
	br.Refill()
	_, err := br.GetBits(3)
	require.NoError(t, err)

	require.NoError(t, br.ByteAlign())
	assert.Equal(t, 1, br.Offset())
	assert.Equal(t, uint(0), br.Buffered())

	v, err := br.GetBits(8)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xaa), v)
}
