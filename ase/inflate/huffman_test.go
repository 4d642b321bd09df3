package inflate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, lengths []uint8) *HuffmanTable {
	t.Helper()
	var h HuffmanTable
	require.NoError(t, h.Prepare(lengths, len(lengths), len(lengths)))
	require.NoError(t, h.Finalize())
	return &h
}

// RFC 1951 section 3.2.2 example: ABCDEFGH with lengths (3,3,3,3,3,2,4,4).
func TestHuffmanCanonicalCodes(t *testing.T) {
	h := buildTable(t, []uint8{3, 3, 3, 3, 3, 2, 4, 4})

	want := []struct {
		code   uint16
		length uint8
	}{
		{0b010, 3}, {0b011, 3}, {0b100, 3}, {0b101, 3}, {0b110, 3},
		{0b00, 2}, {0b1110, 4}, {0b1111, 4},
	}
	for sym, w := range want {
		code, length := h.Code(sym)
		assert.Equal(t, w.code, code, "symbol %d", sym)
		assert.Equal(t, w.length, length, "symbol %d", sym)
	}
}

func TestHuffmanPrepareRejects(t *testing.T) {
	var h HuffmanTable
	assert.ErrorIs(t, h.Prepare([]uint8{1, 16}, 2, 2), ErrHuffman)
	assert.ErrorIs(t, h.Prepare([]uint8{1, 1}, 3, 2), ErrHuffman)
	assert.ErrorIs(t, h.Prepare(make([]uint8, 300), 300, 300), ErrHuffman)
}

func TestHuffmanFinalizeSubscription(t *testing.T) {
	for _, tc := range []struct {
		name    string
		lengths []uint8
		err     error
	}{
		{name: "complete", lengths: []uint8{1, 2, 2}},
		{name: "over-subscribed", lengths: []uint8{1, 1, 1}, err: ErrHuffman},
		{name: "under-subscribed", lengths: []uint8{1, 2, 0}, err: ErrHuffman},
		{name: "single code", lengths: []uint8{0, 1, 0}},
		{name: "empty", lengths: []uint8{0, 0, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var h HuffmanTable
			require.NoError(t, h.Prepare(tc.lengths, len(tc.lengths), len(tc.lengths)))
			err := h.Finalize()
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHuffmanEmptyTableNeverMatches(t *testing.T) {
	h := buildTable(t, make([]uint8, numDistSyms))
	br := NewBitReader([]byte{0x00, 0x00, 0x00})
	_, err := h.Decode(br)
	assert.ErrorIs(t, err, ErrSymbol)
}

// randomLengths grows a complete prefix code by repeatedly splitting a leaf,
// then scatters the leaves over random symbols.
func randomLengths(rng *rand.Rand, numSymbols int) []uint8 {
	leaves := []uint8{0}
	target := 2 + rng.Intn(numSymbols-1)
	for len(leaves) < target {
		i := rng.Intn(len(leaves))
		if leaves[i] >= maxCodeLen {
			continue
		}
		leaves[i]++
		leaves = append(leaves, leaves[i])
	}

	lengths := make([]uint8, numSymbols)
	for i, sym := range rng.Perm(numSymbols)[:len(leaves)] {
		lengths[sym] = leaves[i]
	}
	return lengths
}

func TestHuffmanRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		numSymbols := 2 + rng.Intn(maxSymbols-1)
		lengths := randomLengths(rng, numSymbols)
		h := buildTable(t, lengths)

		var used []int
		for sym, l := range lengths {
			if l != 0 {
				used = append(used, sym)
			}
		}

		symbols := make([]int, 500)
		var bw bitWriter
		for i := range symbols {
			symbols[i] = used[rng.Intn(len(used))]
			bw.writeCode(h.Code(symbols[i]))
		}

		br := NewBitReader(bw.bytes())
		for i, want := range symbols {
			br.Refill()
			got, err := h.Decode(br)
			require.NoError(t, err, "round %d symbol %d", round, i)
			require.Equal(t, want, got, "round %d symbol %d", round, i)
		}
	}
}

func TestHuffmanCanonicalOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 100; round++ {
		lengths := randomLengths(rng, maxSymbols)
		h := buildTable(t, lengths)

		// Left-align every codeword to 15 bits: canonical order means the
		// aligned values increase with (length, symbol).
		prev, prevLen := -1, 0
		for l := 1; l <= maxCodeLen; l++ {
			for sym := range lengths {
				code, length := h.Code(sym)
				if int(length) != l {
					continue
				}
				aligned := int(code) << (maxCodeLen - l)
				require.Greater(t, aligned, prev, "round %d symbol %d", round, sym)
				require.GreaterOrEqual(t, l, prevLen)
				prev, prevLen = aligned, l
			}
		}
	}
}
