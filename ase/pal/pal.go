// Package pal decodes sprite palette chunks.
package pal

import (
	"errors"
	"image/color"
)

const MaxEntries = 256

var (
	ErrNamedEntry   = errors.New("pal: named palette entries are not supported")
	ErrOutOfRange   = errors.New("pal: palette index out of range")
	ErrInvalidRange = errors.New("pal: first changed index after last")
)

// Palette is a fixed 256-entry color table. ColorKey is the index rendered
// as transparent in indexed images.
type Palette struct {
	Count    int
	ColorKey uint8
	Entries  [MaxEntries]color.NRGBA
}

// Colors returns the table as a color.Palette with the color key entry
// fully transparent.
func (p *Palette) Colors() color.Palette {
	colors := make(color.Palette, MaxEntries)
	for i := range colors {
		colors[i] = p.Entries[i]
	}
	colors[p.ColorKey] = color.NRGBA{}
	return colors
}
