package ase

import (
	"image"
	"time"

	"github.com/cam-per/aseload/ase/pal"
)

// Tag names an inclusive frame range.
type Tag struct {
	Name     string
	From, To int
}

type Slice struct {
	Name   string
	Bounds image.Rectangle
}

// Sprite is a loaded file. Pixels holds every frame side by side in a single
// row: frame i occupies columns [i*FrameWidth, (i+1)*FrameWidth) and each
// atlas row is Stride bytes long.
type Sprite struct {
	Header Header

	Pixels        []byte
	Stride        int
	BytesPerPixel int
	FrameWidth    int
	FrameHeight   int

	Palette   pal.Palette
	Tags      []Tag
	Durations []time.Duration
	Slices    []Slice
}

func newSprite(h *Header) *Sprite {
	bpp := h.BytesPerPixel()
	s := &Sprite{
		Header:        *h,
		BytesPerPixel: bpp,
		FrameWidth:    int(h.Width),
		FrameHeight:   int(h.Height),
		Stride:        int(h.Width) * int(h.Frames) * bpp,
	}
	s.Pixels = make([]byte, s.Stride*s.FrameHeight)
	s.Palette.ColorKey = h.Transparent

	if h.ColorDepth == DepthIndexed && h.Transparent != 0 {
		for i := range s.Pixels {
			s.Pixels[i] = h.Transparent
		}
	}
	return s
}

func (s *Sprite) NumFrames() int { return int(s.Header.Frames) }

// FrameRect is the area of frame i inside the atlas.
func (s *Sprite) FrameRect(i int) image.Rectangle {
	return image.Rect(i*s.FrameWidth, 0, (i+1)*s.FrameWidth, s.FrameHeight)
}

func (s *Sprite) Tag(name string) (Tag, bool) {
	for _, tag := range s.Tags {
		if tag.Name == name {
			return tag, true
		}
	}
	return Tag{}, false
}

func (s *Sprite) Slice(name string) (Slice, bool) {
	for _, slice := range s.Slices {
		if slice.Name == name {
			return slice, true
		}
	}
	return Slice{}, false
}

// Release drops the pixel buffer and metadata. The sprite must not be used
// afterwards.
func (s *Sprite) Release() {
	s.Pixels = nil
	s.Tags = nil
	s.Durations = nil
	s.Slices = nil
	s.Header.Frames = 0
}
