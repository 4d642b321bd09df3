package ase

import (
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("aseprite", "????\xE0\xA5", Decode, DecodeConfig)
}

// blit copies a w-pixel wide tile into frame's band at (x, y).
func (s *Sprite) blit(frame, x, y, w int, tile []byte) {
	rowBytes := w * s.BytesPerPixel
	if rowBytes == 0 {
		return
	}

	dst := y*s.Stride + (frame*s.FrameWidth+x)*s.BytesPerPixel
	for src := 0; src < len(tile); src += rowBytes {
		copy(s.Pixels[dst:dst+rowBytes], tile[src:src+rowBytes])
		dst += s.Stride
	}
}

func (s *Sprite) flipVertically() {
	row := make([]byte, s.Stride)
	for top, bottom := 0, s.FrameHeight-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := s.Pixels[top*s.Stride : (top+1)*s.Stride]
		b := s.Pixels[bottom*s.Stride : (bottom+1)*s.Stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
}

// Image returns the whole atlas as an *image.Paletted (indexed sprites) or
// *image.NRGBA sharing the Pixels buffer.
func (s *Sprite) Image() image.Image {
	rect := image.Rect(0, 0, s.FrameWidth*s.NumFrames(), s.FrameHeight)
	if s.BytesPerPixel == 1 {
		return &image.Paletted{
			Pix:     s.Pixels,
			Stride:  s.Stride,
			Rect:    rect,
			Palette: s.Palette.Colors(),
		}
	}
	return &image.NRGBA{
		Pix:    s.Pixels,
		Stride: s.Stride,
		Rect:   rect,
	}
}

// Frame returns frame i as a sub-image of the atlas, or nil if i is out of
// range. Its bounds are FrameRect(i).
func (s *Sprite) Frame(i int) image.Image {
	if i < 0 || i >= s.NumFrames() {
		return nil
	}
	sub, ok := s.Image().(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil
	}
	return sub.SubImage(s.FrameRect(i))
}

func (s *Sprite) colorModel() color.Model {
	if s.BytesPerPixel == 1 {
		return s.Palette.Colors()
	}
	return color.NRGBAModel
}

// Decode decodes a sprite file into its atlas image with default options.
func Decode(r io.Reader) (image.Image, error) {
	sprite, err := Read(r, Options{})
	if err != nil {
		return nil, err
	}
	return sprite.Image(), nil
}

// DecodeConfig reports the atlas dimensions. The palette is part of the
// color model, so the whole file is decoded.
func DecodeConfig(r io.Reader) (image.Config, error) {
	sprite, err := Read(r, Options{})
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: sprite.colorModel(),
		Width:      sprite.FrameWidth * sprite.NumFrames(),
		Height:     sprite.FrameHeight,
	}, nil
}
