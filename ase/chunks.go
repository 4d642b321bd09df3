package ase

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"

	"github.com/cam-per/aseload/ase/inflate"
	"github.com/cam-per/aseload/ase/pal"
	"github.com/cam-per/aseload/utils"
)

func (decoder *decoder) decodeChunk(offset int, typ ChunkType, body []byte) error {
	decoder.log.Debug().
		Int("frame", decoder.frame).
		Stringer("type", typ).
		Int("offset", offset).
		Int("size", len(body)+chunkHeaderSize).
		Msg("chunk")

	switch typ {
	case ChunkPalette:
		return decoder.decodePalette(body)
	case ChunkOldPalette, ChunkOldPalette6:
		return decoder.decodeLegacyPalette(body, typ == ChunkOldPalette6)
	case ChunkCel:
		return decoder.decodeCel(body)
	case ChunkTags:
		return decoder.decodeTags(body)
	case ChunkSlice:
		return decoder.decodeSlice(body)
	case ChunkMask, ChunkPath:
		decoder.log.Debug().Stringer("type", typ).Msg("deprecated chunk skipped")
	default:
		decoder.log.Debug().Stringer("type", typ).Msg("chunk skipped")
	}
	return nil
}

func (decoder *decoder) decodePalette(body []byte) error {
	decoder.newPalette = true
	err := pal.NewDecoder(bytes.NewReader(body)).Decode(&decoder.sprite.Palette)
	return decoder.paletteError(err)
}

// Old palette chunks only matter for files written before the 0x2019 chunk
// existed; once one of those is seen they are ignored.
func (decoder *decoder) decodeLegacyPalette(body []byte, sixBit bool) error {
	if decoder.newPalette {
		decoder.log.Debug().Msg("legacy palette superseded")
		return nil
	}
	err := pal.NewDecoder(bytes.NewReader(body)).DecodeLegacy(&decoder.sprite.Palette, sixBit)
	return decoder.paletteError(err)
}

func (decoder *decoder) paletteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pal.ErrNamedEntry), errors.Is(err, pal.ErrOutOfRange):
		return decoder.unsupported(err, "decoding palette entries")
	default:
		return decoder.structural(err, "decoding palette entries")
	}
}

func (decoder *decoder) decodeCel(body []byte) error {
	if len(body) < celHeaderSize {
		return decoder.structural(nil, "cel body is %d bytes, shorter than its %d-byte header", len(body), celHeaderSize)
	}

	var ch celHeader
	if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &ch); err != nil {
		return decoder.structural(err, "reading cel header")
	}
	if ch.X < 0 || ch.Y < 0 {
		return decoder.unsupported(nil, "negative cel offset (%d, %d)", ch.X, ch.Y)
	}
	if ch.Type != celCompressed {
		return decoder.unsupported(nil, "cel type %d, only compressed cels are supported", ch.Type)
	}

	s := decoder.sprite
	x, y := int(ch.X), int(ch.Y)
	w, h := int(ch.Width), int(ch.Height)
	if x+w > s.FrameWidth || y+h > s.FrameHeight {
		return decoder.unsupported(nil, "%dx%d cel at (%d, %d) extends past the %dx%d canvas",
			w, h, x, y, s.FrameWidth, s.FrameHeight)
	}

	size := w * h * s.BytesPerPixel
	if cap(decoder.tile) < size {
		decoder.tile = make([]byte, size)
	}
	tile := decoder.tile[:size]

	n, err := inflate.Decompress(tile, body[celHeaderSize:], !decoder.opts.SkipChecksum)
	if err != nil {
		return decoder.codec(err, "decompressing %dx%d cel", w, h)
	}
	if n != size {
		return decoder.codec(nil, "cel decompressed to %d bytes, want %d", n, size)
	}

	decoder.log.Trace().
		Int("compressed", len(body)-celHeaderSize).
		Int("decompressed", n).
		Msg("cel")

	s.blit(decoder.frame, x, y, w, tile)
	return nil
}

func (decoder *decoder) decodeTags(body []byte) error {
	r := bytes.NewReader(body)

	var th tagsHeader
	if err := binary.Read(r, binary.LittleEndian, &th); err != nil {
		return decoder.structural(err, "reading tags header")
	}

	for i := 0; i < int(th.Count); i++ {
		var tag tagHeader
		if err := binary.Read(r, binary.LittleEndian, &tag); err != nil {
			return decoder.structural(err, "reading tag %d of %d", i, th.Count)
		}
		name, err := utils.ReadPString(r)
		if err != nil {
			return decoder.structural(err, "reading name of tag %d", i)
		}
		decoder.sprite.Tags = append(decoder.sprite.Tags, Tag{
			Name: name.UTF8(),
			From: int(tag.From),
			To:   int(tag.To),
		})
	}
	return nil
}

// Only the first key of a slice is kept.
func (decoder *decoder) decodeSlice(body []byte) error {
	r := bytes.NewReader(body)

	var sh sliceHeader
	if err := binary.Read(r, binary.LittleEndian, &sh); err != nil {
		return decoder.structural(err, "reading slice header")
	}
	if sh.Flags != 0 {
		return decoder.unsupported(nil, "slice flags 0x%X, 9-patch and pivot slices are not supported", sh.Flags)
	}
	if sh.Keys == 0 {
		return decoder.structural(nil, "slice has no keys")
	}

	name, err := utils.ReadPString(r)
	if err != nil {
		return decoder.structural(err, "reading slice name")
	}

	var key sliceKey
	if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
		return decoder.structural(err, "reading slice key")
	}

	x, y := int(key.X), int(key.Y)
	decoder.sprite.Slices = append(decoder.sprite.Slices, Slice{
		Name:   name.UTF8(),
		Bounds: image.Rect(x, y, x+int(key.Width), y+int(key.Height)),
	})
	return nil
}
