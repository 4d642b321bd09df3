// Package asetest builds sprite files in memory for tests.
package asetest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"

	"github.com/klauspost/compress/zlib"
)

const (
	FileMagic  uint16 = 0xA5E0
	FrameMagic uint16 = 0xF1FA

	CelRaw        uint16 = 0
	CelLinked     uint16 = 1
	CelCompressed uint16 = 2

	ChunkOldPalette  uint16 = 0x0004
	ChunkOldPalette6 uint16 = 0x0011
	ChunkLayer       uint16 = 0x2004
	ChunkCel         uint16 = 0x2005
	ChunkTags        uint16 = 0x2018
	ChunkPalette     uint16 = 0x2019
	ChunkSlice       uint16 = 0x2022
)

type File struct {
	Magic       uint16
	Width       uint16
	Height      uint16
	Depth       uint16
	Transparent uint8

	frames []*Frame
}

type Frame struct {
	Magic    uint16
	Duration uint16
	// LegacyCount stores the chunk count in the 16-bit field only.
	LegacyCount bool
	// ExtraChunks is added to the declared chunk count.
	ExtraChunks int

	chunks [][]byte
}

type Tag struct {
	Name     string
	From, To int
}

func New(width, height int, depth uint16) *File {
	return &File{
		Magic:  FileMagic,
		Width:  uint16(width),
		Height: uint16(height),
		Depth:  depth,
	}
}

func (f *File) AddFrame(durationMs int) *Frame {
	frame := &Frame{Magic: FrameMagic, Duration: uint16(durationMs)}
	f.frames = append(f.frames, frame)
	return frame
}

func (f *File) Bytes() []byte {
	var body bytes.Buffer
	for _, frame := range f.frames {
		body.Write(frame.bytes())
	}

	var out bytes.Buffer
	le(&out,
		uint32(128+body.Len()),
		f.Magic,
		uint16(len(f.frames)),
		f.Width,
		f.Height,
		f.Depth,
		uint32(1),   // flags
		uint16(100), // speed
		[8]byte{},
		f.Transparent,
		[3]byte{},
		uint16(256),
		uint8(1), uint8(1),
		int16(0), int16(0),
		uint16(16), uint16(16),
		[84]byte{},
	)
	out.Write(body.Bytes())
	return out.Bytes()
}

func (fr *Frame) bytes() []byte {
	var body bytes.Buffer
	for _, chunk := range fr.chunks {
		body.Write(chunk)
	}

	count := len(fr.chunks) + fr.ExtraChunks
	oldCount, newCount := uint16(count), uint32(count)
	if fr.LegacyCount {
		newCount = 0
	}

	var out bytes.Buffer
	le(&out, uint32(16+body.Len()), fr.Magic, oldCount, fr.Duration, [2]byte{}, newCount)
	out.Write(body.Bytes())
	return out.Bytes()
}

// Chunk appends a chunk with a correct size field.
func (fr *Frame) Chunk(typ uint16, body []byte) *Frame {
	return fr.RawChunk(uint32(len(body)+6), typ, body)
}

// RawChunk appends a chunk whose size field is written as given.
func (fr *Frame) RawChunk(size uint32, typ uint16, body []byte) *Frame {
	var out bytes.Buffer
	le(&out, size, typ)
	out.Write(body)
	fr.chunks = append(fr.chunks, out.Bytes())
	return fr
}

// Palette sets colors starting at index first.
func (fr *Frame) Palette(first int, colors ...color.NRGBA) *Frame {
	var body bytes.Buffer
	le(&body, uint32(first+len(colors)), uint32(first), uint32(first+len(colors)-1), [8]byte{})
	for _, c := range colors {
		le(&body, uint16(0), c.R, c.G, c.B, c.A)
	}
	return fr.Chunk(ChunkPalette, body.Bytes())
}

func (fr *Frame) NamedPalette(index int, c color.NRGBA, name string) *Frame {
	var body bytes.Buffer
	le(&body, uint32(index+1), uint32(index), uint32(index), [8]byte{})
	le(&body, uint16(1), c.R, c.G, c.B, c.A)
	pstring(&body, name)
	return fr.Chunk(ChunkPalette, body.Bytes())
}

// LegacyPalette writes a single packet of RGB triplets after skipping skip
// entries.
func (fr *Frame) LegacyPalette(sixBit bool, skip int, rgb ...[3]byte) *Frame {
	var body bytes.Buffer
	le(&body, uint16(1), uint8(skip), uint8(len(rgb)))
	for _, c := range rgb {
		body.Write(c[:])
	}
	typ := ChunkOldPalette
	if sixBit {
		typ = ChunkOldPalette6
	}
	return fr.Chunk(typ, body.Bytes())
}

// Cel appends a compressed cel holding pixels, a w by h tile.
func (fr *Frame) Cel(x, y, w, h int, pixels []byte) *Frame {
	return fr.CelData(x, y, CelCompressed, w, h, Compress(pixels))
}

// CelData appends a cel with an arbitrary type and payload.
func (fr *Frame) CelData(x, y int, celType uint16, w, h int, payload []byte) *Frame {
	var body bytes.Buffer
	le(&body,
		uint16(0), // layer
		int16(x), int16(y),
		uint8(255),
		celType,
		int16(0),
		[5]byte{},
		uint16(w), uint16(h),
	)
	body.Write(payload)
	return fr.Chunk(ChunkCel, body.Bytes())
}

func (fr *Frame) Tags(tags ...Tag) *Frame {
	var body bytes.Buffer
	le(&body, uint16(len(tags)), [8]byte{})
	for _, tag := range tags {
		le(&body,
			uint16(tag.From), uint16(tag.To),
			uint8(0),  // forward
			uint16(0), // repeat
			[6]byte{},
			[3]byte{0xff, 0, 0},
			uint8(0),
		)
		pstring(&body, tag.Name)
	}
	return fr.Chunk(ChunkTags, body.Bytes())
}

// Slice appends a slice chunk with one key per rectangle. Flag bit 1 adds
// 9-patch data and bit 2 pivot data to every key.
func (fr *Frame) Slice(name string, flags uint32, keys ...image.Rectangle) *Frame {
	var body bytes.Buffer
	le(&body, uint32(len(keys)), flags, uint32(0))
	pstring(&body, name)
	for i, r := range keys {
		le(&body, uint32(i), int32(r.Min.X), int32(r.Min.Y), uint32(r.Dx()), uint32(r.Dy()))
		if flags&1 != 0 {
			le(&body, int32(1), int32(1), uint32(1), uint32(1))
		}
		if flags&2 != 0 {
			le(&body, int32(0), int32(0))
		}
	}
	return fr.Chunk(ChunkSlice, body.Bytes())
}

// Compress returns data as a zlib stream.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func pstring(buf *bytes.Buffer, s string) {
	le(buf, uint16(len(s)))
	buf.WriteString(s)
}

func le(buf *bytes.Buffer, values ...any) {
	for _, v := range values {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
}
