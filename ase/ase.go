// Package ase loads Aseprite sprite files into a single-row spritesheet.
package ase

import (
	"encoding/binary"
	"fmt"
)

const (
	FileMagic  uint16 = 0xA5E0
	FrameMagic uint16 = 0xF1FA

	DepthIndexed uint16 = 8
	DepthRGBA    uint16 = 32

	celCompressed uint16 = 2
)

type ChunkType uint16

const (
	ChunkOldPalette    ChunkType = 0x0004
	ChunkOldPalette6   ChunkType = 0x0011
	ChunkLayer         ChunkType = 0x2004
	ChunkCel           ChunkType = 0x2005
	ChunkCelExtra      ChunkType = 0x2006
	ChunkColorProfile  ChunkType = 0x2007
	ChunkExternalFiles ChunkType = 0x2008
	ChunkMask          ChunkType = 0x2016
	ChunkPath          ChunkType = 0x2017
	ChunkTags          ChunkType = 0x2018
	ChunkPalette       ChunkType = 0x2019
	ChunkUserData      ChunkType = 0x2020
	ChunkSlice         ChunkType = 0x2022
	ChunkTileset       ChunkType = 0x2023
)

var chunkNames = map[ChunkType]string{
	ChunkOldPalette:    "old palette",
	ChunkOldPalette6:   "old palette (6-bit)",
	ChunkLayer:         "layer",
	ChunkCel:           "cel",
	ChunkCelExtra:      "cel extra",
	ChunkColorProfile:  "color profile",
	ChunkExternalFiles: "external files",
	ChunkMask:          "mask",
	ChunkPath:          "path",
	ChunkTags:          "tags",
	ChunkPalette:       "palette",
	ChunkUserData:      "user data",
	ChunkSlice:         "slice",
	ChunkTileset:       "tileset",
}

func (t ChunkType) String() string {
	if name, ok := chunkNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint16(t))
}

// Header is the fixed 128-byte file header.
type Header struct {
	FileSize    uint32
	Magic       uint16
	Frames      uint16
	Width       uint16
	Height      uint16
	ColorDepth  uint16
	Flags       uint32
	Speed       uint16 // deprecated, use frame durations
	_           [8]byte
	Transparent uint8 // palette index of the transparent color, indexed sprites only
	_           [3]byte
	NumColors   uint16
	PixelWidth  uint8
	PixelHeight uint8
	GridX       int16
	GridY       int16
	GridWidth   uint16
	GridHeight  uint16
	_           [84]byte
}

func (h *Header) BytesPerPixel() int { return int(h.ColorDepth) / 8 }

type frameHeader struct {
	Bytes     uint32
	Magic     uint16
	OldChunks uint16
	Duration  uint16 // milliseconds
	_         [2]byte
	Chunks    uint32 // 0 means use OldChunks
}

func (fh *frameHeader) numChunks() int {
	if fh.Chunks != 0 {
		return int(fh.Chunks)
	}
	return int(fh.OldChunks)
}

type chunkHeader struct {
	Size uint32 // includes this header
	Type ChunkType
}

type celHeader struct {
	Layer   uint16
	X, Y    int16
	Opacity uint8
	Type    uint16
	Z       int16
	_       [5]byte
	Width   uint16
	Height  uint16
}

type tagsHeader struct {
	Count uint16
	_     [8]byte
}

type tagHeader struct {
	From, To  uint16
	Direction uint8
	Repeat    uint16
	_         [6]byte
	Color     [3]byte
	_         byte
}

type sliceHeader struct {
	Keys  uint32
	Flags uint32
	_     uint32
}

type sliceKey struct {
	Frame  uint32
	X, Y   int32
	Width  uint32
	Height uint32
}

var (
	headerSize      = binary.Size(Header{})
	frameHeaderSize = binary.Size(frameHeader{})
	chunkHeaderSize = binary.Size(chunkHeader{})
	celHeaderSize   = binary.Size(celHeader{})
)
