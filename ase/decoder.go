package ase

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/cam-per/aseload/internal/oops"
)

// Options control a single load.
type Options struct {
	// FlipVertically stores the atlas bottom row first.
	FlipVertically bool
	// SkipChecksum accepts cels whose Adler-32 trailer does not match.
	SkipChecksum bool
	// Logger receives debug events; nil disables logging.
	Logger *zerolog.Logger
}

const maxAtlasBytes = 1 << 30

type decoder struct {
	data   []byte
	opts   Options
	log    zerolog.Logger
	header Header
	sprite *Sprite
	tile   []byte

	durations  []time.Duration
	frame      int
	chunk      ChunkType
	newPalette bool
}

type visitFunc func(offset int, typ ChunkType, body []byte) error

func newDecoder(data []byte, opts Options) *decoder {
	decoder := &decoder{
		data:  data,
		opts:  opts,
		log:   zerolog.Nop(),
		frame: -1,
	}
	if opts.Logger != nil {
		decoder.log = *opts.Logger
	}
	return decoder
}

// Load decodes a complete sprite file held in data. On failure no partial
// sprite is returned.
func Load(data []byte, opts Options) (*Sprite, error) {
	decoder := newDecoder(data, opts)
	if err := decoder.decode(); err != nil {
		decoder.log.Debug().Err(err).Msg("load failed")
		return nil, err
	}
	return decoder.sprite, nil
}

// Read reads r to the end and decodes it.
func Read(r io.Reader, opts Options) (*Sprite, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, newIOError(err, "sprite stream")
	}
	return Load(data, opts)
}

func LoadFile(path string, opts Options) (*Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOError(err, path)
	}
	return Load(data, opts)
}

func LoadFS(fsys fs.FS, name string, opts Options) (*Sprite, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, newIOError(err, name)
	}
	return Load(data, opts)
}

// ChunkInfo locates one chunk inside a file. Offset is the position of the
// chunk header; Size includes it.
type ChunkInfo struct {
	Frame  int
	Offset int
	Size   int
	Type   ChunkType
}

// Chunks walks the frame and chunk structure of data without decoding any
// chunk contents.
func Chunks(data []byte) ([]ChunkInfo, error) {
	decoder := newDecoder(data, Options{})
	if err := decoder.readHeader(); err != nil {
		return nil, err
	}

	var chunks []ChunkInfo
	err := decoder.walk(func(offset int, typ ChunkType, body []byte) error {
		chunks = append(chunks, ChunkInfo{
			Frame:  decoder.frame,
			Offset: offset,
			Size:   len(body) + chunkHeaderSize,
			Type:   typ,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

func (decoder *decoder) decode() error {
	if err := decoder.readHeader(); err != nil {
		return err
	}

	h := &decoder.header
	if h.ColorDepth != DepthIndexed && h.ColorDepth != DepthRGBA {
		return decoder.unsupported(nil, "color depth %d, only 8 (indexed) and 32 (RGBA) are supported", h.ColorDepth)
	}

	atlas := int64(h.Width) * int64(h.Height) * int64(h.Frames) * int64(h.BytesPerPixel())
	if atlas > maxAtlasBytes {
		return decoder.unsupported(nil, "atlas of %d bytes exceeds the %d-byte limit", atlas, int64(maxAtlasBytes))
	}

	decoder.sprite = newSprite(h)
	if err := decoder.walk(decoder.decodeChunk); err != nil {
		return err
	}
	decoder.sprite.Durations = decoder.durations

	if decoder.opts.FlipVertically {
		decoder.sprite.flipVertically()
	}
	return nil
}

func (decoder *decoder) readHeader() error {
	if len(decoder.data) < headerSize {
		return decoder.structural(nil, "file is %d bytes, shorter than the %d-byte header", len(decoder.data), headerSize)
	}
	if err := binary.Read(bytes.NewReader(decoder.data[:headerSize]), binary.LittleEndian, &decoder.header); err != nil {
		return decoder.structural(err, "reading header")
	}

	h := &decoder.header
	if h.Magic != FileMagic {
		return decoder.structural(nil, "bad file magic 0x%04X", h.Magic)
	}

	decoder.log.Debug().
		Uint32("file_size", h.FileSize).
		Uint16("frames", h.Frames).
		Uint16("width", h.Width).
		Uint16("height", h.Height).
		Uint16("depth", h.ColorDepth).
		Msg("header")
	return nil
}

func (decoder *decoder) walk(visit visitFunc) error {
	offset := headerSize
	for i := 0; i < int(decoder.header.Frames); i++ {
		decoder.frame = i
		next, err := decoder.walkFrame(offset, visit)
		if err != nil {
			return err
		}
		offset = next
	}
	decoder.frame = -1
	return nil
}

func (decoder *decoder) walkFrame(offset int, visit visitFunc) (int, error) {
	data := decoder.data
	if offset+frameHeaderSize > len(data) {
		return 0, decoder.structural(nil, "frame header at byte %d runs past end of file", offset)
	}

	var fh frameHeader
	if err := binary.Read(bytes.NewReader(data[offset:offset+frameHeaderSize]), binary.LittleEndian, &fh); err != nil {
		return 0, decoder.structural(err, "reading frame header")
	}
	if fh.Magic != FrameMagic {
		return 0, decoder.structural(nil, "bad frame magic 0x%04X", fh.Magic)
	}
	end := offset + int(fh.Bytes)
	if int(fh.Bytes) < frameHeaderSize || end > len(data) {
		return 0, decoder.structural(nil, "frame length %d at byte %d does not fit the file", fh.Bytes, offset)
	}

	decoder.durations = append(decoder.durations, time.Duration(fh.Duration)*time.Millisecond)

	numChunks := fh.numChunks()
	decoder.log.Debug().
		Int("frame", decoder.frame).
		Int("chunks", numChunks).
		Uint16("duration_ms", fh.Duration).
		Msg("frame")

	pos := offset + frameHeaderSize
	for j := 0; j < numChunks; j++ {
		if pos+chunkHeaderSize > end {
			return 0, decoder.structural(nil, "chunk %d of %d starts past end of frame", j, numChunks)
		}

		var ch chunkHeader
		if err := binary.Read(bytes.NewReader(data[pos:end]), binary.LittleEndian, &ch); err != nil {
			return 0, decoder.structural(err, "reading chunk header")
		}
		decoder.chunk = ch.Type

		size := int(ch.Size)
		if size < chunkHeaderSize || pos+size > end {
			return 0, decoder.structural(nil, "chunk size %d at byte %d does not fit the frame", ch.Size, pos)
		}
		if err := visit(pos, ch.Type, data[pos+chunkHeaderSize:pos+size]); err != nil {
			return 0, err
		}

		decoder.chunk = 0
		pos += size
	}
	return end, nil
}

func (decoder *decoder) fault(err error, format string, args ...any) Fault {
	return Fault{
		Frame:   decoder.frame,
		Chunk:   decoder.chunk,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
		Stack:   oops.Trace(),
	}
}

func (decoder *decoder) structural(err error, format string, args ...any) error {
	return &StructuralError{decoder.fault(err, format, args...)}
}

func (decoder *decoder) unsupported(err error, format string, args ...any) error {
	return &UnsupportedFeatureError{decoder.fault(err, format, args...)}
}

func (decoder *decoder) codec(err error, format string, args ...any) error {
	return &CodecError{decoder.fault(err, format, args...)}
}
