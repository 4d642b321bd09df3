package ase

import (
	"fmt"
	"strings"

	"github.com/cam-per/aseload/internal/oops"
)

// Fault is the common part of every load error. Frame is -1 and Chunk is 0
// when the failure happened outside a frame or chunk.
type Fault struct {
	Frame   int
	Chunk   ChunkType
	Message string
	Wrapped error
	Stack   oops.CallStack
}

func (f *Fault) Unwrap() error               { return f.Wrapped }
func (f *Fault) CallStack() oops.CallStack { return f.Stack }

func (f *Fault) describe(kind string) string {
	var b strings.Builder
	b.WriteString("ase: ")
	b.WriteString(kind)
	if f.Frame >= 0 {
		fmt.Fprintf(&b, ": frame %d", f.Frame)
	}
	if f.Chunk != 0 {
		fmt.Fprintf(&b, ": %s chunk", f.Chunk)
	}
	b.WriteString(": ")
	b.WriteString(f.Message)
	if f.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(f.Wrapped.Error())
	}
	return b.String()
}

// StructuralError reports a malformed file: bad magic numbers or sizes that
// do not fit the stream.
type StructuralError struct{ Fault }

func (e *StructuralError) Error() string { return e.describe("structural error") }

// UnsupportedFeatureError reports valid content this loader does not handle.
type UnsupportedFeatureError struct{ Fault }

func (e *UnsupportedFeatureError) Error() string { return e.describe("unsupported") }

// CodecError reports a cel whose compressed pixels could not be decoded.
type CodecError struct{ Fault }

func (e *CodecError) Error() string { return e.describe("codec error") }

// IOError reports that the input could not be read.
type IOError struct{ Fault }

func (e *IOError) Error() string { return e.describe("i/o error") }

func newIOError(err error, name string) error {
	return &IOError{Fault{Frame: -1, Message: "reading " + name, Wrapped: err, Stack: oops.Trace()}}
}
