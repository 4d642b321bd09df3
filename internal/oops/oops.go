// Package oops captures call stacks for errors and hands them to zerolog.
package oops

import (
	"errors"

	"github.com/go-stack/stack"
	"github.com/rs/zerolog"
)

type CallStack []StackFrame

func (s CallStack) MarshalZerologArray(a *zerolog.Array) {
	for _, frame := range s {
		a.Object(frame)
	}
}

type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func (f StackFrame) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("file", f.File).
		Int("line", f.Line).
		Str("function", f.Function)
}

// Carrier is implemented by errors that recorded where they were created.
type Carrier interface {
	CallStack() CallStack
}

// ZerologStackMarshaler is meant for zerolog.ErrorStackMarshaler.
var ZerologStackMarshaler = func(err error) interface{} {
	var carrier Carrier
	if errors.As(err, &carrier) {
		return carrier.CallStack()
	}
	return nil
}

// Trace returns the stack of the caller, runtime frames trimmed.
func Trace() CallStack {
	trace := stack.Trace().TrimRuntime()
	if len(trace) > 0 {
		trace = trace[1:]
	}
	frames := make(CallStack, len(trace))
	for i, call := range trace {
		callFrame := call.Frame()
		frames[i] = StackFrame{
			File:     callFrame.File,
			Line:     callFrame.Line,
			Function: callFrame.Function,
		}
	}
	return frames
}
