package oops

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tracedError struct{ stack CallStack }

func (e *tracedError) Error() string         { return "traced" }
func (e *tracedError) CallStack() CallStack { return e.stack }

func TestTraceStartsAtCaller(t *testing.T) {
	trace := Trace()
	require.NotEmpty(t, trace)
	assert.True(t, strings.HasSuffix(trace[0].Function, "TestTraceStartsAtCaller"), trace[0].Function)
}

func TestZerologStackMarshaler(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &tracedError{stack: Trace()})
	stack, ok := ZerologStackMarshaler(err).(CallStack)
	require.True(t, ok)
	assert.NotEmpty(t, stack)

	assert.Nil(t, ZerologStackMarshaler(errors.New("plain")))

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Error().Array("stack", stack).Msg("boom")
	assert.Contains(t, buf.String(), `"function":`)
}
