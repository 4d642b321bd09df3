package utils

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// PString is the raw payload of a length-prefixed string.
type PString []byte

func (s PString) String() string { return string(s) }

func (s PString) Decode(enc encoding.Encoding) string {
	buf, err := enc.NewDecoder().Bytes(s)
	if err != nil {
		return s.String()
	}
	return string(buf)
}

// UTF8 decodes s as UTF-8, replacing malformed sequences with U+FFFD.
func (s PString) UTF8() string { return s.Decode(unicode.UTF8) }
