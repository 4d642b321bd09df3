package inflate

import "errors"

var (
	ErrTruncated    = errors.New("inflate: truncated bitstream")
	ErrHuffman      = errors.New("inflate: invalid huffman code lengths")
	ErrSymbol       = errors.New("inflate: invalid symbol")
	ErrRepeat       = errors.New("inflate: invalid code length repeat")
	ErrBlockType    = errors.New("inflate: reserved block type")
	ErrStoredLength = errors.New("inflate: stored block length mismatch")
	ErrDistance     = errors.New("inflate: match distance before start of output")
	ErrOverflow     = errors.New("inflate: output buffer overflow")
	ErrChecksum     = errors.New("inflate: adler32 checksum mismatch")
)
