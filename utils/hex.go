package utils

import (
	"encoding/hex"
	"fmt"
	"io"
	"unicode"
)

// HexDump writes length bytes of r starting at offset as a canonical
// offset | hex | ascii listing.
func HexDump(w io.Writer, r io.ReaderAt, offset, length int64) error {
	buf := make([]byte, length)
	if _, err := r.ReadAt(buf, offset); err != nil && err != io.EOF {
		return err
	}

	for i := 0; i < len(buf); i += 16 {
		end := min(i+16, len(buf))
		chunk := buf[i:end]

		if _, err := fmt.Fprintf(w, "%08x  ", offset+int64(i)); err != nil {
			return err
		}

		hexStr := hex.EncodeToString(chunk)
		for j := 0; j < len(hexStr); j += 2 {
			fmt.Fprintf(w, "%s ", hexStr[j:j+2])
		}
		for j := len(chunk); j < 16; j++ {
			fmt.Fprint(w, "   ")
		}

		fmt.Fprint(w, " |")
		for _, b := range chunk {
			if b < 0x80 && unicode.IsPrint(rune(b)) {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		if _, err := fmt.Fprintln(w, "|"); err != nil {
			return err
		}
	}
	return nil
}
