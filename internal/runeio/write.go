package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteRune writes a single rune to w in UTF-8:
// - ASCII runes are written directly as bytes, through io.ByteWriter if possible
// - negative, surrogate, and out of range runes are written as utf8.RuneError
// - all other runes are written through WriteRune or WriteString if available
func WriteRune(w io.Writer, r rune) (n int, err error) {
	type runeWriter interface {
		WriteRune(r rune) (n int, err error)
	}
	if r >= 0 && r < utf8.RuneSelf {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	if rw, ok := w.(runeWriter); ok {
		return rw.WriteRune(r)
	}
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(string(r))
	}
	var buf [utf8.UTFMax]byte
	return w.Write(buf[:utf8.EncodeRune(buf[:], r)])
}
