package main

import (
	"bytes"
	"io"
	"strconv"

	"github.com/jcorbin/forth79/internal/runeio"
)

type fragmentKind uint8

const (
	fragText fragmentKind = iota
	fragChar
	fragNewline
)

type fragment struct {
	kind fragmentKind
	text string
	r    rune
}

// output accumulates the fragments produced while running one line, and
// renders them with a single space between fragments but none around
// newlines.
//
// The spaced bit carries across flushes: it is set when the last flush ended
// on anything other than a newline, so that the next line's first fragment
// is still separated from it. Only a session that terminates a partial line
// of output for an interactive prompt resets it.
type output struct {
	frags  []fragment
	spaced bool
}

func (out *output) number(n int16) {
	out.frags = append(out.frags, fragment{kind: fragText, text: strconv.Itoa(int(n))})
}

func (out *output) char(r rune) {
	out.frags = append(out.frags, fragment{kind: fragChar, r: r})
}

func (out *output) text(s string) {
	out.frags = append(out.frags, fragment{kind: fragText, text: s})
}

func (out *output) newline() {
	out.frags = append(out.frags, fragment{kind: fragNewline})
}

func (out *output) report(err error) {
	out.text(err.Error())
	out.newline()
}

func (out *output) render(buf *bytes.Buffer) (spaced bool) {
	spaced = out.spaced
	for _, frag := range out.frags {
		if frag.kind == fragNewline {
			buf.WriteByte('\n')
			spaced = false
			continue
		}
		if spaced {
			buf.WriteByte(' ')
		}
		if frag.kind == fragChar {
			runeio.WriteRune(buf, frag.r)
		} else {
			buf.WriteString(frag.text)
		}
		spaced = true
	}
	return spaced
}

// flush writes all pending fragments to w in one write, then clears them.
// A failed write leaves the spacing state as it was before the flush.
func (out *output) flush(w io.Writer) ([]byte, error) {
	var buf bytes.Buffer
	spaced := out.render(&buf)
	out.frags = out.frags[:0]
	if buf.Len() == 0 {
		return nil, nil
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return nil, err
	}
	out.spaced = spaced
	return buf.Bytes(), nil
}
