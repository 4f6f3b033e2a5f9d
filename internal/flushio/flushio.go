// Package flushio provides flushable writers, fans writes out across
// several of them, and terminates partial output lines for interactive use.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

var discardWriteFlusher WriteFlusher = nopFlusher{io.Discard}

// NewWriteFlusher creates a new flushable writer: if the given writer is a
// buffer, a wrapping with a noop Flush is returned; otherwise, unless the
// original writer is already a WriteFlusher, a new bufio.Writer is returned.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == nil || w == io.Discard {
		return discardWriteFlusher
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// WriteFlushers combines any number of WriteFlusher-s into a single one that
// will write into and flush all of them; nil elements are skipped.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	switch wfs := appendWriteFlusher(nil, wfs...); len(wfs) {
	case 0:
		return discardWriteFlusher
	case 1:
		return wfs[0]
	default:
		return wfs
	}
}

type writeFlushers []WriteFlusher

func (wfs writeFlushers) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs writeFlushers) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

func appendWriteFlusher(all writeFlushers, some ...WriteFlusher) writeFlushers {
	for _, one := range some {
		if many, ok := one.(writeFlushers); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}

// LineEnder wraps a WriteFlusher, remembering the last byte written through
// it, so that a partial line of output can be terminated on demand; an
// interactive prompt uses this to start on a fresh line.
type LineEnder struct {
	WriteFlusher
	last byte
}

// EndLines wraps wf in a LineEnder, unless it already is one.
func EndLines(wf WriteFlusher) *LineEnder {
	if le, is := wf.(*LineEnder); is {
		return le
	}
	return &LineEnder{WriteFlusher: NewWriteFlusher(wf)}
}

func (le *LineEnder) Write(p []byte) (int, error) {
	n, err := le.WriteFlusher.Write(p)
	if n > 0 {
		le.last = p[n-1]
	}
	return n, err
}

// EndLine writes a newline if anything has been written since the last
// one, returning whether it did.
func (le *LineEnder) EndLine() (bool, error) {
	if le.last == 0 || le.last == '\n' {
		return false, nil
	}
	if _, err := le.Write([]byte{'\n'}); err != nil {
		return false, err
	}
	return true, nil
}
