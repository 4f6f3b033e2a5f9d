package fileinput

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/forth79/internal/runeio"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input implements sequential line reading through a Queue of one or more
// input streams. The location of the last line read is tracked to facilitate
// user feedback.
type Input struct {
	Queue []io.Reader
	Last  Location

	rr     io.RuneReader
	closer io.Closer
	scan   Location
	buf    strings.Builder
}

// ReadLine returns the next line, without its line ending, from the current
// input stream; once a stream is exhausted, reading continues with the next
// one in Queue. A final line that lacks a line ending is still returned.
// Returns io.EOF after all streams have been exhausted.
func (in *Input) ReadLine() (string, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return "", io.EOF
		}

		r, _, err := in.rr.ReadRune()
		if err == nil {
			if r == '\n' {
				return in.nextLine(), nil
			}
			in.buf.WriteRune(r)
			continue
		}

		if err != io.EOF {
			return "", fmt.Errorf("%v: %w", in.scan, err)
		}
		if in.buf.Len() > 0 {
			line := in.nextLine()
			in.closeIn()
			return line, nil
		}
		in.closeIn()
	}
}

// Location returns the location of the line last returned by ReadLine.
func (in *Input) Location() Location { return in.Last }

// Close closes the current stream and any remaining in Queue that are
// io.Closers, returning the first error encountered.
func (in *Input) Close() (err error) {
	if in.closer != nil {
		err = in.closer.Close()
		in.closer = nil
	}
	in.rr = nil
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) nextLine() string {
	line := strings.TrimSuffix(in.buf.String(), "\r")
	in.buf.Reset()
	in.Last = in.scan
	in.scan.Line++
	return line
}

func (in *Input) closeIn() {
	if in.closer != nil {
		in.closer.Close()
		in.closer = nil
	}
	in.rr = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(r)
	in.closer, _ = r.(io.Closer)
	in.scan = Location{Name: nameOf(r), Line: 1}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
