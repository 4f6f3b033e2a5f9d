package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/forth79/internal/fileinput"
	"github.com/jcorbin/forth79/internal/flushio"
	"github.com/jcorbin/forth79/internal/panicerr"
)

type lineReader interface {
	ReadLine() (string, error)
}

type locatedReader interface {
	lineReader
	Location() fileinput.Location
}

var errOpenDefinition = errors.New("input ended inside a definition")

// session feeds lines from a reader through an engine, flushing output after
// every line.
type session struct {
	*Engine
	in  lineReader
	out flushio.WriteFlusher

	// endLines terminates any partial line of output after each input line,
	// so that an interactive prompt starts on a fresh line.
	endLines bool

	failed int
}

// Run reads and evaluates lines until the reader is exhausted, the context
// is done, or writing output fails.
func (s *session) Run(ctx context.Context) error {
	if s.endLines {
		s.out = flushio.EndLines(s.out)
	}
	err := panicerr.Recover("session", func() error {
		return s.run(ctx)
	})
	if ferr := s.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

func (s *session) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return s.locate(err)
		}

		line, err := s.in.ReadLine()
		if err == io.EOF {
			if s.Pending() {
				return fmt.Errorf("%w: %q", errOpenDefinition, s.buffer.String())
			}
			return nil
		} else if err != nil {
			return err
		}

		if err := s.evalLine(line); err != nil {
			return s.locate(err)
		}
	}
}

func (s *session) evalLine(line string) error {
	if lr, ok := s.in.(locatedReader); ok && s.tracing() {
		defer s.withLogPrefix(lr.Location().String() + " ")()
	}

	ok, err := s.EvalLine(line, s.out)
	if err != nil {
		return err
	}
	if !ok {
		s.failed++
	}
	if le, is := s.out.(*flushio.LineEnder); is {
		ended, err := le.EndLine()
		if err != nil {
			return err
		}
		if ended {
			s.Engine.out.spaced = false
		}
	}
	return s.out.Flush()
}

func (s *session) locate(err error) error {
	if lr, ok := s.in.(locatedReader); ok {
		if loc := lr.Location(); loc.Name != "" {
			return fmt.Errorf("%v: %w", loc, err)
		}
	}
	return err
}
