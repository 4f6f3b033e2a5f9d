package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/forth79/internal/runeio"
)

// Engine interprets Forth one line at a time. It owns all of its state, so
// independent sessions each need their own Engine; none of its methods are
// safe for concurrent use.
type Engine struct {
	logging

	stack  stack
	dict   dictionary
	buffer lineBuffer
	out    output
}

// EvalLine is like Eval, but also returns any error from writing output to
// w. Such an error only aborts writing the line's output: the line has
// already taken effect.
func (e *Engine) EvalLine(line string, w io.Writer) (bool, error) {
	e.logf(">", "%q", line)

	text, ready := e.buffer.feed(line)
	if !ready {
		e.logf("+", "buffering definition %q", e.buffer.String())
		return true, nil
	}

	ok := e.eval(text)

	if e.tracing() && len(e.out.frags) > 0 {
		e.logf("<", "%v", e.describeOutput())
	}
	if _, err := e.out.flush(w); err != nil {
		e.logf("!", "output error: %v", err)
		return ok, fmt.Errorf("failed to write output: %w", err)
	}
	return ok, nil
}

func (e *Engine) eval(text string) bool {
	tokens, err := tokenize(text)
	if err != nil {
		return e.fail(err)
	}

	if len(tokens) > 0 && tokens[0] == defineOpen {
		name, err := e.dict.define(tokens)
		if err != nil {
			return e.fail(err)
		}
		e.logf(":", "%v -> %q", name, e.dict[name])
		return true
	}

	ops, err := e.dict.compile(tokens)
	if err != nil {
		return e.fail(err)
	}
	if e.tracing() {
		var sb strings.Builder
		formatOps(&sb, ops)
		e.logf("=", "%v", sb.String())
	}

	if err := runOps(ops, &e.stack, &e.out); err != nil {
		return e.fail(err)
	}
	e.logf("=", "stack: [%v]", &e.stack)
	return true
}

func (e *Engine) fail(err error) bool {
	e.logf("!", "%+v stack: [%v]", err, &e.stack)
	e.out.report(err)
	return false
}

func (e *Engine) describeOutput() string {
	parts := make([]string, len(e.out.frags))
	for i, frag := range e.out.frags {
		switch frag.kind {
		case fragNewline:
			parts[i] = runeio.Describe('\n')
		case fragChar:
			parts[i] = runeio.Describe(frag.r)
		default:
			parts[i] = fmt.Sprintf("%q", frag.text)
		}
	}
	return strings.Join(parts, " ")
}
