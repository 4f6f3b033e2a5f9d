package main

import "io"

// New creates an engine with an empty dictionary and, unless limited by an
// option, an unbounded stack.
func New(opts ...Option) *Engine {
	e := &Engine{dict: make(dictionary)}
	Options(opts...).apply(e)
	return e
}

// WithMemLimit bounds the stack to bytes/2 cells; 0 means unbounded.
func WithMemLimit(bytes uint) Option { return memLimitOption(bytes) }

// WithLogf sets a function to receive trace logging.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// SetMemLimit bounds the stack to bytes/2 cells; 0 means unbounded.
func (e *Engine) SetMemLimit(bytes uint) { e.stack.setMemLimit(bytes) }

// Eval interprets one line of input, writing any output to w. It returns
// false only if an operation or definition failed; lines absorbed into an
// open definition succeed.
func (e *Engine) Eval(line string, w io.Writer) bool {
	ok, _ := e.EvalLine(line, w)
	return ok
}

// Stack returns a copy of the stack, bottom first.
func (e *Engine) Stack() []int16 { return e.stack.values() }

// StackString renders the stack bottom first, separated by spaces.
func (e *Engine) StackString() string { return e.stack.String() }

// Words returns the names of all defined words, sorted.
func (e *Engine) Words() []string { return e.dict.names() }

// Pending returns true while a multi-line definition is open.
func (e *Engine) Pending() bool { return e.buffer.open() }
