package main

import (
	"errors"
	"fmt"
)

// Each error's text is exactly what gets reported to the output stream.
var (
	errStackUnderflow     = errors.New("stack-underflow")
	errStackOverflow      = errors.New("stack-overflow")
	errDivisionByZero     = errors.New("division-by-zero")
	errInvalidWord        = errors.New("invalid-word")
	errUnknownWord        = errors.New("?")
	errUnterminatedString = errors.New("unterminated-string")
	errExpansionLimit     = errors.New("expansion-limit")
)

type unknownWordError string

func (word unknownWordError) Error() string        { return errUnknownWord.Error() }
func (word unknownWordError) Is(target error) bool { return target == errUnknownWord }

// Format renders the offending word under %+v, for trace logs.
func (word unknownWordError) Format(f fmt.State, c rune) {
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "unknown word %q", string(word))
		return
	}
	fmt.Fprint(f, errUnknownWord.Error())
}
