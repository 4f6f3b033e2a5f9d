package main

import (
	"strconv"
	"strings"
)

// The stack is a bounded LIFO of 16-bit cells. It knows nothing about Forth;
// operations check their own arity through need before touching it.
type stack struct {
	cells []int16

	// limit is the element capacity, with 0 meaning unbounded.
	limit int
}

// cellSize is the number of bytes in one stack cell; byte budgets are
// converted to element capacities by dividing by it.
const cellSize = 2

func (s *stack) setMemLimit(bytes uint) {
	s.limit = int(bytes / cellSize)
	if bytes != 0 && s.limit == 0 {
		s.limit = -1 // a budget smaller than one cell holds nothing
	}
}

func (s *stack) capacity() int {
	if s.limit < 0 {
		return 0
	}
	return s.limit
}

func (s *stack) bounded() bool { return s.limit != 0 }

func (s *stack) len() int { return len(s.cells) }

func (s *stack) need(n int) error {
	if len(s.cells) < n {
		return errStackUnderflow
	}
	return nil
}

func (s *stack) push(val int16) error {
	if s.bounded() && len(s.cells) >= s.capacity() {
		return errStackOverflow
	}
	s.cells = append(s.cells, val)
	return nil
}

func (s *stack) pop() (val int16) {
	i := len(s.cells) - 1
	val, s.cells = s.cells[i], s.cells[:i]
	return val
}

// peek returns the i-th value down from the top, 0 being the top.
func (s *stack) peek(i int) int16 { return s.cells[len(s.cells)-1-i] }

// removeAt removes and returns the i-th value down from the top.
func (s *stack) removeAt(i int) int16 {
	j := len(s.cells) - 1 - i
	val := s.cells[j]
	s.cells = append(s.cells[:j], s.cells[j+1:]...)
	return val
}

func (s *stack) values() []int16 {
	vals := make([]int16, len(s.cells))
	copy(vals, s.cells)
	return vals
}

func (s *stack) String() string {
	var sb strings.Builder
	for i, val := range s.cells {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(val)))
	}
	return sb.String()
}
