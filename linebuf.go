package main

import "strings"

// lineBuffer accumulates the lines of a definition that spans more than one
// line; it is empty whenever no definition is open.
type lineBuffer struct {
	strings.Builder
}

func (lb *lineBuffer) open() bool { return lb.Len() > 0 }

func startsDefinition(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), defineOpen)
}

// feed offers a line to the buffer. Lines that neither start a definition
// nor continue an open one are returned as is. Otherwise the line is
// absorbed, and the whole buffered text is returned only once it tokenizes
// to end with the definition terminator.
func (lb *lineBuffer) feed(line string) (text string, ready bool) {
	if !lb.open() && !startsDefinition(line) {
		return line, true
	}
	if lb.open() {
		lb.WriteByte(' ')
	}
	lb.WriteString(line)

	tokens, err := tokenize(lb.String())
	if err != nil || len(tokens) == 0 || tokens[len(tokens)-1] != defineClose {
		return "", false
	}
	text = lb.String()
	lb.Reset()
	return text, true
}
