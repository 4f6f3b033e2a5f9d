package main

import (
	"fmt"
	"io"
	"strings"
)

type engineDumper struct {
	e   *Engine
	out io.Writer

	// compiled additionally shows each word's compiled form
	compiled bool
}

func (dump engineDumper) dump() {
	fmt.Fprintf(dump.out, "# Engine Dump\n")
	fmt.Fprintf(dump.out, "  stack: [%v]\n", &dump.e.stack)
	if dump.e.stack.bounded() {
		fmt.Fprintf(dump.out, "  capacity: %v\n", dump.e.stack.capacity())
	} else {
		fmt.Fprintf(dump.out, "  capacity: unbounded\n")
	}
	if dump.e.buffer.open() {
		fmt.Fprintf(dump.out, "  pending: %q\n", dump.e.buffer.String())
	}
	dump.dumpDict()
}

func (dump engineDumper) dumpDict() {
	names := dump.e.dict.names()
	fmt.Fprintf(dump.out, "# Dictionary (%v words)\n", len(names))
	var sb strings.Builder
	for _, name := range names {
		body := dump.e.dict[name]
		sb.WriteString("  : ")
		sb.WriteString(name)
		for _, token := range body {
			sb.WriteByte(' ')
			sb.WriteString(token)
		}
		sb.WriteString(" ;\n")
		if dump.compiled {
			sb.WriteString("    ")
			if ops, err := dump.e.dict.compile(body); err != nil {
				sb.WriteString(err.Error())
			} else {
				formatOps(&sb, ops)
			}
			sb.WriteByte('\n')
		}
		io.WriteString(dump.out, sb.String())
		sb.Reset()
	}
}
