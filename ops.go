package main

import (
	"strconv"
	"strings"
)

type opCode uint8

const (
	opUnknown opCode = iota // <INTERNAL>  unrecognized token, always fails

	opPush // n      push a literal

	opAdd // +      binary integer operation on the stack
	opSub // -      binary integer operation on the stack
	opMul // *      binary integer operation on the stack
	opDiv // /      binary integer operation on the stack

	opDup  // DUP    copy the top
	opDrop // DROP   discard the top
	opSwap // SWAP   exchange the top two
	opOver // OVER   copy the second to the top
	opRot  // ROT    bring the third to the top

	opEqual   // =      compare, pushing a truth value
	opLess    // <      compare, pushing a truth value
	opGreater // >      compare, pushing a truth value

	opAnd // AND    bitwise conjunction
	opOr  // OR     bitwise disjunction
	opNot // NOT    logical negation

	opPrint  // .      pop and output as a decimal number
	opEmit   // EMIT   pop and output as a character
	opCR     // CR     output a newline
	opString // ."     output a literal string

	opBranch // IF     pop and run one of two compiled branches

	opElse // <INTERNAL>  branch delimiter, only seen while compiling
	opThen // <INTERNAL>  branch delimiter, only seen while compiling

	opCodeMax
)

var opCodeNames = [opCodeMax]string{
	"unknown",
	"push",
	"add", "sub", "mul", "div",
	"dup", "drop", "swap", "over", "rot",
	"equal", "less", "greater",
	"and", "or", "not",
	"print", "emit", "cr", "string",
	"if",
	"else", "then",
}

// builtinOps maps the fixed built-in word set to their operation codes.
var builtinOps = map[string]opCode{
	"+": opAdd,
	"-": opSub,
	"*": opMul,
	"/": opDiv,

	"DUP":  opDup,
	"DROP": opDrop,
	"SWAP": opSwap,
	"OVER": opOver,
	"ROT":  opRot,

	"=": opEqual,
	"<": opLess,
	">": opGreater,

	"AND": opAnd,
	"OR":  opOr,
	"NOT": opNot,

	".":    opPrint,
	"EMIT": opEmit,
	"CR":   opCR,

	"IF":   opBranch,
	"ELSE": opElse,
	"THEN": opThen,
}

// An op is one compiled operation. Only opPush uses val; opString and
// opUnknown carry text; opBranch owns its two compiled branches.
type op struct {
	code opCode
	val  int16
	text string
	then []op
	els  []op
}

func (o op) String() string {
	var sb strings.Builder
	o.format(&sb)
	return sb.String()
}

func (o op) format(sb *strings.Builder) {
	sb.WriteString(opCodeNames[o.code])
	switch o.code {
	case opPush:
		sb.WriteByte('(')
		sb.WriteString(strconv.Itoa(int(o.val)))
		sb.WriteByte(')')
	case opString, opUnknown:
		sb.WriteByte('(')
		sb.WriteString(strconv.Quote(o.text))
		sb.WriteByte(')')
	case opBranch:
		formatOps(sb, o.then)
		if len(o.els) > 0 {
			sb.WriteString(" else")
			formatOps(sb, o.els)
		}
	}
}

func formatOps(sb *strings.Builder, ops []op) {
	sb.WriteString("{")
	for i, o := range ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		o.format(sb)
	}
	sb.WriteString("}")
}

// runOps applies each op in turn, stopping at the first failure.
func runOps(ops []op, s *stack, out *output) error {
	for _, o := range ops {
		if err := o.apply(s, out); err != nil {
			return err
		}
	}
	return nil
}

func (o op) apply(s *stack, out *output) error {
	switch o.code {
	case opPush:
		return s.push(o.val)

	case opAdd, opSub, opMul, opDiv,
		opEqual, opLess, opGreater,
		opAnd, opOr:
		return o.binary(s)

	case opDup:
		if err := s.need(1); err != nil {
			return err
		}
		return s.push(s.peek(0))

	case opDrop:
		if err := s.need(1); err != nil {
			return err
		}
		s.pop()
		return nil

	case opSwap:
		if err := s.need(2); err != nil {
			return err
		}
		return s.push(s.removeAt(1))

	case opOver:
		if err := s.need(2); err != nil {
			return err
		}
		return s.push(s.peek(1))

	case opRot:
		if err := s.need(3); err != nil {
			return err
		}
		return s.push(s.removeAt(2))

	case opNot:
		if err := s.need(1); err != nil {
			return err
		}
		return s.push(truth(s.pop() == 0))

	case opPrint:
		if err := s.need(1); err != nil {
			return err
		}
		out.number(s.pop())
		return nil

	case opEmit:
		if err := s.need(1); err != nil {
			return err
		}
		out.char(rune(s.pop()))
		return nil

	case opCR:
		out.newline()
		return nil

	case opString:
		out.text(o.text)
		return nil

	case opBranch:
		if err := s.need(1); err != nil {
			return err
		}
		branch := o.els
		if s.pop() != 0 {
			branch = o.then
		}
		return runOps(branch, s, out)

	default:
		return unknownWordError(o.text)
	}
}

func (o op) binary(s *stack) error {
	if err := s.need(2); err != nil {
		return err
	}
	b, a := s.pop(), s.pop()
	var r int16
	switch o.code {
	case opAdd:
		r = a + b
	case opSub:
		r = a - b
	case opMul:
		r = a * b
	case opDiv:
		if b == 0 {
			return errDivisionByZero
		}
		r = a / b
	case opEqual:
		r = truth(a == b)
	case opLess:
		r = truth(a < b)
	case opGreater:
		r = truth(a > b)
	case opAnd:
		r = a & b
	case opOr:
		r = a | b
	}
	return s.push(r)
}

// truth encodes a Go bool with the Forth convention: -1 true, 0 false.
func truth(b bool) int16 {
	if b {
		return -1
	}
	return 0
}
