package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Engine(t *testing.T) {
	engineTestCases{
		// binary integer operations
		engineTest("add").withLines("1 2 +").expectStack(3),
		engineTest("mul keeps lower").withLines("1 2 3 *").expectStack(1, 6),
		engineTest("sub").withLines("3 4 -").expectStack(-1),
		engineTest("div").withLines("12 3 /").expectStack(4),
		engineTest("div truncates").withLines("8 3 /").expectStack(2),
		engineTest("div truncates toward zero").withLines("-8 3 /").expectStack(-2),
		engineTest("add wraps").withLines("32767 1 +").expectStack(-32768),
		engineTest("negative literal").withLines("-32768").expectStack(-32768),
		engineTest("literal too big").withLines("32768").
			expectOutput("?\n").expectStack().expectOK(false),

		// stack manipulation
		engineTest("dup").withLines("1 dup").expectStack(1, 1),
		engineTest("drop").withLines("1 2 drop").expectStack(1),
		engineTest("swap").withLines("1 2 swap").expectStack(2, 1),
		engineTest("over").withLines("1 2 over").expectStack(1, 2, 1),
		engineTest("rot").withLines("1 2 3 rot").expectStack(2, 3, 1),
		engineTest("rot identity").withLines("1 2 3 rot rot rot").expectStack(1, 2, 3),
		engineTest("case insensitive").withLines("1 Dup Dup dup").expectStack(1, 1, 1, 1),

		// comparison and logic
		engineTest("equal true").withLines("1 1 =").expectStack(-1),
		engineTest("equal false").withLines("1 2 =").expectStack(0),
		engineTest("less").withLines("1 2 <").expectStack(-1),
		engineTest("greater").withLines("1 2 >").expectStack(0),
		engineTest("and").withLines("-1 0 and -1 -1 and").expectStack(0, -1),
		engineTest("or").withLines("-1 0 or 0 0 or").expectStack(-1, 0),
		engineTest("and bitwise").withLines("6 3 and 6 3 or").expectStack(2, 7),
		engineTest("not true").withLines("-1 not").expectStack(0),
		engineTest("not not").withLines("10 not not").expectStack(-1),

		// output
		engineTest("print").withLines("1 2 3 . .").expectOutput("3 2").expectStack(1),
		engineTest("cr").withLines("cr cr").expectOutput("\n\n"),
		engineTest("emit").withLines("72 emit 105 emit").expectOutput("H i"),
		engineTest("emit unicode").withLines("955 emit").expectOutput("λ"),
		engineTest("emit negative").withLines("-1 emit").expectOutput("�"),
		engineTest("print string").withLines(`." Hello World"`).expectOutput("Hello World"),
		engineTest("print string collapses space").withLines(`."   a   b"`).expectOutput("a b"),
		engineTest("print string amid words").withLines(`1 . ." is one" cr`).expectOutput("1 is one\n"),
		engineTest("print around newlines").withLines(`." hello"`, "cr", `." world"`).
			expectOutput("hello\nworld"),
		engineTest("no space after cr").withLines(`." a" cr ." b"`).expectOutput("a\nb"),
		engineTest("no space after cr mid line").withLines("1 . cr 2 .").expectOutput("1\n2"),
		engineTest("spacing across lines").withLines("1 .", "2 .").expectOutput("1 2"),
		engineTest("empty line").withLines("").expectOutput("").expectOK(true),

		// definitions
		engineTest("define").withLines(": foo 1 2 ;", "foo foo").
			expectStack(1, 2, 1, 2).expectWord("FOO", "1", "2"),
		engineTest("define no effect").withLines("1", ": foo 2 ;").
			expectStack(1).expectOutput("").expectOK(true, true),
		engineTest("define late binding").withLines(": bar foo ;", ": foo 7 ;", "bar").
			expectStack(7).expectWord("BAR", "FOO"),
		engineTest("define shadows builtin").withLines(": SWAP DUP ;", "1 swap").expectStack(1, 1),
		engineTest("define shadows builtin later").withLines(": foo swap ;", ": swap dup ;", "1 foo").
			expectStack(1, 1),
		engineTest("redefine is not transitive").withLines(
			": foo 5 ;",
			": bar foo ;",
			": foo 6 ;",
			"bar foo",
		).expectStack(5, 6).expectWord("BAR", "5"),
		engineTest("redefine self").withLines(": foo 10 ;", ": foo foo 1 + ;", "foo").
			expectStack(11).expectWord("FOO", "10", "1", "+"),
		engineTest("redefine flattens one level").withLines(
			": foo 1 ;",
			": bar foo ;",
			": baz bar ;",
			": foo 2 ;",
			"baz bar foo",
		).expectStack(2, 1, 2).expectWord("BAZ", "FOO").expectWord("BAR", "1"),
		engineTest("define number").withLines(": 1 2 ;").
			expectOutput("invalid-word\n").expectOK(false).expectWords(),
		engineTest("define negative number").withLines(": -1 2 ;").
			expectOutput("invalid-word\n").expectWords(),
		engineTest("define nameless").withLines(": ;").expectOutput("invalid-word\n"),
		engineTest("define with string").withLines(`: hi ." Hi there" ;`, "hi hi").
			expectOutput("Hi there Hi there"),

		// multi-line definitions
		engineTest("multi-line").withLines(": a 1 ", " 2 3 4 ;").
			expectWord("A", "1", "2", "3", "4").expectPending(false).expectOK(true, true),
		engineTest("multi-line use").withLines(":", "foo", "1 +", ";", "2 foo").
			expectStack(3).expectPending(false),
		engineTest("multi-line open").withLines(": foo 1", "2 .").
			expectOutput("").expectStack().expectPending(true).expectWords(),
		engineTest("indented definition").withLines("  : foo 1 ;", "foo").expectStack(1),

		// conditionals
		engineTest("if true").withLines("-1 if 1 else 2 then").expectStack(1),
		engineTest("if false").withLines("0 if 1 else 2 then").expectStack(2),
		engineTest("if nonzero").withLines("5 if 1 else 2 then").expectStack(1),
		engineTest("if no else").withLines("0 if 1 then").expectStack(),
		engineTest("if then rest").withLines("1 if 2 then 3").expectStack(2, 3),
		engineTest("if without then").withLines("-1 if 1 2").expectStack(1, 2),
		engineTest("if expands words").withLines(": one 1 ;", "-1 if one else 2 then").expectStack(1),
		engineTest("if in word").withLines(": abs dup 0 < if 0 swap - then ;", "-5 abs 5 abs").
			expectStack(5, 5),
		engineTest("if nested").withLines(
			": classify dup 1 = if drop 10 else dup 2 = if drop 20 else 3 = if 30 else 40 then then then ;",
			"1 classify 2 classify 3 classify 9 classify",
		).expectStack(10, 20, 30, 40),
		engineTest("if nested in then").withLines("-1 if -1 if 1 else 2 then 3 else 4 then").
			expectStack(1, 3),
		engineTest("if underflow").withLines("if 1 then").
			expectOutput("stack-underflow\n").expectOK(false),
		engineTest("if inner failure").withLines("1 if + then 5").
			expectOutput("stack-underflow\n").expectStack(),
		engineTest("stray then").withLines("1 then 2").expectOutput("?\n").expectStack(1),

		// errors
		engineTest("underflow").withLines("+").
			expectOutput("stack-underflow\n").expectStack().expectOK(false),
		engineTest("underflow keeps stack").withLines("1 +").
			expectOutput("stack-underflow\n").expectStack(1),
		engineTest("underflow unary").withLines("drop").expectOutput("stack-underflow\n"),
		engineTest("underflow rot").withLines("1 2 rot").
			expectOutput("stack-underflow\n").expectStack(1, 2),
		engineTest("division by zero").withLines("4 0 /").
			expectOutput("division-by-zero\n").expectStack(),
		engineTest("unknown word").withLines("foo").expectOutput("?\n").expectOK(false),
		engineTest("unknown word stops line").withLines("1 foo 2").
			expectOutput("?\n").expectStack(1),
		engineTest("error after output").withLines("1 . +").expectOutput("1 stack-underflow\n"),
		engineTest("error then output").withLines("+", "1 .").
			expectOutput("stack-underflow\n1").expectOK(false, true),
		engineTest("unterminated string").withLines(`1 ." abc`).
			expectOutput("unterminated-string\n").expectStack(),
		engineTest("expansion limit").withLines(": a b ;", ": b a ;", "1 a").
			expectOutput("expansion-limit\n").expectStack(),
		engineTest("expansion limit self").withLines(": foo foo ;", "foo").
			expectOutput("expansion-limit\n"),

		// capacity
		engineTest("overflow").withMemLimit(4).withLines("1 2 3").
			expectOutput("stack-overflow\n").expectStack(1, 2).expectOK(false),
		engineTest("overflow dup").withMemLimit(4).withLines("1 2 dup").
			expectOutput("stack-overflow\n").expectStack(1, 2),
		engineTest("overflow over").withMemLimit(4).withLines("1 2 over").
			expectOutput("stack-overflow\n").expectStack(1, 2),
		engineTest("full swap").withMemLimit(4).withLines("1 2 swap").expectStack(2, 1),
		engineTest("full rot").withMemLimit(6).withLines("1 2 3 rot").expectStack(2, 3, 1),
		engineTest("odd budget").withMemLimit(5).withLines("1 2 3").
			expectOutput("stack-overflow\n").expectStack(1, 2),
		engineTest("tiny budget").withMemLimit(1).withLines("1").
			expectOutput("stack-overflow\n").expectStack(),
		engineTest("unbounded").withMemLimit(0).withLines(strings.Repeat("1 ", 1000)).
			expectDepth(1000),
	}.run(t)
}

func Test_Engine_api(t *testing.T) {
	e := New()
	var out strings.Builder

	assert.True(t, e.Eval("1 2 3", &out))
	assert.Equal(t, []int16{1, 2, 3}, e.Stack())
	assert.Equal(t, "1 2 3", e.StackString())

	st := e.Stack()
	st[0] = 99
	assert.Equal(t, []int16{1, 2, 3}, e.Stack(), "Stack must return a copy")

	assert.True(t, e.Eval(": sq dup * ;", &out))
	assert.True(t, e.Eval(": cube", &out), "buffered lines succeed")
	assert.True(t, e.Pending())
	assert.True(t, e.Eval("dup sq * ;", &out))
	assert.False(t, e.Pending())
	assert.Equal(t, []string{"CUBE", "SQ"}, e.Words())

	assert.True(t, e.Eval("cube .", &out))
	assert.Equal(t, "27", out.String())

	assert.False(t, e.Eval("nope", &out))
	assert.Equal(t, "27 ?\n", out.String())

	e.SetMemLimit(4)
	assert.False(t, e.Eval("4", &out))
	assert.Equal(t, "1 2", e.StackString())
}

func Test_Engine_writeError(t *testing.T) {
	e := New()
	w := failWriter{err: fmt.Errorf("disk full")}
	ok, err := e.EvalLine("1 2 . 3", &w)
	assert.True(t, ok, "the line itself succeeded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []int16{1, 3}, e.Stack())

	var out strings.Builder
	ok, err = e.EvalLine(".", &out)
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, "3", out.String(), "failed flush must not leave spacing state behind")
}

type engineTestCases []engineTestCase

func (ets engineTestCases) run(t *testing.T) {
	{
		var exclusive []engineTestCase
		for _, et := range ets {
			if et.exclusive {
				exclusive = append(exclusive, et)
			}
		}
		if len(exclusive) > 0 {
			ets = exclusive
		}
	}
	for _, et := range ets {
		t.Run(et.name, et.run)
	}
}

func engineTest(name string) (et engineTestCase) {
	et.name = name
	return et
}

type engineTestCase struct {
	name   string
	opts   []Option
	lines  []string
	expect []func(t *testing.T, e *Engine, res engineTestResult)

	exclusive bool
}

type engineTestResult struct {
	output string
	ok     []bool
}

func (et engineTestCase) exclusiveTest() engineTestCase {
	et.exclusive = true
	return et
}

func (et engineTestCase) withOptions(opts ...Option) engineTestCase {
	et.opts = append(et.opts, opts...)
	return et
}

func (et engineTestCase) withMemLimit(bytes uint) engineTestCase {
	return et.withOptions(WithMemLimit(bytes))
}

func (et engineTestCase) withLines(lines ...string) engineTestCase {
	et.lines = append(et.lines, lines...)
	return et
}

func (et engineTestCase) expectStack(values ...int16) engineTestCase {
	et.expect = append(et.expect, func(t *testing.T, e *Engine, _ engineTestResult) {
		if values == nil {
			values = []int16{}
		}
		assert.Equal(t, values, e.Stack(), "expected stack values")
	})
	return et
}

func (et engineTestCase) expectDepth(n int) engineTestCase {
	et.expect = append(et.expect, func(t *testing.T, e *Engine, _ engineTestResult) {
		assert.Len(t, e.Stack(), n, "expected stack depth")
	})
	return et
}

func (et engineTestCase) expectOutput(output string) engineTestCase {
	et.expect = append(et.expect, func(t *testing.T, _ *Engine, res engineTestResult) {
		assert.Equal(t, output, res.output, "expected output")
	})
	return et
}

// expectOK checks the result of each line; given a single value, only the
// last line's result is checked.
func (et engineTestCase) expectOK(oks ...bool) engineTestCase {
	et.expect = append(et.expect, func(t *testing.T, _ *Engine, res engineTestResult) {
		if len(oks) == 1 && len(res.ok) > 0 {
			assert.Equal(t, oks[0], res.ok[len(res.ok)-1], "expected last line result")
		} else {
			assert.Equal(t, oks, res.ok, "expected line results")
		}
	})
	return et
}

func (et engineTestCase) expectWord(name string, body ...string) engineTestCase {
	et.expect = append(et.expect, func(t *testing.T, e *Engine, _ engineTestResult) {
		actual, defined := e.dict.lookup(name)
		if assert.True(t, defined, "expected %v to be defined", name) {
			if body == nil {
				body = []string{}
			}
			assert.Equal(t, body, actual, "expected %v body", name)
		}
	})
	return et
}

func (et engineTestCase) expectWords(names ...string) engineTestCase {
	et.expect = append(et.expect, func(t *testing.T, e *Engine, _ engineTestResult) {
		if names == nil {
			names = []string{}
		}
		assert.Equal(t, names, e.Words(), "expected defined words")
	})
	return et
}

func (et engineTestCase) expectPending(pending bool) engineTestCase {
	et.expect = append(et.expect, func(t *testing.T, e *Engine, _ engineTestResult) {
		assert.Equal(t, pending, e.Pending(), "expected pending definition")
	})
	return et
}

func (et engineTestCase) run(t *testing.T) {
	var trace []string
	e := New(
		Options(et.opts...),
		WithLogf(func(mess string, args ...interface{}) {
			trace = append(trace, fmt.Sprintf(mess, args...))
		}),
	)

	var res engineTestResult
	var out strings.Builder
	for _, line := range et.lines {
		ok, err := e.EvalLine(line, &out)
		require.NoError(t, err, "unexpected output error")
		res.ok = append(res.ok, ok)
	}
	res.output = out.String()

	for _, expect := range et.expect {
		expect(t, e, res)
	}

	if t.Failed() {
		for _, line := range trace {
			t.Log(line)
		}
		dumpToTest(t, e)
	}
}

//// utilities

func dumpToTest(t *testing.T, e *Engine) {
	var sb strings.Builder
	engineDumper{e: e, out: &sb, compiled: true}.dump()
	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		t.Log(line)
	}
}

type failWriter struct{ err error }

func (fw *failWriter) Write(p []byte) (int, error) { return 0, fw.err }

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
