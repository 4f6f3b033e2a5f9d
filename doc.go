/* Package main: a Forth-79 subset interpreter

Forth programs are sequences of space separated words acting on a stack of
numbers. This interpreter keeps 16-bit signed cells, and reads its program one
line at a time, running each line as soon as it is complete.

Built-in words:

	+ - * /                  binary integer arithmetic, / truncates toward 0
	DUP DROP SWAP OVER ROT   stack manipulation
	= < >                    comparison, pushing -1 for true and 0 for false
	AND OR                   bitwise conjunction and disjunction
	NOT                      -1 if the top is 0, else 0
	. EMIT CR                print a number, print a character, print a newline
	." text"                 print literal text
	IF ... ELSE ... THEN     run one of two branches based on the popped top

Any other token that parses as a 16-bit integer pushes itself; names are case
insensitive.

New words are defined by ": NAME body... ;", possibly across several lines:
once a line starts with ":", lines are collected until they end with ";".
Words expand in place wherever they are used, and may shadow built-ins.

Word references bind late, except across a redefinition: reusing a name
freezes every existing definition to the meaning that name had before, and
a new definition may refer to its own name to build on its prior meaning:

	: foo 5 ;
	: bar foo ;
	: foo foo 1 + ;
	bar foo . .

prints "6 5": bar still pushes 5, while foo now pushes 6.

Errors stop the rest of the line, reporting one of: stack-underflow,
stack-overflow, division-by-zero, invalid-word, unterminated-string,
expansion-limit, or "?" for an unknown word. The stack keeps whatever
state the line had reached.

Output items are separated by single spaces, without any space around
newlines; this spacing continues across lines.

Usage:

	forth79 [-trace] [-mem-limit BYTES] [-timeout DUR] [-dump] [-tee FILE] [-prompt STR] [FILE...]

With no files, standard input is read; when it is a terminal, interactively
with line editing, history, and word completion.
*/
package main
