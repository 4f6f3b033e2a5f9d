package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

const continuePrompt = "... "

// replInput reads lines from an interactive terminal, prompting with the
// current stack, or with a continuation prompt while a definition is open.
type replInput struct {
	rl     *readline.Instance
	e      *Engine
	prompt string
}

func newREPL(e *Engine, prompt string) (*replInput, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		AutoComplete:    wordCompleter{e},
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		return nil, err
	}
	return &replInput{rl: rl, e: e, prompt: prompt}, nil
}

func (r *replInput) ReadLine() (string, error) {
	if r.e.Pending() {
		r.rl.SetPrompt(continuePrompt)
	} else {
		r.rl.SetPrompt(stackPrompt(r.e, r.prompt))
	}
	for {
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return "", io.EOF
			}
			continue
		}
		return line, err
	}
}

func (r *replInput) Close() error { return r.rl.Close() }

func stackPrompt(e *Engine, prompt string) string {
	return fmt.Sprintf("[%v] %v", e.StackString(), prompt)
}

// wordCompleter completes the word under the cursor against the built-in
// words and the engine's dictionary, following the case already typed.
type wordCompleter struct{ e *Engine }

func (wc wordCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	start := pos
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	typed := string(line[start:pos])
	lower := typed != "" && typed == strings.ToLower(typed)
	prefix := strings.ToUpper(typed)
	for _, word := range wc.words() {
		if len(word) <= len(prefix) || !strings.HasPrefix(word, prefix) {
			continue
		}
		rest := word[len(prefix):]
		if lower {
			rest = strings.ToLower(rest)
		}
		newLine = append(newLine, []rune(rest+" "))
	}
	return newLine, pos - start
}

func (wc wordCompleter) words() []string {
	seen := make(map[string]struct{}, len(builtinOps))
	words := make([]string, 0, len(builtinOps))
	add := func(word string) {
		if _, dup := seen[word]; !dup {
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}
	for word := range builtinOps {
		add(word)
	}
	for _, word := range wc.e.Words() {
		add(word)
	}
	sort.Strings(words)
	return words
}
