package main

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

const (
	defineOpen  = ":"
	defineClose = ";"
	printOpen   = `."`
	printClose  = `"`
)

// lineLexer splits a line into space separated pseudo-tokens; runs of spaces
// lex as a single Space token, which the tokenizer then drops.
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Space", Pattern: ` +`},
	{Name: "Word", Pattern: `[^ ]+`},
})

var wordToken = lineLexer.Symbols()["Word"]

func pseudoTokens(line string) ([]string, error) {
	lex, err := lineLexer.LexString("", line)
	if err != nil {
		return nil, err
	}
	toks, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == wordToken {
			words = append(words, tok.Value)
		}
	}
	return words, nil
}

// tokenize normalizes a line into tokens: words are upper cased, while a
// print literal opened by a lone `."` is gathered up to and including the
// first pseudo-token ending in `"`, keeping its case and joining its parts
// with single spaces.
func tokenize(line string) ([]string, error) {
	words, err := pseudoTokens(line)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		word := words[i]
		if word != printOpen {
			tokens = append(tokens, strings.ToUpper(word))
			continue
		}
		j := i + 1
		for j < len(words) && !strings.HasSuffix(words[j], printClose) {
			j++
		}
		if j >= len(words) {
			return nil, errUnterminatedString
		}
		tokens = append(tokens, strings.Join(words[i:j+1], " "))
		i = j
	}
	return tokens, nil
}

// printText extracts the text of a print literal token, stripping the
// delimiters and any surrounding space.
func printText(token string) string {
	text := strings.TrimPrefix(token, printOpen)
	text = strings.TrimSuffix(text, printClose)
	return strings.TrimSpace(text)
}
