package main

import (
	"strconv"
	"strings"
)

// maxExpansions bounds how many word references a single line may expand,
// catching words that (mutually) refer to themselves.
const maxExpansions = 1 << 12

// compiler turns a token sequence into operations, expanding words against
// the dictionary as it stands at compile time.
type compiler struct {
	dict       dictionary
	expansions int
}

func (dict dictionary) compile(tokens []string) ([]op, error) {
	c := compiler{dict: dict}
	return c.compile(tokens)
}

func (c *compiler) compile(tokens []string) (ops []op, err error) {
	for i := 0; i < len(tokens); {
		token := tokens[i]

		// words take priority over builtins, and expand in place
		if body, defined := c.dict.lookup(token); defined {
			if c.expansions++; c.expansions > maxExpansions {
				return nil, errExpansionLimit
			}
			tokens = splice(tokens, i, body)
			continue
		}

		if code := builtinOps[token]; code == opBranch {
			then, els, n := branches(tokens[i+1:])
			o := op{code: opBranch}
			if o.then, err = c.compile(then); err != nil {
				return nil, err
			}
			if o.els, err = c.compile(els); err != nil {
				return nil, err
			}
			ops = append(ops, o)
			i += 1 + n
			continue
		}

		ops = append(ops, compileToken(token))
		i++
	}
	return ops, nil
}

// splice returns a new token slice with the i-th token replaced by body;
// body and the original tokens are not modified.
func splice(tokens []string, i int, body []string) []string {
	res := make([]string, 0, len(tokens)-1+len(body))
	res = append(res, tokens[:i]...)
	res = append(res, body...)
	res = append(res, tokens[i+1:]...)
	return res
}

// branches splits the tokens following an IF into its then and else parts,
// also returning how many tokens were used, including any closing THEN.
// A missing THEN extends the branch to the end of the tokens.
func branches(tokens []string) (then, els []string, n int) {
	depth, elseAt := 0, -1
	split := func(end int) ([]string, []string) {
		if elseAt < 0 {
			return tokens[:end], nil
		}
		return tokens[:elseAt], tokens[elseAt+1 : end]
	}
	for i, token := range tokens {
		switch builtinOps[token] {
		case opBranch:
			depth++
		case opElse:
			if depth == 0 && elseAt < 0 {
				elseAt = i
			}
		case opThen:
			if depth == 0 {
				then, els = split(i)
				return then, els, i + 1
			}
			depth--
		}
	}
	then, els = split(len(tokens))
	return then, els, len(tokens)
}

func compileToken(token string) op {
	switch code, builtin := builtinOps[token]; {
	case builtin && code != opElse && code != opThen:
		return op{code: code}
	case builtin:
		// an unmatched delimiter
		return op{code: opUnknown, text: token}
	}
	if n, err := strconv.ParseInt(token, 10, 16); err == nil {
		return op{code: opPush, val: int16(n)}
	}
	if strings.HasPrefix(token, printOpen) {
		return op{code: opString, text: printText(token)}
	}
	return op{code: opUnknown, text: token}
}
