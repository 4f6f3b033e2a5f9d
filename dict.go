package main

import (
	"sort"
	"strconv"
)

// The dictionary maps upper cased word names to their bodies. Bodies hold
// literal tokens and the names of other words; those names stay symbolic
// until parse time, except when a redefinition freezes them.
type dictionary map[string][]string

func (dict dictionary) lookup(name string) ([]string, bool) {
	body, defined := dict[name]
	return body, defined
}

func (dict dictionary) names() []string {
	names := make([]string, 0, len(dict))
	for name := range dict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// define processes the tokens of a complete definition: ": name body... ;".
//
// Reusing a name first flattens every entry one level against the prior
// dictionary, so that words referring to the old meaning keep it. Then any
// reference to the name in its own new body is replaced by its old body.
func (dict dictionary) define(tokens []string) (name string, err error) {
	if len(tokens) < 3 || tokens[0] != defineOpen || tokens[len(tokens)-1] != defineClose {
		return "", errInvalidWord
	}
	name = tokens[1]
	if _, err := strconv.ParseInt(name, 10, 64); err == nil {
		return name, errInvalidWord
	}

	if _, defined := dict[name]; defined {
		dict.flatten()
	}

	old, redefined := dict[name]
	src := tokens[2 : len(tokens)-1]
	body := make([]string, 0, len(src))
	for _, token := range src {
		if token == name && redefined {
			body = append(body, old...)
		} else {
			body = append(body, token)
		}
	}
	dict[name] = body
	return name, nil
}

// flatten substitutes, in every body, each token naming a word with that
// word's body. Substitution sources are all taken from a snapshot made
// before any entry changes, and are not themselves expanded further.
func (dict dictionary) flatten() {
	prior := make(dictionary, len(dict))
	for name, body := range dict {
		prior[name] = body
	}
	for name, body := range prior {
		flat := make([]string, 0, len(body))
		for _, token := range body {
			if sub, defined := prior[token]; defined {
				flat = append(flat, sub...)
			} else {
				flat = append(flat, token)
			}
		}
		dict[name] = flat
	}
}
