package main

import (
	"fmt"
	"sort"

	"github.com/blockchaincommons/bc-envelope-pattern-go/pattern"
	"github.com/blockchaincommons/bc-envelope-pattern-go/registry"
)

// builtinPatterns names a handful of representative patterns so `envpat
// run` has something to point at without embedding a pattern-literal
// parser, which is out of scope for both the core engine and this CLI
// (see the project's pattern-syntax Non-goal).
var builtinPatterns = map[string]func() pattern.Pattern{
	"any": pattern.PatternAny,

	"any-text": pattern.PatternText,

	"any-node": pattern.PatternNodeAny,

	"is-a-assertion": func() pattern.Pattern {
		return pattern.PatternAssertionsWithPredicate(
			pattern.PatternKnownValueNamed(registry.DefaultKnownValues(), "isA"),
		)
	},

	"search-text": func() pattern.Pattern {
		return pattern.PatternSearch(pattern.PatternText())
	},

	"obscured-anywhere": func() pattern.Pattern {
		return pattern.PatternSearch(pattern.PatternObscuredAny())
	},
}

// resolvePattern looks up a named built-in pattern.
func resolvePattern(name string) (pattern.Pattern, error) {
	ctor, ok := builtinPatterns[name]
	if !ok {
		return pattern.Pattern{}, fmt.Errorf("unknown pattern %q (known: %v)", name, patternNames())
	}
	return ctor(), nil
}

func patternNames() []string {
	names := make([]string, 0, len(builtinPatterns))
	for n := range builtinPatterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
