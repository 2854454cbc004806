package pattern

// PatternAnd matches e iff every pattern in ps matches e. The combined
// path is always [e]; And contributes no navigation of its own.
func PatternAnd(ps ...Pattern) Pattern {
	return Pattern{Kind: KindAnd, operands: ps}
}

// PatternOr matches e iff any pattern in ps matches e, returning the
// paths of every alternative that matches, earlier-declared alternatives'
// paths first (paths reached by more than one alternative appear once).
func PatternOr(ps ...Pattern) Pattern {
	return Pattern{Kind: KindOr, operands: ps}
}

// PatternNot matches e with path [e] iff inner has no matching paths at
// e. Not is scoped strictly to inner's own matches: Not(Assertions(Any))
// means "no assertion matches", not "nothing reachable from e matches".
func PatternNot(inner Pattern) Pattern {
	return Pattern{Kind: KindNot, inner: &inner}
}

// PatternSequence matches P1 · P2 · … · Pn: P1 is evaluated at e, then
// each subsequent pattern is evaluated at the envelope the previous
// pattern's path ended at, with the tails appended (joining element not
// duplicated).
func PatternSequence(ps ...Pattern) Pattern {
	return Pattern{Kind: KindSequence, operands: ps}
}

// PatternRepeat matches inner applied between lo and hi times inclusive
// (hi may be Unbounded), using mode to choose how repetitions are tried
// and backtracked. Possessive behaves exactly like Greedy: it still gives
// back iterations when a later part of the pattern needs them.
func PatternRepeat(inner Pattern, lo, hi int, mode Greediness) (Pattern, error) {
	if lo < 0 {
		return Pattern{}, constructionErrorf("Repeat", "lo %d must be >= 0", lo)
	}
	if hi != Unbounded && hi < lo {
		return Pattern{}, constructionErrorf("Repeat", "hi %d < lo %d", hi, lo)
	}
	return Pattern{Kind: KindRepeat, inner: &inner, repeatLo: lo, repeatHi: hi, repeatMode: mode}, nil
}

// PatternSearch matches any descendant x of e (along the subject,
// assertion, predicate, object and wrapped axes, visited depth-first
// pre-order, e included) for which inner matches x.
func PatternSearch(inner Pattern) Pattern {
	return Pattern{Kind: KindSearch, inner: &inner}
}
