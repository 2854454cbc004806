package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestStableForStructurallyEqualPatterns(t *testing.T) {
	a := PatternAnd(PatternText(), PatternTextExact("x"))
	b := PatternAnd(PatternText(), PatternTextExact("x"))
	assert.Equal(t, Digest(a), Digest(b))
}

func TestDigestDiffersForDifferentPatterns(t *testing.T) {
	a := PatternTextExact("x")
	b := PatternTextExact("y")
	assert.NotEqual(t, Digest(a), Digest(b))
}

func TestDigestDiffersAcrossKinds(t *testing.T) {
	assert.NotEqual(t, Digest(PatternNumberExact(1)), Digest(PatternTextExact("1")))
}

func TestCompileCachedReusesProgramForEquivalentPattern(t *testing.T) {
	before := Stats()

	a := PatternTextExact("cache-me")
	b := PatternTextExact("cache-me")

	p1 := CompileCached(a)
	p2 := CompileCached(b)

	assert.Same(t, p1, p2, "structurally equal patterns must share a compiled program")

	after := Stats()
	assert.GreaterOrEqual(t, after.Hits, before.Hits+1)
}

func TestCompileCachedDistinctPatternsCompileSeparately(t *testing.T) {
	p1 := CompileCached(PatternTextExact("alpha-unique"))
	p2 := CompileCached(PatternTextExact("beta-unique"))
	assert.NotSame(t, p1, p2)
}
