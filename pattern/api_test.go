package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsReturnsRootAsFirstElementOfEveryPath(t *testing.T) {
	n := aliceKnowsBob(t)
	paths := PatternSearch(PatternTextExact("Bob")).Paths(n)
	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.Equal(t, n.Digest(), p[0].Digest())
	}
}

func TestMatchesReflectsPathsNonEmpty(t *testing.T) {
	e := leaf(t, "x")
	assert.True(t, PatternTextExact("x").Matches(e))
	assert.False(t, PatternTextExact("y").Matches(e))
}

func TestPathsLimitedSurfacesLimitExceededError(t *testing.T) {
	e := leaf(t, "x")
	// A two-alternative Or compiles to a Split, which must spawn a
	// deferred thread for its second alternative even when the first
	// alternative matches inline; a zero budget can never afford that.
	pat := PatternOr(PatternTextExact("x"), PatternNumber())
	_, err := pat.PathsLimited(e, 0)
	require.Error(t, err)
	var limitErr *LimitExceededError
	assert.ErrorAs(t, err, &limitErr)
}

func TestPathsLimitedSucceedsWithAmpleBudget(t *testing.T) {
	e := leaf(t, "x")
	paths, err := PatternTextExact("x").PathsLimited(e, 1000)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestPathsDeduplicatesEquivalentRoutes(t *testing.T) {
	n := aliceKnowsBob(t)

	// Both branches of the Or describe the same assertion, so they must
	// collapse to a single deduplicated path.
	pat := PatternOr(
		PatternAssertionsWithPredicate(PatternTextExact("knows")),
		PatternAssertionsWithPredicate(PatternTextExact("knows")),
	)
	paths := pat.Paths(n)
	assert.Len(t, paths, 1)
}
