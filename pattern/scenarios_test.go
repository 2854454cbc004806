package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
)

// Scenario 1: leaf number range.
func TestScenarioLeafNumberRange(t *testing.T) {
	e := leaf(t, int64(42))

	pat, err := PatternNumberRange(40, 50)
	require.NoError(t, err)

	paths := pat.Paths(e)
	require.Len(t, paths, 1)
	assert.Len(t, paths[0], 1)
	assert.Equal(t, e.Digest(), paths[0][0].Digest())
}

// Scenario 2: node assertion count, then extract the subject.
func TestScenarioNodeAssertionCountThenSubject(t *testing.T) {
	subject := leaf(t, "Person")
	name := assertion(t, leaf(t, "name"), leaf(t, "Alice"))
	age := assertion(t, leaf(t, "age"), leaf(t, int64(25)))
	n := node(t, subject, name, age)

	count, err := PatternNodeAssertionsCount(2, 2)
	require.NoError(t, err)
	pat := PatternSequence(count, PatternSubject())

	paths := pat.Paths(n)
	require.Len(t, paths, 1)
	require.Len(t, paths[0], 2)
	assert.Equal(t, n.Digest(), paths[0][0].Digest())
	assert.Equal(t, "Person", textOf(t, paths[0][1]))
}

// Scenario 3: text regex, unaffected by assertion noise. Leaf predicates
// are specified against the envelope's subject, so Text matches the node
// itself without an explicit Subject() navigation, and the match still
// emits a one-element path [e].
func TestScenarioTextRegexWithAssertionNoise(t *testing.T) {
	subject := leaf(t, "hello")
	greeting := assertion(t, leaf(t, "greeting"), leaf(t, "world"))
	n := node(t, subject, greeting)

	pat, err := PatternTextRegex("^h.*o$")
	require.NoError(t, err)

	paths := pat.Paths(n)
	require.Len(t, paths, 1)
	assert.Len(t, paths[0], 1)
	assert.Equal(t, n.Digest(), paths[0][0].Digest())
}

// Scenario 4: search for obscured elements.
func TestScenarioSearchForObscuredElements(t *testing.T) {
	subject := leaf(t, "Alice")
	knows := assertion(t, leaf(t, "knows"), leaf(t, "Bob"))
	age := assertion(t, leaf(t, "age"), leaf(t, int64(30)))
	topSecret := leaf(t, "top secret")
	secret := assertion(t, leaf(t, "secret"), envelope.NewElided(topSecret.Digest()))
	n := node(t, subject, knows, age, secret)

	paths := PatternSearch(PatternObscuredAny()).Paths(n)
	require.Len(t, paths, 1)
	assert.True(t, paths[0].Last().IsElided())
}

// Scenario 5: digest-prefix search.
func TestScenarioDigestPrefixSearch(t *testing.T) {
	subject := leaf(t, "Alice")
	knows := assertion(t, leaf(t, "knows"), leaf(t, "Bob"))
	age := assertion(t, leaf(t, "age"), leaf(t, int64(30)))
	topSecret := leaf(t, "top secret")
	secret := assertion(t, leaf(t, "secret"), envelope.NewElided(topSecret.Digest()))
	n := node(t, subject, knows, age, secret)

	prefix := subject.Digest().Hex()[:8]
	pat := PatternDigestHexPrefix(prefix)

	paths := PatternSearch(pat).Paths(n)
	require.Len(t, paths, 1)
	assert.Equal(t, subject.Digest(), paths[0].Last().Digest())
}

// Scenario 6: greedy vs lazy vs possessive repetition over four wrap
// layers around a number leaf.
func TestScenarioGreedyLazyPossessiveRepetition(t *testing.T) {
	inner := leaf(t, int64(42))
	w1 := wrapped(t, inner)
	w2 := wrapped(t, w1)
	w3 := wrapped(t, w2)
	w4 := wrapped(t, w3)

	build := func(mode Greediness) Pattern {
		rep, err := PatternRepeat(PatternWrapped(PatternAny()), 0, Unbounded, mode)
		require.NoError(t, err)
		return PatternSequence(rep, PatternNumber())
	}

	for _, mode := range []Greediness{Greedy, Lazy, Possessive} {
		pat := build(mode)
		paths := pat.Paths(w4)
		require.NotEmpty(t, paths, "mode %v must find the wrapped number", mode)
		assert.Equal(t, inner.Digest(), paths[0].Last().Digest())
	}
}

// 8.1 universal invariants, exercised over a representative set of
// pattern/envelope pairs.
func TestInvariantDeterminism(t *testing.T) {
	n := aliceKnowsBob(t)
	pat := PatternSearch(PatternTextExact("Bob"))

	first := pat.Paths(n)
	second := pat.Paths(n)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]))
	}
}

func TestInvariantPathOrigin(t *testing.T) {
	n := aliceKnowsBob(t)
	for _, p := range PatternAssertionsAny().Paths(n) {
		assert.Equal(t, n.Digest(), p[0].Digest())
	}
}

func TestInvariantSubsetCorrectness(t *testing.T) {
	n := aliceKnowsBob(t)
	cases := []Pattern{
		PatternAssertionsWithPredicate(PatternTextExact("knows")),
		PatternAssertionsWithPredicate(PatternTextExact("owns")),
		PatternSearch(PatternTextExact("Bob")),
	}
	for _, p := range cases {
		assert.Equal(t, len(p.Paths(n)) > 0, p.Matches(n))
	}
}

func TestInvariantAndOrSingletonDuality(t *testing.T) {
	e := leaf(t, "x")
	inner := PatternTextExact("x")

	assert.Equal(t, inner.Matches(e), PatternAnd(inner).Matches(e))
	assert.Equal(t, inner.Matches(e), PatternOr(inner).Matches(e))
}

func TestInvariantNotInvolution(t *testing.T) {
	n := aliceKnowsBob(t)
	inner := PatternAssertionsWithPredicate(PatternTextExact("knows"))

	assert.Equal(t, inner.Matches(n), PatternNot(PatternNot(inner)).Matches(n))
}

func TestInvariantSearchSoundness(t *testing.T) {
	n := aliceKnowsBob(t)
	inner := PatternTextExact("Bob")
	for _, p := range PatternSearch(inner).Paths(n) {
		assert.True(t, inner.Matches(p.Last()))
	}
}

func TestInvariantSearchCompleteness(t *testing.T) {
	n := aliceKnowsBob(t)
	inner := PatternText()

	found := make(map[envelope.Digest]bool)
	for _, p := range PatternSearch(inner).Paths(n) {
		found[p.Last().Digest()] = true
	}

	for _, x := range searchOrder(n) {
		if inner.Matches(x) {
			assert.True(t, found[x.Digest()], "Search must find every matching descendant")
		}
	}
}

func TestInvariantRepeatBounds(t *testing.T) {
	inner := leaf(t, "core")
	w1 := wrapped(t, inner)
	w2 := wrapped(t, w1)
	w3 := wrapped(t, w2)

	rep, err := PatternRepeat(PatternWrapped(PatternAny()), 1, 2, Greedy)
	require.NoError(t, err)
	for _, p := range rep.Paths(w3) {
		reps := len(p) - 1
		assert.GreaterOrEqual(t, reps, 1)
		assert.LessOrEqual(t, reps, 2)
	}
}
