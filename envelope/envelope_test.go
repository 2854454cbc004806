package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeSortsAssertionsByDigest(t *testing.T) {
	subject, err := NewLeaf("Alice")
	require.NoError(t, err)

	p1, _ := NewLeaf("knows")
	o1, _ := NewLeaf("Bob")
	a1, err := NewAssertion(p1, o1)
	require.NoError(t, err)

	p2, _ := NewLeaf("likes")
	o2, _ := NewLeaf("Pizza")
	a2, err := NewAssertion(p2, o2)
	require.NoError(t, err)

	n1, err := NewNode(subject, a1, a2)
	require.NoError(t, err)
	n2, err := NewNode(subject, a2, a1)
	require.NoError(t, err)

	assert.Equal(t, n1.Digest(), n2.Digest(), "node digest must not depend on assertion declaration order")
	assert.Len(t, n1.Assertions(), 2)
}

func TestNewNodeRejectsEmptyAssertions(t *testing.T) {
	subject, _ := NewLeaf("Alice")
	_, err := NewNode(subject)
	assert.Error(t, err)
}

func TestNewNodeRejectsNonAssertionChild(t *testing.T) {
	subject, _ := NewLeaf("Alice")
	notAnAssertion, _ := NewLeaf("oops")
	_, err := NewNode(subject, notAnAssertion)
	assert.Error(t, err)
}

func TestSubjectFalseForNonNode(t *testing.T) {
	leaf, _ := NewLeaf(42)
	_, ok := leaf.Subject()
	assert.False(t, ok)
}

func TestWrappedRoundTrip(t *testing.T) {
	inner, _ := NewLeaf("hidden")
	w, err := NewWrapped(inner)
	require.NoError(t, err)

	got, ok := w.Wrapped()
	require.True(t, ok)
	assert.Equal(t, inner.Digest(), got.Digest())
}

func TestObscuredVariants(t *testing.T) {
	inner, _ := NewLeaf("secret")
	elided := NewElided(inner.Digest())
	encrypted := NewEncrypted(inner.Digest())
	compressed := NewCompressed(inner.Digest())

	assert.True(t, elided.IsObscured())
	assert.True(t, elided.IsElided())
	assert.True(t, encrypted.IsEncrypted())
	assert.True(t, compressed.IsCompressed())
	assert.True(t, elided.IsLeaf())

	assert.NotEqual(t, elided.Digest(), encrypted.Digest(), "same content digest must still yield distinct obscured digests per variant")
}

func TestKnownValue(t *testing.T) {
	kv := NewKnownValue(1)
	v, ok := kv.AsKnownValue()
	require.True(t, ok)
	assert.Equal(t, uint64(1), v)
}
