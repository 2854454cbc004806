package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
)

// leaf builds a Leaf envelope or fails the test.
func leaf(t *testing.T, v any) *envelope.Envelope {
	t.Helper()
	e, err := envelope.NewLeaf(v)
	require.NoError(t, err)
	return e
}

// assertion builds a Assertion(predicate, object) envelope or fails the
// test.
func assertion(t *testing.T, predicate, object *envelope.Envelope) *envelope.Envelope {
	t.Helper()
	a, err := envelope.NewAssertion(predicate, object)
	require.NoError(t, err)
	return a
}

// node builds a Node(subject, assertions...) envelope or fails the test.
func node(t *testing.T, subject *envelope.Envelope, assertions ...*envelope.Envelope) *envelope.Envelope {
	t.Helper()
	n, err := envelope.NewNode(subject, assertions...)
	require.NoError(t, err)
	return n
}

// wrapped builds a Wrapped(inner) envelope or fails the test.
func wrapped(t *testing.T, inner *envelope.Envelope) *envelope.Envelope {
	t.Helper()
	w, err := envelope.NewWrapped(inner)
	require.NoError(t, err)
	return w
}

// knownValue builds a KnownValue envelope or fails the test.
func knownValue(t *testing.T, v uint64) *envelope.Envelope {
	t.Helper()
	return envelope.NewKnownValue(v)
}

// obscured builds an obscured placeholder of the given kind ("elided",
// "encrypted" or "compressed") standing in for d, or fails the test.
func obscured(t *testing.T, kind string, d envelope.Digest) *envelope.Envelope {
	t.Helper()
	switch kind {
	case "elided":
		return envelope.NewElided(d)
	case "encrypted":
		return envelope.NewEncrypted(d)
	case "compressed":
		return envelope.NewCompressed(d)
	default:
		t.Fatalf("obscured: unknown kind %q", kind)
		return nil
	}
}

// aliceKnowsBob builds Node("Alice", [isA -> Person, knows -> Bob]).
func aliceKnowsBob(t *testing.T) *envelope.Envelope {
	t.Helper()
	subject := leaf(t, "Alice")
	isA := assertion(t, leaf(t, "isA"), leaf(t, "Person"))
	knows := assertion(t, leaf(t, "knows"), leaf(t, "Bob"))
	return node(t, subject, isA, knows)
}
