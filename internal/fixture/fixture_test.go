package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeaf(t *testing.T) {
	e, err := Parse([]byte(`{"type":"leaf","value":"hello"}`))
	require.NoError(t, err)
	s, ok := e.AsText()
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestParseNodeWithAssertions(t *testing.T) {
	e, err := Parse([]byte(`{
		"type": "node",
		"subject": {"type": "leaf", "value": "Alice"},
		"assertions": [
			{
				"type": "assertion",
				"predicate": {"type": "leaf", "value": "knows"},
				"object": {"type": "leaf", "value": "Bob"}
			}
		]
	}`))
	require.NoError(t, err)
	assert.True(t, e.IsNode())
	assert.Len(t, e.Assertions(), 1)

	subject, ok := e.Subject()
	require.True(t, ok)
	text, ok := subject.AsText()
	require.True(t, ok)
	assert.Equal(t, "Alice", text)
}

func TestParseTaggedDate(t *testing.T) {
	e, err := Parse([]byte(`{"type":"tagged","tag":1,"content":1700000000}`))
	require.NoError(t, err)
	d, ok := e.AsDate()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), d.Unix())
}

func TestParseWrapped(t *testing.T) {
	e, err := Parse([]byte(`{
		"type": "wrapped",
		"inner": {"type": "leaf", "value": 42}
	}`))
	require.NoError(t, err)
	inner, ok := e.Wrapped()
	require.True(t, ok)
	n, ok := inner.AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(42), n)
}

func TestParseKnownValue(t *testing.T) {
	e, err := Parse([]byte(`{"type":"knownValue","knownValue":1}`))
	require.NoError(t, err)
	v, ok := e.AsKnownValue()
	require.True(t, ok)
	assert.Equal(t, uint64(1), v)
}

func TestParseUnknownType(t *testing.T) {
	_, err := Parse([]byte(`{"type":"bogus"}`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path.json")
	assert.Error(t, err)
}
