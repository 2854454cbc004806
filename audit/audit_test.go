package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
	"github.com/blockchaincommons/bc-envelope-pattern-go/pattern"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpenMigratesExecutionsTable(t *testing.T) {
	l := openTestLog(t)
	assert.True(t, l.db.Migrator().HasTable(&Execution{}))
}

func TestRecordPersistsTelemetryAndReturnsPaths(t *testing.T) {
	l := openTestLog(t)

	root, err := envelope.NewLeaf("alice")
	require.NoError(t, err)
	pat := pattern.PatternTextExact("alice")

	paths, err := l.Record(pat, root)
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	recent, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	exec := recent[0]
	assert.Equal(t, pattern.Digest(pat), exec.PatternDigest)
	assert.Equal(t, root.Digest().Hex(), exec.RootDigest)
	assert.Equal(t, 1, exec.MatchCount)
}

func TestRecordCountsZeroMatches(t *testing.T) {
	l := openTestLog(t)

	root, err := envelope.NewLeaf("alice")
	require.NoError(t, err)
	pat := pattern.PatternTextExact("bob")

	paths, err := l.Record(pat, root)
	require.NoError(t, err)
	assert.Empty(t, paths)

	recent, err := l.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 0, recent[0].MatchCount)
}

func TestRecentRespectsLimit(t *testing.T) {
	l := openTestLog(t)

	root, err := envelope.NewLeaf("x")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := l.Record(pattern.PatternAny(), root)
		require.NoError(t, err)
	}

	recent, err := l.Recent(2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestCloseReleasesConnection(t *testing.T) {
	l, err := Open(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}
