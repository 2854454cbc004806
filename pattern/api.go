package pattern

import (
	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
	"github.com/blockchaincommons/bc-envelope-pattern-go/path"
)

// DefaultThreadLimit bounds how many VM threads a single Paths/Matches
// call may spawn before it gives up with LimitExceededError. It exists
// to turn a pathological pattern (nested unbounded Repeat inside
// Search, say) into a bounded error instead of unbounded memory growth.
const DefaultThreadLimit = 1_000_000

// Paths returns every root-to-match path produced by matching p against
// root, deduplicated by digest sequence. The first element of every
// returned path is always root itself. Paths never panics and never
// returns *LimitExceededError (only PathsLimited does); it uses
// DefaultThreadLimit and simply returns no paths if that limit is
// exceeded, since the overwhelming majority of real patterns
// never come close to it and most callers have no graceful recovery
// from the error besides treating it as no-match.
func (p Pattern) Paths(root *envelope.Envelope) []path.Path {
	paths, err := p.PathsLimited(root, DefaultThreadLimit)
	if err != nil {
		return nil
	}
	return paths
}

// PathsLimited is Paths with an explicit cap on how many VM threads the
// search may spawn, surfacing LimitExceededError instead of silently
// giving up when the cap is hit.
func (p Pattern) PathsLimited(root *envelope.Envelope, maxThreads int) ([]path.Path, error) {
	return RunLimited(CompileCached(p), root, maxThreads)
}

// Matches reports whether p has at least one matching path at root.
func (p Pattern) Matches(root *envelope.Envelope) bool {
	return len(p.Paths(root)) > 0
}
