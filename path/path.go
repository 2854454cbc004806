// Package path implements the Path value type returned by pattern
// matching: an ordered, non-empty sequence of envelopes witnessing a
// match, plus the canonicalization used to deduplicate paths that reach
// the same match through different compiled routes.
package path

import "github.com/blockchaincommons/bc-envelope-pattern-go/envelope"

// Path is an ordered, non-empty sequence of envelopes, the first of which
// is always the root the query began at.
type Path []*envelope.Envelope

// Last returns the final envelope in the path. Callers must not call Last
// on an empty path.
func (p Path) Last() *envelope.Envelope {
	return p[len(p)-1]
}

// Extend returns a new path with e appended. The receiver is left
// unmodified so that forked VM threads never share backing arrays across
// a branch point.
func (p Path) Extend(e *envelope.Envelope) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = e
	return out
}

// Truncated returns a new path with its last element removed. Callers
// must not call Truncated on an empty path.
func (p Path) Truncated() Path {
	out := make(Path, len(p)-1)
	copy(out, p[:len(p)-1])
	return out
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// key returns a string uniquely identifying the sequence of digests in p,
// suitable for use as a deduplication map key.
func (p Path) key() string {
	buf := make([]byte, 0, len(p)*65)
	for i, e := range p {
		if i > 0 {
			buf = append(buf, '/')
		}
		d := e.Digest()
		buf = append(buf, d.Hex()...)
	}
	return string(buf)
}

// Equal reports whether p and other are element-wise digest-equal.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i].Digest() != other[i].Digest() {
			return false
		}
	}
	return true
}

// Dedup removes paths that are element-wise digest-equal to an earlier
// path in the slice, preserving the first occurrence's order. The VM's
// compiled exploration can reach the same match through multiple routes
// (e.g. an Or branch and an equivalent Search visit); canonicalization
// happens once, after collection, rather than by avoiding duplicate
// traversal during the run.
func Dedup(paths []Path) []Path {
	seen := make(map[string]struct{}, len(paths))
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		k := p.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
