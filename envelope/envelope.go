// Package envelope implements the read-only graph substrate the pattern
// matcher traverses: a content-addressed, recursive structure of nodes,
// leaves, wrapped values, assertions and obscured forms.
//
// Envelope construction, signing, encryption and elision are out of scope
// for the matcher proper (see the package-level Non-goals in the project
// spec); this package provides just enough of a concrete substrate — the
// "external collaborator" the matcher depends on — for the engine to
// compile and run against real values.
package envelope

import (
	"fmt"
	"sort"
)

// Variant identifies which case of the envelope sum type a value holds.
type Variant int

const (
	VariantNode Variant = iota
	VariantLeaf
	VariantWrapped
	VariantAssertion
	VariantKnownValue
	VariantElided
	VariantEncrypted
	VariantCompressed
)

func (v Variant) String() string {
	switch v {
	case VariantNode:
		return "node"
	case VariantLeaf:
		return "leaf"
	case VariantWrapped:
		return "wrapped"
	case VariantAssertion:
		return "assertion"
	case VariantKnownValue:
		return "knownValue"
	case VariantElided:
		return "elided"
	case VariantEncrypted:
		return "encrypted"
	case VariantCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// Envelope is an immutable, content-addressed node in the envelope graph.
// Every accessor returns its zero value (or false/empty) when called on a
// variant for which the axis does not apply, rather than panicking.
type Envelope struct {
	variant Variant
	digest  Digest

	// Node
	subject    *Envelope
	assertions []*Envelope

	// Leaf
	leaf *leafValue

	// Wrapped
	inner *Envelope

	// Assertion
	predicate *Envelope
	object    *Envelope

	// KnownValue
	knownValue uint64
}

// Variant reports which case of the sum type e holds.
func (e *Envelope) Variant() Variant { return e.variant }

// Digest returns e's cached content digest.
func (e *Envelope) Digest() Digest { return e.digest }

// IsNode reports whether e is a Node.
func (e *Envelope) IsNode() bool { return e.variant == VariantNode }

// IsObscured reports whether e is Elided, Encrypted or Compressed.
func (e *Envelope) IsObscured() bool {
	switch e.variant {
	case VariantElided, VariantEncrypted, VariantCompressed:
		return true
	default:
		return false
	}
}

// IsElided reports whether e is an Elided placeholder.
func (e *Envelope) IsElided() bool { return e.variant == VariantElided }

// IsEncrypted reports whether e is an Encrypted placeholder.
func (e *Envelope) IsEncrypted() bool { return e.variant == VariantEncrypted }

// IsCompressed reports whether e is a Compressed placeholder.
func (e *Envelope) IsCompressed() bool { return e.variant == VariantCompressed }

// IsLeaf reports whether e is terminal for matching purposes: a CBOR leaf,
// a known value, or any obscured form.
func (e *Envelope) IsLeaf() bool {
	switch e.variant {
	case VariantLeaf, VariantKnownValue, VariantElided, VariantEncrypted, VariantCompressed:
		return true
	default:
		return false
	}
}

// Subject returns e's embedded subject and true when e is a Node. For all
// other variants it returns (nil, false) — callers that want the
// "subject is the envelope itself" fallback for non-Node variants
// implement that at the pattern level, not here (see pattern.PatternSubject).
func (e *Envelope) Subject() (*Envelope, bool) {
	if e.variant != VariantNode {
		return nil, false
	}
	return e.subject, true
}

// Assertions returns e's assertions in canonical digest order, or nil if e
// is not a Node.
func (e *Envelope) Assertions() []*Envelope {
	if e.variant != VariantNode {
		return nil
	}
	return e.assertions
}

// Predicate returns the predicate envelope of an Assertion, or (nil, false)
// if e is not an Assertion.
func (e *Envelope) Predicate() (*Envelope, bool) {
	if e.variant != VariantAssertion {
		return nil, false
	}
	return e.predicate, true
}

// Object returns the object envelope of an Assertion, or (nil, false) if e
// is not an Assertion.
func (e *Envelope) Object() (*Envelope, bool) {
	if e.variant != VariantAssertion {
		return nil, false
	}
	return e.object, true
}

// Wrapped returns the inner envelope of a Wrapped value, or (nil, false)
// otherwise.
func (e *Envelope) Wrapped() (*Envelope, bool) {
	if e.variant != VariantWrapped {
		return nil, false
	}
	return e.inner, true
}

// AsKnownValue returns the numeric known-value id, or (0, false) if e is
// not a KnownValue.
func (e *Envelope) AsKnownValue() (uint64, bool) {
	if e.variant != VariantKnownValue {
		return 0, false
	}
	return e.knownValue, true
}

// NewNode builds a Node envelope from a subject and a non-empty set of
// assertions, canonically sorted by digest (ties broken by full byte
// order, which cannot occur for SHA-256 digests of distinct assertions in
// practice but is handled deterministically regardless).
func NewNode(subject *Envelope, assertions ...*Envelope) (*Envelope, error) {
	if subject == nil {
		return nil, fmt.Errorf("envelope: node subject must not be nil")
	}
	if len(assertions) == 0 {
		return nil, fmt.Errorf("envelope: node requires at least one assertion")
	}
	for _, a := range assertions {
		if a == nil || a.variant != VariantAssertion {
			return nil, fmt.Errorf("envelope: node assertions must be Assertion envelopes")
		}
	}
	sorted := make([]*Envelope, len(assertions))
	copy(sorted, assertions)
	sort.Slice(sorted, func(i, j int) bool {
		return lessDigest(sorted[i].digest, sorted[j].digest)
	})

	parts := make([][]byte, 0, len(sorted)+1)
	subjDigest := subject.digest
	parts = append(parts, subjDigest[:])
	for _, a := range sorted {
		d := a.digest
		parts = append(parts, d[:])
	}

	return &Envelope{
		variant:    VariantNode,
		digest:     digestOf(tagNode, parts...),
		subject:    subject,
		assertions: sorted,
	}, nil
}

// NewWrapped wraps inner in a Wrapped envelope.
func NewWrapped(inner *Envelope) (*Envelope, error) {
	if inner == nil {
		return nil, fmt.Errorf("envelope: wrapped inner must not be nil")
	}
	d := inner.digest
	return &Envelope{
		variant: VariantWrapped,
		digest:  digestOf(tagWrapped, d[:]),
		inner:   inner,
	}, nil
}

// NewAssertion builds an Assertion envelope from a predicate and object.
func NewAssertion(predicate, object *Envelope) (*Envelope, error) {
	if predicate == nil || object == nil {
		return nil, fmt.Errorf("envelope: assertion predicate and object must not be nil")
	}
	pd, od := predicate.digest, object.digest
	return &Envelope{
		variant:   VariantAssertion,
		digest:    digestOf(tagAssertion, pd[:], od[:]),
		predicate: predicate,
		object:    object,
	}, nil
}

// NewKnownValue wraps a known-value id.
func NewKnownValue(value uint64) *Envelope {
	var buf [8]byte
	putUint64(buf[:], value)
	return &Envelope{
		variant:    VariantKnownValue,
		digest:     digestOf(tagKnownValue, buf[:]),
		knownValue: value,
	}
}

// NewElided creates an Elided placeholder carrying the digest of the
// content it stands in for.
func NewElided(d Digest) *Envelope {
	return &Envelope{variant: VariantElided, digest: digestOf(tagElided, d[:])}
}

// NewEncrypted creates an Encrypted placeholder carrying the digest of the
// content it stands in for.
func NewEncrypted(d Digest) *Envelope {
	return &Envelope{variant: VariantEncrypted, digest: digestOf(tagEncrypted, d[:])}
}

// NewCompressed creates a Compressed placeholder carrying the digest of
// the content it stands in for.
func NewCompressed(d Digest) *Envelope {
	return &Envelope{variant: VariantCompressed, digest: digestOf(tagCompressed, d[:])}
}

func lessDigest(a, b Digest) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func putUint64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
