package envelope

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// leafValue holds a CBOR-encoded subject together with decoded accessors.
// The encoded form is kept around (rather than just the decoded Go value)
// so that Cbor.Exact patterns can compare leaves by full CBOR equality,
// matching spec semantics for the Cbor predicate.
type leafValue struct {
	encoded []byte
	decoded any
}

var cborDecMode = func() cbor.DecMode {
	// TimeTag is pinned to DecTagIgnored (the library default) rather than
	// left implicit: AsTagged/AsDate depend on tag 1 decoding to cbor.Tag
	// so they can inspect the tag number themselves. If the library's
	// default ever changed to decode tag 1 straight into time.Time, both
	// accessors would silently stop recognizing dates.
	m, err := cbor.DecOptions{TimeTag: cbor.DecTagIgnored}.DecMode()
	if err != nil {
		panic(err)
	}
	return m
}()

var cborEncMode = func() cbor.EncMode {
	// Canonical (deterministic) encoding so two equal values always
	// produce byte-identical CBOR, which is what Cbor.Exact relies on.
	opts := cbor.CanonicalEncOptions()
	m, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return m
}()

// NewLeaf builds a Leaf envelope from any CBOR-encodable Go value.
func NewLeaf(value any) (*Envelope, error) {
	encoded, err := cborEncMode.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to encode leaf: %w", err)
	}
	var decoded any
	if err := cborDecMode.Unmarshal(encoded, &decoded); err != nil {
		return nil, fmt.Errorf("envelope: failed to decode leaf: %w", err)
	}
	return &Envelope{
		variant: VariantLeaf,
		digest:  digestOf(tagLeaf, encoded),
		leaf:    &leafValue{encoded: encoded, decoded: decoded},
	}, nil
}

// NewTaggedLeaf builds a Leaf envelope wrapping a CBOR tagged value, used
// for dates (tag 1) and arbitrary registered tags.
func NewTaggedLeaf(tag uint64, content any) (*Envelope, error) {
	return NewLeaf(cbor.Tag{Number: tag, Content: content})
}

func (e *Envelope) rawLeaf() *leafValue {
	if e.variant != VariantLeaf || e.leaf == nil {
		return nil
	}
	return e.leaf
}

// AsNumber returns the subject's numeric value.
func (e *Envelope) AsNumber() (float64, bool) {
	lv := e.rawLeaf()
	if lv == nil {
		return 0, false
	}
	switch v := lv.decoded.(type) {
	case uint64:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// IsNaN reports whether the subject is a floating point NaN.
func (e *Envelope) IsNaN() bool {
	f, ok := e.AsNumber()
	return ok && math.IsNaN(f)
}

// AsText returns the subject's text string value.
func (e *Envelope) AsText() (string, bool) {
	lv := e.rawLeaf()
	if lv == nil {
		return "", false
	}
	s, ok := lv.decoded.(string)
	return s, ok
}

// AsByteString returns the subject's byte string value.
func (e *Envelope) AsByteString() ([]byte, bool) {
	lv := e.rawLeaf()
	if lv == nil {
		return nil, false
	}
	b, ok := lv.decoded.([]byte)
	return b, ok
}

// AsBool returns the subject's boolean value.
func (e *Envelope) AsBool() (bool, bool) {
	lv := e.rawLeaf()
	if lv == nil {
		return false, false
	}
	b, ok := lv.decoded.(bool)
	return b, ok
}

// IsNull reports whether the subject is CBOR null.
func (e *Envelope) IsNull() bool {
	lv := e.rawLeaf()
	if lv == nil {
		return false
	}
	return lv.decoded == nil
}

// AsArray returns the subject's array elements.
func (e *Envelope) AsArray() ([]any, bool) {
	lv := e.rawLeaf()
	if lv == nil {
		return nil, false
	}
	a, ok := lv.decoded.([]any)
	return a, ok
}

// AsMapLen returns the number of entries if the subject is a CBOR map.
func (e *Envelope) AsMapLen() (int, bool) {
	lv := e.rawLeaf()
	if lv == nil {
		return 0, false
	}
	switch m := lv.decoded.(type) {
	case map[any]any:
		return len(m), true
	default:
		return 0, false
	}
}

// AsTagged returns the tag number and decoded content when the subject is
// a CBOR tagged item.
func (e *Envelope) AsTagged() (uint64, any, bool) {
	lv := e.rawLeaf()
	if lv == nil {
		return 0, nil, false
	}
	t, ok := lv.decoded.(cbor.Tag)
	if !ok {
		return 0, nil, false
	}
	return t.Number, t.Content, true
}

// AsDate returns the subject as a time.Time when it is CBOR tag 1
// (epoch-based date/time), per the Date predicate's contract.
func (e *Envelope) AsDate() (time.Time, bool) {
	tag, content, ok := e.AsTagged()
	if !ok || tag != 1 {
		return time.Time{}, false
	}
	switch v := content.(type) {
	case uint64:
		return time.Unix(int64(v), 0).UTC(), true
	case int64:
		return time.Unix(v, 0).UTC(), true
	case float64:
		sec := int64(v)
		nsec := int64((v - float64(sec)) * 1e9)
		return time.Unix(sec, nsec).UTC(), true
	default:
		return time.Time{}, false
	}
}

// CBOREqual reports whether e and other are both Leaf envelopes with
// byte-identical canonical CBOR encodings.
func (e *Envelope) CBOREqual(other *Envelope) bool {
	lv, olv := e.rawLeaf(), other.rawLeaf()
	if lv == nil || olv == nil {
		return false
	}
	return bytes.Equal(lv.encoded, olv.encoded)
}
