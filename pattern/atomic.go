package pattern

import (
	"math"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
)

// isAtomic reports whether p compiles to a single MatchPredicate
// instruction: it tests the current envelope without navigating to any
// child. Leaf predicates, Digest, Obscured, Node, Any and None are
// atomic; Subject/Predicate/Object/Assertions/Wrapped navigate (they
// compile to PushAxis) and the combinators compile to their own control
// flow.
func isAtomic(p *Pattern) bool {
	switch p.Kind {
	case KindAny, KindNone,
		KindBool, KindNumber, KindText, KindByteString, KindDate, KindTag,
		KindArray, KindMap, KindNull, KindKnownValue, KindCbor,
		KindDigest, KindObscured, KindNode:
		return true
	case KindWrapped:
		// WrappedAny tests the variant without descending; Wrapped(inner)
		// navigates and is handled by the compiler instead.
		return p.wrappedSub == wrappedAny
	default:
		return false
	}
}

// matchAtomic evaluates an atomic pattern against e, reporting whether it
// matches. It never inspects navigation axes; callers are responsible for
// routing navigating patterns through the compiler/VM instead.
func matchAtomic(p *Pattern, e *envelope.Envelope) bool {
	switch p.Kind {
	case KindAny:
		return true
	case KindNone:
		return false
	case KindBool:
		return matchBool(p, subjectOf(e))
	case KindNumber:
		return matchNumber(p, subjectOf(e))
	case KindText:
		return matchText(p, subjectOf(e))
	case KindByteString:
		return matchByteString(p, subjectOf(e))
	case KindDate:
		return matchDate(p, subjectOf(e))
	case KindTag:
		return matchTag(p, subjectOf(e))
	case KindArray:
		return matchArray(p, subjectOf(e))
	case KindMap:
		return matchMap(p, subjectOf(e))
	case KindNull:
		return subjectOf(e).IsNull()
	case KindKnownValue:
		return matchKnownValue(p, subjectOf(e))
	case KindCbor:
		return matchCbor(p, subjectOf(e))
	case KindDigest:
		return matchDigest(p, e)
	case KindObscured:
		return matchObscured(p, e)
	case KindNode:
		return matchNode(p, e)
	case KindWrapped:
		_, ok := e.Wrapped()
		return ok
	default:
		return false
	}
}

// subjectOf resolves e to the envelope a leaf predicate actually tests:
// a Node's embedded subject, or e itself for every other variant. Leaf
// predicates (Bool, Number, Text, ByteString, Date, Tag, Array, Map,
// Null, KnownValue, Cbor) are specified against "the subject", so a
// pattern like Text(Exact("hi")) matches a Node whose subject is the
// text "hi" without the caller first navigating there explicitly.
// Structure predicates (Digest, Obscured, Node) are specified against
// the envelope itself and must not call this.
func subjectOf(e *envelope.Envelope) *envelope.Envelope {
	if s, ok := e.Subject(); ok {
		return s
	}
	return e
}

func matchBool(p *Pattern, e *envelope.Envelope) bool {
	b, ok := e.AsBool()
	if !ok {
		return false
	}
	switch p.boolSub {
	case boolAny:
		return true
	case boolExact:
		return b == p.boolExactVal
	default:
		return false
	}
}

func matchNumber(p *Pattern, e *envelope.Envelope) bool {
	f, ok := e.AsNumber()
	if !ok {
		return false
	}
	switch p.numberSub {
	case numberAny:
		return true
	case numberExact:
		return !math.IsNaN(f) && f == p.numberVal
	case numberRange:
		return !math.IsNaN(f) && f >= p.numberLo && f <= p.numberHi
	case numberGT:
		return !math.IsNaN(f) && f > p.numberVal
	case numberGE:
		return !math.IsNaN(f) && f >= p.numberVal
	case numberLT:
		return !math.IsNaN(f) && f < p.numberVal
	case numberLE:
		return !math.IsNaN(f) && f <= p.numberVal
	case numberNaN:
		return math.IsNaN(f)
	default:
		return false
	}
}

func matchText(p *Pattern, e *envelope.Envelope) bool {
	s, ok := e.AsText()
	if !ok {
		return false
	}
	switch p.textSub {
	case textAny:
		return true
	case textExact:
		return s == p.textVal
	case textRegex:
		return p.textRegex.MatchString(s)
	default:
		return false
	}
}

func matchByteString(p *Pattern, e *envelope.Envelope) bool {
	b, ok := e.AsByteString()
	if !ok {
		return false
	}
	switch p.bsSub {
	case bsAny:
		return true
	case bsExact:
		return bytesEqual(b, p.bsVal)
	case bsRegex:
		return p.bsRegex.Match(b)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func matchDate(p *Pattern, e *envelope.Envelope) bool {
	t, ok := e.AsDate()
	if !ok {
		return false
	}
	switch p.dateSub {
	case dateAny:
		return true
	case dateExact:
		return t.Equal(p.dateVal)
	case dateRange:
		return !t.Before(p.dateLo) && !t.After(p.dateHi)
	case dateEarliest:
		return !t.Before(p.dateVal)
	case dateLatest:
		return !t.After(p.dateVal)
	case dateISO8601:
		return t.UTC().Format("2006-01-02T15:04:05Z") == p.dateISO8601
	case dateRegex:
		return p.dateRegex.MatchString(t.UTC().Format("2006-01-02T15:04:05Z"))
	default:
		return false
	}
}

func matchTag(p *Pattern, e *envelope.Envelope) bool {
	tag, _, ok := e.AsTagged()
	if !ok {
		return false
	}
	switch p.tagSub {
	case tagAny:
		return true
	case tagValue:
		return tag == p.tagVal
	case tagNamed:
		name, ok := p.tagRegistry.AssignedNameForTag(tag)
		return ok && name == p.tagName
	case tagRegex:
		name, ok := p.tagRegistry.AssignedNameForTag(tag)
		return ok && p.tagRegex.MatchString(name)
	default:
		return false
	}
}

func matchArray(p *Pattern, e *envelope.Envelope) bool {
	arr, ok := e.AsArray()
	if !ok {
		return false
	}
	return matchCount(p, len(arr))
}

func matchMap(p *Pattern, e *envelope.Envelope) bool {
	n, ok := e.AsMapLen()
	if !ok {
		return false
	}
	return matchCount(p, n)
}

func matchCount(p *Pattern, n int) bool {
	switch p.countSub {
	case countAny:
		return true
	case countRange:
		if n < p.countLo {
			return false
		}
		return p.countHi == Unbounded || n <= p.countHi
	default:
		return false
	}
}

func matchKnownValue(p *Pattern, e *envelope.Envelope) bool {
	v, ok := e.AsKnownValue()
	if !ok {
		return false
	}
	switch p.kvSub {
	case kvAny:
		return true
	case kvExact:
		return v == p.kvVal
	case kvNamed:
		name, ok := p.kvRegistry.NameForKnownValue(v)
		return ok && name == p.kvName
	case kvRegex:
		name, ok := p.kvRegistry.NameForKnownValue(v)
		return ok && p.kvRegex.MatchString(name)
	default:
		return false
	}
}

func matchCbor(p *Pattern, e *envelope.Envelope) bool {
	if e.Variant() != envelope.VariantLeaf {
		return false
	}
	switch p.cborSub {
	case cborAny:
		return true
	case cborExact:
		return e.CBOREqual(p.cborVal)
	default:
		return false
	}
}

func matchDigest(p *Pattern, e *envelope.Envelope) bool {
	d := e.Digest()
	switch p.digestSub {
	case digestExact:
		return d == p.digestVal
	case digestHexPrefix:
		return d.HasHexPrefix(p.digestHexVal)
	case digestBinaryRegex:
		return p.digestRegexVal.Match(d[:])
	default:
		return false
	}
}

func matchObscured(p *Pattern, e *envelope.Envelope) bool {
	switch p.obscuredSub {
	case obscuredAny:
		return e.IsObscured()
	case obscuredElided:
		return e.IsElided()
	case obscuredEncrypted:
		return e.IsEncrypted()
	case obscuredCompressed:
		return e.IsCompressed()
	default:
		return false
	}
}

func matchNode(p *Pattern, e *envelope.Envelope) bool {
	if !e.IsNode() {
		return false
	}
	switch p.nodeSub {
	case nodeAny:
		return true
	case nodeAssertionsCount:
		return matchCount(&Pattern{countSub: countRange, countLo: p.countLo, countHi: p.countHi}, len(e.Assertions()))
	default:
		return false
	}
}
