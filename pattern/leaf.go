package pattern

import (
	"regexp"
	"time"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
	"github.com/blockchaincommons/bc-envelope-pattern-go/registry"
)

// PatternBool matches any boolean subject.
func PatternBool() Pattern { return Pattern{Kind: KindBool, boolSub: boolAny} }

// PatternBoolExact matches a boolean subject equal to b.
func PatternBoolExact(b bool) Pattern {
	return Pattern{Kind: KindBool, boolSub: boolExact, boolExactVal: b}
}

// PatternNumber matches any numeric subject.
func PatternNumber() Pattern { return Pattern{Kind: KindNumber, numberSub: numberAny} }

// PatternNumberExact matches a numeric subject equal to f. Never matches
// NaN, per spec.
func PatternNumberExact(f float64) Pattern {
	return Pattern{Kind: KindNumber, numberSub: numberExact, numberVal: f}
}

// PatternNumberRange matches a numeric subject in [lo, hi].
func PatternNumberRange(lo, hi float64) (Pattern, error) {
	if lo > hi {
		return Pattern{}, constructionErrorf("Number.Range", "lo %v > hi %v", lo, hi)
	}
	return Pattern{Kind: KindNumber, numberSub: numberRange, numberLo: lo, numberHi: hi}, nil
}

// PatternNumberGT matches a numeric subject strictly greater than f.
func PatternNumberGT(f float64) Pattern {
	return Pattern{Kind: KindNumber, numberSub: numberGT, numberVal: f}
}

// PatternNumberGE matches a numeric subject greater than or equal to f.
func PatternNumberGE(f float64) Pattern {
	return Pattern{Kind: KindNumber, numberSub: numberGE, numberVal: f}
}

// PatternNumberLT matches a numeric subject strictly less than f.
func PatternNumberLT(f float64) Pattern {
	return Pattern{Kind: KindNumber, numberSub: numberLT, numberVal: f}
}

// PatternNumberLE matches a numeric subject less than or equal to f.
func PatternNumberLE(f float64) Pattern {
	return Pattern{Kind: KindNumber, numberSub: numberLE, numberVal: f}
}

// PatternNumberNaN matches only a NaN numeric subject.
func PatternNumberNaN() Pattern { return Pattern{Kind: KindNumber, numberSub: numberNaN} }

// PatternText matches any text subject, including the empty string.
func PatternText() Pattern { return Pattern{Kind: KindText, textSub: textAny} }

// PatternTextExact matches a text subject equal to s.
func PatternTextExact(s string) Pattern {
	return Pattern{Kind: KindText, textSub: textExact, textVal: s}
}

// PatternTextRegex matches a text subject against the RE2 expression expr.
func PatternTextRegex(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, constructionErrorf("Text.Regex", "%w", err)
	}
	return Pattern{Kind: KindText, textSub: textRegex, textRegex: re}, nil
}

// PatternByteString matches any byte string subject.
func PatternByteString() Pattern { return Pattern{Kind: KindByteString, bsSub: bsAny} }

// PatternByteStringExact matches a byte string subject equal to b.
func PatternByteStringExact(b []byte) Pattern {
	return Pattern{Kind: KindByteString, bsSub: bsExact, bsVal: append([]byte(nil), b...)}
}

// PatternByteStringRegex matches a byte string subject against expr,
// applied to the raw bytes.
func PatternByteStringRegex(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, constructionErrorf("ByteString.Regex", "%w", err)
	}
	return Pattern{Kind: KindByteString, bsSub: bsRegex, bsRegex: re}, nil
}

// PatternDate matches any date subject (CBOR tag 1).
func PatternDate() Pattern { return Pattern{Kind: KindDate, dateSub: dateAny} }

// PatternDateExact matches a date subject equal to t.
func PatternDateExact(t time.Time) Pattern {
	return Pattern{Kind: KindDate, dateSub: dateExact, dateVal: t}
}

// PatternDateRange matches a date subject in [lo, hi].
func PatternDateRange(lo, hi time.Time) (Pattern, error) {
	if hi.Before(lo) {
		return Pattern{}, constructionErrorf("Date.Range", "lo %v after hi %v", lo, hi)
	}
	return Pattern{Kind: KindDate, dateSub: dateRange, dateLo: lo, dateHi: hi}, nil
}

// PatternDateEarliest matches a date subject on or after t.
func PatternDateEarliest(t time.Time) Pattern {
	return Pattern{Kind: KindDate, dateSub: dateEarliest, dateVal: t}
}

// PatternDateLatest matches a date subject on or before t.
func PatternDateLatest(t time.Time) Pattern {
	return Pattern{Kind: KindDate, dateSub: dateLatest, dateVal: t}
}

// PatternDateISO8601 matches a date subject whose canonical ISO-8601 text
// form equals s exactly.
func PatternDateISO8601(s string) Pattern {
	return Pattern{Kind: KindDate, dateSub: dateISO8601, dateISO8601: s}
}

// PatternDateRegex matches a date subject's canonical ISO-8601 text form
// against expr.
func PatternDateRegex(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, constructionErrorf("Date.Regex", "%w", err)
	}
	return Pattern{Kind: KindDate, dateSub: dateRegex, dateRegex: re}, nil
}

// PatternTag matches any tagged CBOR subject.
func PatternTag() Pattern { return Pattern{Kind: KindTag, tagSub: tagAny} }

// PatternTagValue matches a tagged subject whose tag number equals t.
func PatternTagValue(t uint64) Pattern {
	return Pattern{Kind: KindTag, tagSub: tagValue, tagVal: t}
}

// PatternTagNamed matches a tagged subject whose tag is registered in reg
// under name.
func PatternTagNamed(reg *registry.TagRegistry, name string) Pattern {
	return Pattern{Kind: KindTag, tagSub: tagNamed, tagName: name, tagRegistry: reg}
}

// PatternTagRegex matches a tagged subject whose registered name in reg
// matches expr. A tag with no registered name never matches.
func PatternTagRegex(reg *registry.TagRegistry, expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, constructionErrorf("Tag.Regex", "%w", err)
	}
	return Pattern{Kind: KindTag, tagSub: tagRegex, tagRegex: re, tagRegistry: reg}, nil
}

// PatternArray matches any array subject.
func PatternArray() Pattern { return Pattern{Kind: KindArray, countSub: countAny} }

// PatternArrayCount matches an array subject whose element count falls in
// [lo, hi]. hi may be Unbounded.
func PatternArrayCount(lo, hi int) (Pattern, error) {
	if err := validateCountRange(lo, hi); err != nil {
		return Pattern{}, constructionErrorf("Array.Count", "%w", err)
	}
	return Pattern{Kind: KindArray, countSub: countRange, countLo: lo, countHi: hi}, nil
}

// PatternMap matches any map subject.
func PatternMap() Pattern { return Pattern{Kind: KindMap, countSub: countAny} }

// PatternMapCount matches a map subject whose entry count falls in
// [lo, hi]. hi may be Unbounded.
func PatternMapCount(lo, hi int) (Pattern, error) {
	if err := validateCountRange(lo, hi); err != nil {
		return Pattern{}, constructionErrorf("Map.Count", "%w", err)
	}
	return Pattern{Kind: KindMap, countSub: countRange, countLo: lo, countHi: hi}, nil
}

// PatternNull matches a CBOR null subject.
func PatternNull() Pattern { return Pattern{Kind: KindNull} }

// PatternKnownValue matches any KnownValue envelope.
func PatternKnownValue() Pattern { return Pattern{Kind: KindKnownValue, kvSub: kvAny} }

// PatternKnownValueExact matches a KnownValue envelope equal to v.
func PatternKnownValueExact(v uint64) Pattern {
	return Pattern{Kind: KindKnownValue, kvSub: kvExact, kvVal: v}
}

// PatternKnownValueNamed matches a KnownValue envelope registered in reg
// under name.
func PatternKnownValueNamed(reg *registry.KnownValueRegistry, name string) Pattern {
	return Pattern{Kind: KindKnownValue, kvSub: kvNamed, kvName: name, kvRegistry: reg}
}

// PatternKnownValueRegex matches a KnownValue envelope whose registered
// name in reg matches expr.
func PatternKnownValueRegex(reg *registry.KnownValueRegistry, expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, constructionErrorf("KnownValue.Regex", "%w", err)
	}
	return Pattern{Kind: KindKnownValue, kvSub: kvRegex, kvRegex: re, kvRegistry: reg}, nil
}

// PatternCbor matches any leaf subject.
func PatternCbor() Pattern { return Pattern{Kind: KindCbor, cborSub: cborAny} }

// PatternCborExact matches a leaf subject with full CBOR equality to
// value.
func PatternCborExact(value any) (Pattern, error) {
	leaf, err := envelope.NewLeaf(value)
	if err != nil {
		return Pattern{}, constructionErrorf("Cbor.Exact", "%w", err)
	}
	return Pattern{Kind: KindCbor, cborSub: cborExact, cborVal: leaf}, nil
}

func validateCountRange(lo, hi int) error {
	if lo < 0 {
		return constructionErrorf("Count", "lo %d must be >= 0", lo)
	}
	if hi != Unbounded && hi < lo {
		return constructionErrorf("Count", "hi %d < lo %d", hi, lo)
	}
	return nil
}
