package pattern

import (
	"regexp"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
)

// PatternSubject matches the subject axis: for a Node it navigates to the
// embedded subject; for every other variant it treats the envelope as its
// own subject.
func PatternSubject() Pattern { return Pattern{Kind: KindSubject} }

// PatternPredicate matches an Assertion whose predicate matches inner.
func PatternPredicate(inner Pattern) Pattern {
	return Pattern{Kind: KindPredicate, inner: &inner}
}

// PatternObject matches an Assertion whose object matches inner.
func PatternObject(inner Pattern) Pattern {
	return Pattern{Kind: KindObject, inner: &inner}
}

// PatternAssertionsAny navigates to every assertion of a Node.
func PatternAssertionsAny() Pattern {
	return Pattern{Kind: KindAssertions, assertionsSub: assertionsAny}
}

// PatternAssertionsWithPredicate navigates to every assertion of a Node
// whose predicate matches inner.
func PatternAssertionsWithPredicate(inner Pattern) Pattern {
	return Pattern{Kind: KindAssertions, assertionsSub: assertionsWithPredicate, inner: &inner}
}

// PatternAssertionsWithObject navigates to every assertion of a Node
// whose object matches inner.
func PatternAssertionsWithObject(inner Pattern) Pattern {
	return Pattern{Kind: KindAssertions, assertionsSub: assertionsWithObject, inner: &inner}
}

// PatternWrappedAny matches any Wrapped envelope without descending into
// it.
func PatternWrappedAny() Pattern {
	return Pattern{Kind: KindWrapped, wrappedSub: wrappedAny}
}

// PatternWrapped matches a Wrapped envelope whose inner envelope matches
// inner.
func PatternWrapped(inner Pattern) Pattern {
	return Pattern{Kind: KindWrapped, wrappedSub: wrappedInner, inner: &inner}
}

// PatternNodeAny matches any Node.
func PatternNodeAny() Pattern { return Pattern{Kind: KindNode, nodeSub: nodeAny} }

// PatternNodeAssertionsCount matches a Node whose assertion count falls
// in [lo, hi]. hi may be Unbounded.
func PatternNodeAssertionsCount(lo, hi int) (Pattern, error) {
	if err := validateCountRange(lo, hi); err != nil {
		return Pattern{}, constructionErrorf("Node.AssertionsCount", "%w", err)
	}
	return Pattern{Kind: KindNode, nodeSub: nodeAssertionsCount, countLo: lo, countHi: hi}, nil
}

// PatternDigestExact matches an envelope whose digest equals d.
func PatternDigestExact(d envelope.Digest) Pattern {
	return Pattern{Kind: KindDigest, digestSub: digestExact, digestVal: d}
}

// PatternDigestHexPrefix matches an envelope whose lower-case hex digest
// starts with prefix (itself lower-cased).
func PatternDigestHexPrefix(prefix string) Pattern {
	return Pattern{Kind: KindDigest, digestSub: digestHexPrefix, digestHexVal: prefix}
}

// PatternDigestBinaryRegex matches an envelope whose raw 32-byte digest
// matches expr.
func PatternDigestBinaryRegex(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, constructionErrorf("Digest.BinaryRegex", "%w", err)
	}
	return Pattern{Kind: KindDigest, digestSub: digestBinaryRegex, digestRegexVal: re}, nil
}

// PatternObscuredAny matches any obscured (Elided, Encrypted or
// Compressed) envelope.
func PatternObscuredAny() Pattern {
	return Pattern{Kind: KindObscured, obscuredSub: obscuredAny}
}

// PatternObscuredElided matches only an Elided envelope.
func PatternObscuredElided() Pattern {
	return Pattern{Kind: KindObscured, obscuredSub: obscuredElided}
}

// PatternObscuredEncrypted matches only an Encrypted envelope.
func PatternObscuredEncrypted() Pattern {
	return Pattern{Kind: KindObscured, obscuredSub: obscuredEncrypted}
}

// PatternObscuredCompressed matches only a Compressed envelope.
func PatternObscuredCompressed() Pattern {
	return Pattern{Kind: KindObscured, obscuredSub: obscuredCompressed}
}
