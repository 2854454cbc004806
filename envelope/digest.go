package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is the content-addressed identifier carried by every envelope
// variant. Two envelopes with equal digests are considered the same node
// for path comparison and deduplication purposes.
type Digest [32]byte

// Hex returns the lower-case hexadecimal representation of the digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// HasHexPrefix reports whether the digest's lower-case hex form starts with
// the given prefix, itself lower-cased first.
func (d Digest) HasHexPrefix(prefix string) bool {
	return strings.HasPrefix(d.Hex(), strings.ToLower(prefix))
}

// DigestFromHex parses a 64-character hex string into a Digest, for
// callers (fixtures, CLI flags, PatternDigestExact literals) that carry
// digests as text rather than computing them from content.
func DigestFromHex(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, fmt.Errorf("envelope: invalid digest hex: %w", err)
	}
	if len(b) != len(Digest{}) {
		return Digest{}, fmt.Errorf("envelope: digest hex must decode to %d bytes, got %d", len(Digest{}), len(b))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// digestTag distinguishes the variant contributing to a digest computation
// so that, e.g., a Leaf and a KnownValue with coincidentally similar
// encodings never collide.
type digestTag byte

const (
	tagLeaf digestTag = iota
	tagNode
	tagWrapped
	tagAssertion
	tagKnownValue
	tagElided
	tagEncrypted
	tagCompressed
)

func digestOf(tag digestTag, parts ...[]byte) Digest {
	h := sha256.New()
	h.Write([]byte{byte(tag)})
	for _, p := range parts {
		h.Write(p)
	}
	return Digest(h.Sum(nil))
}
