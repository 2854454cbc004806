// Package pattern implements the pattern algebra, the compiler that
// lowers a Pattern into a byte-code Program, and the backtracking virtual
// machine that runs a Program against an envelope.Envelope, producing
// every root-to-match path.
//
// Patterns are modeled as a single tagged struct rather than as an
// interface with one implementation per case. This keeps the compiler
// and VM total functions over a finite, closed alphabet (a switch over
// Kind) instead of a virtual method per predicate, at the cost of a
// handful of fields whose meaning depends on Kind — the same shape the
// rest of this codebase's query types use.
package pattern

import (
	"regexp"
	"time"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
	"github.com/blockchaincommons/bc-envelope-pattern-go/registry"
)

// Kind identifies which case of the pattern sum type a Pattern value
// holds.
type Kind int

const (
	KindAny Kind = iota
	KindNone

	// Leaf predicates.
	KindBool
	KindNumber
	KindText
	KindByteString
	KindDate
	KindTag
	KindArray
	KindMap
	KindNull
	KindKnownValue
	KindCbor

	// Structure predicates.
	KindSubject
	KindPredicate
	KindObject
	KindAssertions
	KindWrapped
	KindNode
	KindDigest
	KindObscured

	// Combinators.
	KindAnd
	KindOr
	KindNot
	KindSequence
	KindRepeat
	KindSearch
)

// Unbounded marks the open end of an inclusive integer range (assertion
// counts, array/map element counts, repeat bounds).
const Unbounded = -1

// Greediness selects a Repeat pattern's backtracking policy.
type Greediness int

const (
	Greedy Greediness = iota
	Lazy
	Possessive
)

type (
	boolSub       int
	numberSub     int
	textSub       int
	bsSub         int
	dateSub       int
	tagSub        int
	countSub      int
	kvSub         int
	cborSub       int
	assertionsSub int
	wrappedSub    int
	nodeSub       int
	digestSub     int
	obscuredSub   int
)

const (
	boolAny boolSub = iota
	boolExact
)

const (
	numberAny numberSub = iota
	numberExact
	numberRange
	numberGT
	numberGE
	numberLT
	numberLE
	numberNaN
)

const (
	textAny textSub = iota
	textExact
	textRegex
)

const (
	bsAny bsSub = iota
	bsExact
	bsRegex
)

const (
	dateAny dateSub = iota
	dateExact
	dateRange
	dateEarliest
	dateLatest
	dateISO8601
	dateRegex
)

const (
	tagAny tagSub = iota
	tagValue
	tagNamed
	tagRegex
)

const (
	countAny countSub = iota
	countRange
)

const (
	kvAny kvSub = iota
	kvExact
	kvNamed
	kvRegex
)

const (
	cborAny cborSub = iota
	cborExact
)

const (
	assertionsAny assertionsSub = iota
	assertionsWithPredicate
	assertionsWithObject
)

const (
	wrappedAny wrappedSub = iota
	wrappedInner
)

const (
	nodeAny nodeSub = iota
	nodeAssertionsCount
)

const (
	digestExact digestSub = iota
	digestHexPrefix
	digestBinaryRegex
)

const (
	obscuredAny obscuredSub = iota
	obscuredElided
	obscuredEncrypted
	obscuredCompressed
)

// Pattern is a single value of the pattern algebra described in the
// project spec §3.3. Only the fields relevant to Kind are meaningful; see
// the per-family constructor files (leaf.go, structure.go, combinator.go)
// for which fields each Kind uses.
type Pattern struct {
	Kind Kind

	boolSub      boolSub
	boolExactVal bool

	numberSub numberSub
	numberVal float64 // Exact / GT / GE / LT / LE operand
	numberLo  float64
	numberHi  float64

	textSub   textSub
	textVal   string
	textRegex *regexp.Regexp

	bsSub   bsSub
	bsVal   []byte
	bsRegex *regexp.Regexp

	dateSub    dateSub
	dateVal    time.Time
	dateLo     time.Time
	dateHi     time.Time
	dateISO8601 string
	dateRegex  *regexp.Regexp

	tagSub      tagSub
	tagVal      uint64
	tagName     string
	tagRegex    *regexp.Regexp
	tagRegistry *registry.TagRegistry

	// countSub/countLo/countHi serve three different Kinds: Array,
	// Map, and Node(AssertionsCount) — whichever Kind is set determines
	// which "count" the bounds refer to.
	countSub countSub
	countLo  int
	countHi  int

	kvSub      kvSub
	kvVal      uint64
	kvName     string
	kvRegex    *regexp.Regexp
	kvRegistry *registry.KnownValueRegistry

	cborSub cborSub
	cborVal *envelope.Envelope

	// inner is reused by Predicate, Object, Wrapped(inner), Not, Search
	// and Repeat — each of those has exactly one sub-pattern.
	inner *Pattern

	assertionsSub assertionsSub

	wrappedSub wrappedSub

	nodeSub nodeSub

	digestSub      digestSub
	digestVal      envelope.Digest
	digestHexVal   string
	digestRegexVal *regexp.Regexp

	obscuredSub obscuredSub

	// operands is reused by And, Or and Sequence.
	operands []Pattern

	repeatLo   int
	repeatHi   int
	repeatMode Greediness
}

// PatternAny matches every envelope, emitting [e].
func PatternAny() Pattern { return Pattern{Kind: KindAny} }

// PatternNone matches nothing.
func PatternNone() Pattern { return Pattern{Kind: KindNone} }
