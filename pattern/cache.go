package pattern

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"regexp"
	"sync"
	"sync/atomic"
)

// programCache caches compiled Programs keyed by a structural digest of
// the Pattern tree that produced them, exactly as the teacher's AST
// cache keys parsed trees by a digest of their source text: compiling is
// the expensive, purely-functional step, so a Pattern value that compares
// structurally equal never needs to be recompiled.
type programCache struct {
	programs sync.Map // string -> *Program
	hits     atomic.Int64
	misses   atomic.Int64
}

var defaultCache = &programCache{}

// CacheStats reports the default program cache's cumulative hit/miss
// counts, for diagnostics and the CLI's cache-stats command.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// Stats returns the current hit/miss counters of the package-level
// program cache.
func Stats() CacheStats {
	return CacheStats{Hits: defaultCache.hits.Load(), Misses: defaultCache.misses.Load()}
}

// CompileCached compiles pat, reusing a previously compiled Program for a
// structurally identical pattern when one is cached.
func CompileCached(pat Pattern) *Program {
	return defaultCache.compile(pat)
}

// Digest returns the structural digest CompileCached uses to key pat in
// the program cache, exposed so callers outside this package (the audit
// log, in particular) can correlate telemetry with a specific pattern
// without re-deriving the hash themselves.
func Digest(pat Pattern) string {
	return digestPattern(&pat)
}

func (c *programCache) compile(pat Pattern) *Program {
	key := digestPattern(&pat)
	if v, ok := c.programs.Load(key); ok {
		c.hits.Add(1)
		return v.(*Program)
	}
	prog := Compile(pat)
	c.programs.LoadOrStore(key, prog)
	c.misses.Add(1)
	return prog
}

// digestPattern computes a stable hex digest of p's structure: its Kind,
// every field relevant to that Kind, and (recursively) its inner pattern
// and operands. Two Pattern values built by the same construction calls
// always yield the same digest, even across separate construction, which
// is what lets CompileCached avoid recompiling equivalent patterns built
// at different call sites (e.g. inside a loop). Registry-backed Tag and
// KnownValue patterns are keyed by registry identity, so they share a
// digest only when built against the same registry value.
func digestPattern(p *Pattern) string {
	h := sha256.New()
	writePattern(h, p)
	return hex.EncodeToString(h.Sum(nil))
}

func writePattern(h hash.Hash, p *Pattern) {
	writeInt(h, int(p.Kind))
	switch p.Kind {
	case KindBool:
		writeInt(h, int(p.boolSub))
		writeBool(h, p.boolExactVal)
	case KindNumber:
		writeInt(h, int(p.numberSub))
		writeFloat(h, p.numberVal)
		writeFloat(h, p.numberLo)
		writeFloat(h, p.numberHi)
	case KindText:
		writeInt(h, int(p.textSub))
		writeString(h, p.textVal)
		writeRegex(h, p.textRegex)
	case KindByteString:
		writeInt(h, int(p.bsSub))
		h.Write(p.bsVal)
		writeRegex(h, p.bsRegex)
	case KindDate:
		writeInt(h, int(p.dateSub))
		writeString(h, p.dateVal.String())
		writeString(h, p.dateLo.String())
		writeString(h, p.dateHi.String())
		writeString(h, p.dateISO8601)
		writeRegex(h, p.dateRegex)
	case KindTag:
		writeInt(h, int(p.tagSub))
		writeUint(h, p.tagVal)
		writeString(h, p.tagName)
		writeRegex(h, p.tagRegex)
		writePointer(h, p.tagRegistry)
	case KindArray, KindMap:
		writeInt(h, int(p.countSub))
		writeInt(h, p.countLo)
		writeInt(h, p.countHi)
	case KindKnownValue:
		writeInt(h, int(p.kvSub))
		writeUint(h, p.kvVal)
		writeString(h, p.kvName)
		writeRegex(h, p.kvRegex)
		writePointer(h, p.kvRegistry)
	case KindCbor:
		writeInt(h, int(p.cborSub))
		if p.cborVal != nil {
			d := p.cborVal.Digest()
			h.Write(d[:])
		}
	case KindPredicate, KindObject, KindWrapped, KindNot, KindSearch:
		if p.inner != nil {
			writePattern(h, p.inner)
		}
	case KindAssertions:
		writeInt(h, int(p.assertionsSub))
		if p.inner != nil {
			writePattern(h, p.inner)
		}
	case KindNode:
		writeInt(h, int(p.nodeSub))
		writeInt(h, p.countLo)
		writeInt(h, p.countHi)
	case KindDigest:
		writeInt(h, int(p.digestSub))
		h.Write(p.digestVal[:])
		writeString(h, p.digestHexVal)
		writeRegex(h, p.digestRegexVal)
	case KindObscured:
		writeInt(h, int(p.obscuredSub))
	case KindAnd, KindOr, KindSequence:
		writeInt(h, len(p.operands))
		for i := range p.operands {
			writePattern(h, &p.operands[i])
		}
	case KindRepeat:
		writeInt(h, p.repeatLo)
		writeInt(h, p.repeatHi)
		writeInt(h, int(p.repeatMode))
		if p.inner != nil {
			writePattern(h, p.inner)
		}
	}
}

func writeInt(h hash.Hash, v int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeFloat(h hash.Hash, f float64) {
	writeString(h, fmt.Sprintf("%x", f))
}

func writeBool(h hash.Hash, b bool) {
	if b {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
}

func writeString(h hash.Hash, s string) {
	writeInt(h, len(s))
	h.Write([]byte(s))
}

func writeRegex(h hash.Hash, re *regexp.Regexp) {
	if re == nil {
		writeInt(h, -1)
		return
	}
	writeString(h, re.String())
}

func writePointer(h hash.Hash, p interface{}) {
	writeString(h, fmt.Sprintf("%p", p))
}
