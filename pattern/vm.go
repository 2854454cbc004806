package pattern

import (
	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
	"github.com/blockchaincommons/bc-envelope-pattern-go/path"
)

// thread is one position in the backtracking search: a program counter,
// the envelope it is currently positioned at, and the path taken to get
// there from the root.
type thread struct {
	pc   int
	env  *envelope.Envelope
	path path.Path
}

// engine holds the mutable state shared by every thread spawned while
// running one Program: the deferred-thread stack and a budget bounding
// how many threads the run may ever spawn, so a pathological pattern
// (unbounded Repeat nested in unbounded Search, say) fails fast with
// LimitExceededError instead of exhausting memory.
type engine struct {
	stack  []thread
	budget int // remaining spawns allowed; < 0 means unlimited
	limit  int
}

func (e *engine) spawn(t thread) bool {
	if e.budget == 0 {
		return false
	}
	if e.budget > 0 {
		e.budget--
	}
	e.stack = append(e.stack, t)
	return true
}

// Run executes prog against root with no limit on the number of threads
// it may spawn. It is used internally for OpCheck's probes, which
// therefore run without a thread cap; the public, user-facing entry
// point is RunLimited.
func Run(prog *Program, root *envelope.Envelope) []path.Path {
	paths, _ := runEngine(prog, root, -1)
	return paths
}

// RunLimited executes prog against root, returning LimitExceededError if
// the search would need to spawn more than maxThreads threads to
// complete. All partial results are discarded when the limit is hit: a
// match search is all-or-nothing, not a best-effort truncation.
func RunLimited(prog *Program, root *envelope.Envelope, maxThreads int) ([]path.Path, error) {
	return runEngine(prog, root, maxThreads)
}

func runEngine(prog *Program, root *envelope.Envelope, maxThreads int) ([]path.Path, error) {
	var results []path.Path
	eng := &engine{
		stack:  []thread{{pc: 0, env: root, path: path.Path{root}}},
		budget: maxThreads,
		limit:  maxThreads,
	}
	for len(eng.stack) > 0 {
		t := eng.stack[len(eng.stack)-1]
		eng.stack = eng.stack[:len(eng.stack)-1]
		if !runThread(prog, t, eng, &results) {
			return nil, &LimitExceededError{Limit: eng.limit}
		}
	}
	return path.Dedup(results), nil
}

// runThread advances t instruction by instruction until it dies, accepts,
// or forks. Forks continue the preferred branch in place (so the
// preferred alternative is always explored to completion before any
// deferred one) and push every other branch onto the engine's stack for
// later exploration in the order they were declared. It returns false if
// the engine's thread budget was exhausted while forking.
func runThread(prog *Program, t thread, eng *engine, results *[]path.Path) bool {
	for {
		if t.pc < 0 || t.pc >= len(prog.Instrs) {
			return true // malformed program; treat as a dead thread
		}
		instr := prog.Instrs[t.pc]
		switch instr.Op {
		case OpMatch:
			if !matchAtomic(instr.Pat, t.env) {
				return true
			}
			t.pc++

		case OpCheck:
			ok := probe(instr.Pat, instr.Axis, instr.UseAxis, t.env)
			if instr.Invert {
				ok = !ok
			}
			if !ok {
				return true
			}
			t.pc++

		case OpJump:
			t.pc = instr.Target

		case OpSplit:
			if !eng.spawn(thread{pc: instr.Target, env: t.env, path: t.path}) {
				return false
			}
			t.pc++

		case OpPushAxis:
			children := axisChildren(instr.Axis, t.env)
			if len(children) == 0 {
				return true
			}
			if !spawnDeferred(eng, children[1:], t.pc+1, t.path) {
				return false
			}
			t.env = children[0]
			t.path = t.path.Extend(children[0])
			t.pc++

		case OpSearch:
			var candidates []searchCandidate
			for _, chain := range searchChains(t.env) {
				node := chain.Last()
				// Each nested run gets the remaining budget, so a runaway
				// Inner (an unbounded Repeat, say) hits the cap too.
				tails, err := runEngine(Compile(*instr.Inner), node, eng.budget)
				if err != nil {
					return false
				}
				for _, tail := range tails {
					full := t.path
					for _, x := range chain[1:] {
						full = full.Extend(x)
					}
					for _, x := range tail[1:] {
						full = full.Extend(x)
					}
					candidates = append(candidates, searchCandidate{env: tail.Last(), path: full})
				}
			}
			if len(candidates) == 0 {
				return true
			}
			if !spawnSearchCandidates(eng, candidates[1:], t.pc+1) {
				return false
			}
			t.env = candidates[0].env
			t.path = candidates[0].path
			t.pc++

		case OpAccept:
			*results = append(*results, t.path.Clone())
			return true

		default:
			return true
		}
	}
}

// spawnDeferred spawns one thread per remaining child so that, once the
// first (already-inlined) child's exploration is exhausted, the stack
// yields the rest in the order they were declared. It returns false as
// soon as the engine's budget is exhausted.
func spawnDeferred(eng *engine, children []*envelope.Envelope, pc int, base path.Path) bool {
	for i := len(children) - 1; i >= 0; i-- {
		if !eng.spawn(thread{pc: pc, env: children[i], path: base.Extend(children[i])}) {
			return false
		}
	}
	return true
}

// searchCandidate is one (final envelope, full path) pair OpSearch may
// resume a thread from: path runs from the search's starting envelope,
// through the traversed chain down to a viable descendant, through that
// descendant's own Inner match tail.
type searchCandidate struct {
	env  *envelope.Envelope
	path path.Path
}

// spawnSearchCandidates spawns one thread per candidate so that, once the
// first (already-inlined) candidate's exploration is exhausted, the stack
// yields the rest in the order they were declared.
func spawnSearchCandidates(eng *engine, candidates []searchCandidate, pc int) bool {
	for i := len(candidates) - 1; i >= 0; i-- {
		if !eng.spawn(thread{pc: pc, env: candidates[i].env, path: candidates[i].path}) {
			return false
		}
	}
	return true
}

// axisChildren returns the envelopes reachable from e along axis, in
// canonical order.
func axisChildren(axis Axis, e *envelope.Envelope) []*envelope.Envelope {
	switch axis {
	case AxisSubject:
		if s, ok := e.Subject(); ok {
			return []*envelope.Envelope{s}
		}
		// Non-Node variants are their own subject (spec's Subject
		// fallback): navigating does not change position.
		return []*envelope.Envelope{e}
	case AxisAssertions:
		return e.Assertions()
	case AxisPredicate:
		if p, ok := e.Predicate(); ok {
			return []*envelope.Envelope{p}
		}
		return nil
	case AxisObject:
		if o, ok := e.Object(); ok {
			return []*envelope.Envelope{o}
		}
		return nil
	case AxisWrapped:
		if w, ok := e.Wrapped(); ok {
			return []*envelope.Envelope{w}
		}
		return nil
	default:
		return nil
	}
}

// probe reports whether pat (navigated along axis first, when useAxis is
// set) has at least one matching path starting at e. It compiles and
// runs a nested program rather than inlining pat's byte-code, so forks
// and navigation inside pat can never leak threads into the caller's
// program; this realizes NotMatch (and And's per-operand checks, and
// Assertions.With*'s predicate/object scoping) without special-casing
// every combinator that might appear inside the probed pattern.
func probe(pat *Pattern, axis Axis, useAxis bool, e *envelope.Envelope) bool {
	if !useAxis {
		return len(Run(Compile(*pat), e)) > 0
	}
	for _, child := range axisChildren(axis, e) {
		if len(Run(Compile(*pat), child)) > 0 {
			return true
		}
	}
	return false
}

// searchOrder returns e and every descendant reachable via AxisSubject,
// AxisAssertions, AxisPredicate, AxisObject and AxisWrapped, visited
// depth-first pre-order (e first, then each child's subtree in turn).
func searchOrder(e *envelope.Envelope) []*envelope.Envelope {
	chains := searchChains(e)
	order := make([]*envelope.Envelope, len(chains))
	for i, c := range chains {
		order[i] = c.Last()
	}
	return order
}

// searchChains returns, for e and every descendant reachable via
// AxisSubject, AxisAssertions, AxisPredicate, AxisObject and AxisWrapped,
// the path from e down to that descendant, visited depth-first pre-order
// (e's own one-element path first, then each child's subtree in turn).
// This is the traversal chain OpSearch grafts onto a thread's path, so
// Search emits the full root-to-match route rather than a single jump
// from the search root to the match.
func searchChains(e *envelope.Envelope) []path.Path {
	var chains []path.Path
	type frame struct{ p path.Path }
	stack := []frame{{path.Path{e}}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		chains = append(chains, f.p)

		cur := f.p.Last()
		var children []*envelope.Envelope
		if s, ok := cur.Subject(); ok {
			children = append(children, s)
		}
		children = append(children, cur.Assertions()...)
		if p, ok := cur.Predicate(); ok {
			children = append(children, p)
		}
		if o, ok := cur.Object(); ok {
			children = append(children, o)
		}
		if w, ok := cur.Wrapped(); ok {
			children = append(children, w)
		}
		// Push in reverse so the stack (LIFO) pops them in declared
		// order, giving a pre-order traversal.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.p.Extend(children[i])})
		}
	}
	return chains
}
