package pattern

// Axis identifies which navigation step a PushAxis instruction performs.
type Axis int

const (
	// AxisSubject navigates a Node to its subject; for every other variant
	// it yields the envelope itself (spec §4.3's Subject fallback).
	AxisSubject Axis = iota
	// AxisAssertions navigates a Node to each of its assertions, in
	// canonical digest order.
	AxisAssertions
	// AxisPredicate navigates an Assertion to its predicate.
	AxisPredicate
	// AxisObject navigates an Assertion to its object.
	AxisObject
	// AxisWrapped navigates a Wrapped envelope to its inner envelope.
	AxisWrapped
)

// Op identifies a VM instruction.
type Op int

const (
	// OpMatch tests the current envelope against an atomic pattern. On
	// success the thread continues to the next instruction without
	// growing its path; on failure the thread dies.
	OpMatch Op = iota
	// OpCheck probes a sub-pattern (optionally navigated along an axis
	// first) against the current envelope without consuming any
	// instructions or growing the path, succeeding or failing the thread
	// depending on Invert. It generalizes Not, the per-operand checks of
	// And, and the predicate/object-scoped checks of Assertions.With*.
	OpCheck
	// OpSplit forks the thread: it continues at PC+1, and pushes a
	// deferred thread that resumes at Target. Pushing (rather than
	// running immediately) preserves the declared alternative order so
	// that whichever arm is tried first wins ties, matching the
	// greediness rules for Or and Repeat.
	OpSplit
	// OpJump transfers control unconditionally to Target.
	OpJump
	// OpPushAxis fans the thread out over every child reachable along
	// Axis from the current envelope, extending each child thread's path
	// by that child and continuing execution at PC+1 once per child. It
	// does no filtering of its own; Assertions.With* follow it with an
	// OpCheck.
	OpPushAxis
	// OpSearch performs the Search combinator's non-recursive pre-order
	// walk: it fans out over the current envelope and every descendant
	// reachable via AxisSubject, AxisAssertions, AxisPredicate, AxisObject
	// and AxisWrapped, probing Inner against each visited envelope. For
	// every descendant where Inner matches, it continues at PC+1 once per
	// Inner match, with the path extended through the full chain of
	// traversed envelopes from the current envelope down to the
	// descendant, then through Inner's own matched tail.
	OpSearch
	// OpAccept records the thread's current path as a match and ends the
	// thread. Every compiled program has exactly the accepting states its
	// pattern structurally requires, but each converges on emitting via
	// this one instruction.
	OpAccept
)

// Instr is one instruction of a compiled Program.
type Instr struct {
	Op Op

	// Pat is the atomic pattern tested by OpMatch, or the sub-pattern
	// probed by OpCheck.
	Pat *Pattern

	// Invert negates OpCheck's result (Not, negative probes).
	Invert bool

	// UseAxis/Axis tell OpCheck to navigate along Axis before probing Pat
	// (used by Assertions.WithPredicate/WithObject, which must check the
	// predicate/object of each candidate assertion rather than the
	// assertion itself).
	UseAxis bool
	Axis    Axis

	// Inner is the sub-pattern OpSearch tests against every envelope it
	// visits.
	Inner *Pattern

	// Target is the jump destination for OpSplit and OpJump.
	Target int
}

// Program is a compiled, linear sequence of instructions executed by the
// VM starting at PC 0.
type Program struct {
	Instrs []Instr
}

func newProgram() *Program { return &Program{} }

// emit appends instr and returns its index, so callers can patch Target
// fields of earlier instructions (e.g. Split, Jump) once the destination
// is known.
func (p *Program) emit(instr Instr) int {
	p.Instrs = append(p.Instrs, instr)
	return len(p.Instrs) - 1
}

func (p *Program) here() int { return len(p.Instrs) }
