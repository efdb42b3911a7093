// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// OperationKind fixes an operation's resumption discipline at
// handler-registration time. The direct-dispatch layer (Runtime/Install/
// Invoke) uses it to choose the cheapest correct implementation, exactly
// as the reference design intends — Forward/NoResume*/Tail*/Scoped map to
// increasingly expensive Go-level mechanisms, with General the only kind
// that needs a materialized, arbitrarily-reusable continuation.
type OperationKind uint8

const (
	// Forward means no opfun is registered for this operation in this
	// handler; the yield propagates to the next enclosing handler.
	Forward OperationKind = iota

	// NoResumeX guarantees the operation never resumes and signals that
	// scoped-exit cleanups (Defer/Finally with do_release=false) may be
	// skipped while unwinding past them. Go's panic/recover always runs
	// deferred functions during unwind, so this implementation cannot
	// literally skip cleanups without resorting to process termination;
	// NoResumeX is therefore implemented identically to NoResume except
	// that the Runtime exposes Unwinding() so a
	// handler's Release function may choose to skip non-essential work.
	// See DESIGN.md for the full rationale.
	NoResumeX

	// NoResume guarantees the operation never resumes; scoped exits run
	// normally during unwind.
	NoResume

	// TailNoop guarantees at most one resume, in tail position, and that
	// the opfun invokes no further operations of its own — implemented as
	// a synchronous Go call with no skip frame.
	TailNoop

	// Tail guarantees at most one resume in tail position. A skip frame
	// is pushed for the duration of the opfun call so that any operation
	// it performs does not re-enter this handler.
	Tail

	// Scoped permits resuming only within the opfun's own call; the
	// continuation is not first-class outside it.
	Scoped

	// General permits resuming zero, one, or many times, possibly from
	// outside the opfun's dynamic extent. Requires a full captured
	// continuation (see the package's captured-continuation layer).
	General
)

func (k OperationKind) String() string {
	switch k {
	case Forward:
		return "Forward"
	case NoResumeX:
		return "NoResumeX"
	case NoResume:
		return "NoResume"
	case TailNoop:
		return "TailNoop"
	case Tail:
		return "Tail"
	case Scoped:
		return "Scoped"
	case General:
		return "General"
	default:
		return "OperationKind(?)"
	}
}

// OpDef declares one operation of an Effect: its name (for diagnostics)
// and its resumption discipline.
type OpDef struct {
	Name string
	Kind OperationKind
}

// EffectDef is a named, ordered list of operations. Two EffectDefs with
// the same Name but different identity (address) are distinct — handler
// lookup keys on the *EffectDef pointer, not on Name.
type EffectDef struct {
	Name string
	Ops  []OpDef
}

// OpRef identifies one operation by (effect, index); Index must match the
// operation's position in both EffectDef.Ops and the handler's Ops table.
type OpRef struct {
	Effect *EffectDef
	Index  int
}

func (r OpRef) def() OpDef { return r.Effect.Ops[r.Index] }

// Name returns the operation's diagnostic name.
func (r OpRef) Name() string { return r.Effect.Name + "." + r.def().Name }

// Kind returns the operation's resumption discipline.
func (r OpRef) Kind() OperationKind { return r.def().Kind }
