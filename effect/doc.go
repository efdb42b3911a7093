// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package effect is a user-space algebraic-effect runtime with first-class
// delimited continuations.
//
// It has two complementary layers sharing one handler stack ([Runtime]),
// chosen per operation and per caller so that each operation gets the
// cheapest correct implementation:
//
//   - The direct-dispatch layer ([Runtime], [Install], [Invoke]): a dynamic
//     handler stack that dispatches every operation kind as an ordinary Go
//     call. Forward/NoResume/NoResumeX/TailNoop/Tail are resolved without
//     ever materializing a continuation, using panic/recover to unwind to
//     the owning handler frame when an operation does not resume. Scoped
//     and General are also reachable here, with resume-exactly-once
//     synchronous semantics — sufficient for an opfun that does not need to
//     resume zero or several times or outlive its own call.
//   - The captured-continuation layer ([Cont], [Shift], [Reset], [Handler],
//     [Step], [InvokeGeneral], [InstallGeneral]): a Scoped/General operation
//     performed through [InvokeGeneral] from a computation written in
//     continuation-passing style yields a reusable Go closure instead of
//     resolving inline, letting its [GeneralOpFunc] call resume zero, one,
//     or many times (the ambiguous-choice/amb pattern) or hand it to code
//     running later on the same goroutine — something a plain Go function
//     body, lacking Invoke's resume-once shortcut, cannot do on its own.
//     [InstallGeneral] dispatches these against the very same [HandlerDef]
//     and handler-stack frame [Install] would use for the other five kinds.
//     For external event loops that must drive a computation one suspension
//     at a time there is also a defunctionalized frame chain ([Expr]) plus
//     a one-shot [Suspension] handle.
//
// Neither layer copies goroutine stack memory or saves CPU registers —
// captured continuations are ordinary heap-allocated Go closures or frame
// structs, which is the direct, idiomatic Go analogue of the native
// stack-snapshot-plus-jump-context technique used by C implementations of
// the same model (see the package's design notes for the full discussion of
// that substitution).
//
// # Direct Dispatch
//
// An [EffectDef] is a named, ordered list of [OpDef]s, each carrying an
// [OperationKind] that fixes its resumption discipline. A [HandlerDef]
// supplies one [OpFunc] per operation (or leaves it nil to [Forward] past
// this handler) and, for any Scoped/General operations, one [GeneralOpFunc]
// at the same index. [Install] pushes a handler frame onto the calling
// goroutine's [Runtime] and runs a body function; [Invoke] looks up the
// nearest enclosing handler for an operation and dispatches according to
// its kind:
//
//   - [NoResume], [NoResumeX]: the opfun never resumes. Invoke panics with
//     an internal unwind signal that Install's deferred recover consumes at
//     exactly the frame that owns the operation, then runs the opfun. This
//     is how [Throw]/[Try]/[TryAll] are implemented.
//   - [TailNoop], [Tail]: the opfun runs synchronously inline and its
//     return value is the resumed value — an ordinary function call, no
//     unwind, no materialized continuation. [Tail] additionally pushes a
//     skip frame so nested Invoke calls from the opfun cannot re-enter the
//     handler they are currently running inside of.
//   - [Scoped], [General]: the GeneralOpFunc runs synchronously inline,
//     bracketed by a fragment/scoped frame pair (see fragmentFrame's doc
//     comment), with a resume function that simply returns its argument —
//     calling it more than once, or after the opfun returns, is rejected
//     for Scoped and simply redundant for General, since there is no
//     further computation for either to drive forward through Invoke alone.
//   - [Forward]: no opfun is registered; the search continues past this
//     frame to the next enclosing handler for the same effect.
//
// [Defer] and [Finally] are linear handlers built on this layer: they are
// installed and torn down at matching lexical scope boundaries and never
// need first-class capture.
//
// # Captured Continuations
//
// A [Scoped] or [General] operation whose handler must call resume more
// than once (an ambiguous-choice effect resuming with both branches), or
// hand it to code running after the opfun returns (an async I/O callback
// firing later on the same goroutine), needs an actual reusable
// continuation rather than Invoke's resume-once shortcut. [InvokeGeneral]
// performs such an operation from a computation expressed with [Cont],
// [Perform]/[Bind]/[Return], or the delimited control operators
// [Shift]/[Reset], yielding a closure continuation instead of resolving
// inline; [InstallGeneral] drives that computation to completion against
// the same [Runtime]/[HandlerDef] [Install] uses. See the sibling asyncio
// package for req_await, the prototypical General consumer — it resumes
// its captured goroutine exactly once but from outside the opfun's call,
// so it uses a channel-parked goroutine rather than InvokeGeneral/Cont
// (see DESIGN.md for why that is the more idiomatic Go fit there).
//
// Minimal monad operations: [Return] (unit) and [Bind] (sequencing) are
// necessary and sufficient; [Map] and [Then] are allocation-avoiding
// derived forms.
//
// # Stepping Boundary
//
// [Step] and [StepExpr] provide one-effect-at-a-time evaluation for
// external runtimes that drive computation asynchronously (e.g. an event
// loop). Unlike [Handle]/[HandleExpr], which run a synchronous trampoline
// to completion, the stepping API yields control at each suspension,
// returning a one-shot [Suspension] that panics if resumed twice.
//
// Nil completion convention: effect runners and stepping treat a nil
// resumed value as "completed with the zero value." Computations whose
// final result type is a pointer or interface cannot use nil as a
// meaningful result; wrap such results in [Either] if "completed with nil"
// must be distinguished from "completed with zero."
//
// # Standard Effects
//
// State ([Get]/[Put]/[Modify], [StateHandler], [RunState]/[EvalState]/[ExecState]),
// Reader ([Ask], [ReaderHandler], [RunReader]), Writer ([Tell]/[Listen]/[Censor],
// [WriterHandler], [RunWriter]/[ExecWriter]), and Error ([Throw]/[Catch],
// [RunError], returning [Either]) are all captured-continuation effects —
// each dispatch returns (resumeValue, true) to continue or (finalResult,
// false) to short-circuit. Composed handlers (State+Reader, State+Error,
// State+Writer, Reader+State+Error) dispatch several effect families from
// one handler to avoid nested-runner overhead.
//
// # Resource Safety
//
// [Bracket] (acquire–use–release with guaranteed cleanup) and [OnError]
// (cleanup only on error) are built from [CatchError]. [Affine] wraps a
// plain continuation with the same one-shot enforcement [Suspension] gives
// captured continuations.
//
// # Bridge: Reify / Reflect
//
// [Reify] converts a closure-based computation into the defunctionalized
// [Expr] form; [Reflect] is its inverse, following Filinski (1994): reify
// turns a semantic value into a syntactic one, reflect the other way.
// Conversion is lazy for effectful computations.
package effect
