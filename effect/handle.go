// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// OpFunc implements one operation of a handler. For NoResume/NoResumeX it
// is called after the stack has already unwound to the handler's frame and
// its return value becomes the result Install returns (or is passed to the
// handler's Result function). For TailNoop/Tail it is called synchronously
// at the Invoke call site and its return value is the resumed value —
// there is no separate "did it resume" signal (see DESIGN.md): an opfun
// that must not resume instead performs a NoResume-kind operation (Throw,
// typically), which unwinds past this call via panic/recover before this
// OpFunc ever returns.
type OpFunc func(rt *Runtime, local *Value, arg Value) Value

// GeneralOpFunc implements one Scoped- or General-kind operation. Unlike
// OpFunc it does not return the resumed value directly; it receives a
// resume function and decides for itself how many times — zero, one, or
// (General only) many — to call it, and its own return value becomes the
// operation's result. Calling resume runs the rest of the suspended
// computation forward and returns whatever that computation eventually
// produces (either a further nested call into this same GeneralOpFunc, or
// the handled computation's final value).
type GeneralOpFunc func(rt *Runtime, local *Value, arg Value, resume func(Value) Value) Value

// HandlerDef describes one installable handler: the effect it handles, one
// OpFunc per operation (nil entries Forward), one GeneralOpFunc per
// Scoped/General operation at the same index (the two tables are disjoint:
// an index is populated in exactly one of them, per its OpDef.Kind), and
// optional Acquire/Release/Result hooks mirroring spec's effect-handler
// frame fields. A single HandlerDef can mix all seven operation kinds.
type HandlerDef struct {
	Effect  *EffectDef
	Acquire func() Value
	Release func(local Value)
	Result  func(local, arg Value) Value
	Ops     []OpFunc
	General []GeneralOpFunc
}

// noResumeSignal is the panic payload used to unwind the Go call stack
// back to the handler frame that owns a NoResume/NoResumeX operation. It
// is never observable to user code: Install's deferred recover consumes it
// at exactly the matching frame and re-panics it otherwise, so it
// propagates past intervening handler frames exactly like a native
// longjmp would skip intervening stack.
type noResumeSignal struct {
	frame *handlerFrame
	ref   OpRef
	arg   Value
}

// Install installs def as a handler, pushes its frame onto rt, and runs
// body. If body returns normally, the frame is popped and def.Result (if
// set) is applied to the local state and body's return value; otherwise it
// is passed through unchanged. Distinct from the package's generic [Handle],
// which drives the captured-continuation layer's Cont-based computations
// instead of this direct-dispatch one.
//
// If a NoResume/NoResumeX operation targets this handler, body will not
// return normally — control reaches this point via the deferred recover
// below, which runs the operation's OpFunc and, on normal operation-kind
// completion, still applies def.Result exactly as the normal-return path
// does, so the handler stack's depth is always restored to what it was
// before Install was called.
func Install(rt *Runtime, def *HandlerDef, body func(rt *Runtime) Value) (result Value) {
	var local Value
	if def.Acquire != nil {
		local = def.Acquire()
	}
	hf := &handlerFrame{effect: def.Effect, ops: def.Ops, general: def.General, local: local, result: def.Result, release: def.Release}
	frameIdx := len(rt.frames)
	rt.push(hf)

	handled := false
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sig, ok := r.(*noResumeSignal)
		if !ok || sig.frame != hf {
			// Not ours: make sure our frame is gone, then let it keep unwinding.
			if len(rt.frames) > frameIdx {
				rt.popUpToAndRelease(frameIdx)
			}
			panic(r)
		}
		handled = true
		rt.unwinding = false
		// Pop our own frame, as the normal-return path does, before the
		// opfun runs.
		for len(rt.frames) > frameIdx {
			rt.pop()
		}
		v := callOpFunc(rt, hf, sig.ref, sig.arg)
		if hf.release != nil {
			hf.release(hf.local)
		}
		if hf.result != nil {
			result = hf.result(hf.local, v)
		} else {
			result = v
		}
	}()

	v := body(rt)
	if handled {
		return result
	}
	// Normal return: pop exactly our frame (it must be on top; nothing
	// above us should still be here once body has returned).
	popped := rt.pop()
	if popped != hf {
		reportFatal("effect: handler stack corrupted on normal return")
		panic("effect: handler stack corrupted on normal return")
	}
	if hf.release != nil {
		hf.release(hf.local)
	}
	if hf.result != nil {
		return hf.result(hf.local, v)
	}
	return v
}

// popUpToAndRelease pops frames down to (but not including) idx, running
// Release hooks for any effect-handler frames encountered — used when an
// unwind signal belongs to an outer frame and passes through frames this
// Install call owns.
func (rt *Runtime) popUpToAndRelease(idx int) {
	for len(rt.frames) > idx {
		f := rt.pop()
		if hf, ok := f.(*handlerFrame); ok && hf.release != nil {
			hf.release(hf.local)
		}
	}
}

func callOpFunc(rt *Runtime, hf *handlerFrame, ref OpRef, arg Value) Value {
	op := hf.ops[ref.Index]
	return op(rt, &hf.local, arg)
}

// Invoke performs one operation on the direct-dispatch layer, dispatching
// per its OperationKind. For Scoped/General it drives the GeneralOpFunc
// synchronously with a resume function that is identity (resume(v) == v):
// calling it models "produce v as this operation's result", since an
// ordinary Go function body has no way to be resumed a second time or from
// outside this call. An opfun that needs genuine multi-shot resumption, or
// to resume from outside its own dynamic extent, must instead be driven
// through [InstallGeneral]/[InvokeGeneral], which runs it against a
// captured-continuation-layer body where a resume call can recur.
func Invoke(rt *Runtime, ref OpRef, arg Value) Value {
	hf, idx := rt.find(ref)
	kind := ref.Kind()
	switch kind {
	case NoResume, NoResumeX:
		// Left true until the unwind reaches its target handler frame (see
		// Install's recover branch), so every frame's Release that merely
		// gets passed through on the way there observes Unwinding()==true.
		rt.unwinding = true
		panic(&noResumeSignal{frame: hf, ref: ref, arg: arg})
	case TailNoop:
		return callOpFunc(rt, hf, ref, arg)
	case Tail:
		skipped := len(rt.frames) - 1 - idx
		sf := &skipFrame{toskip: skipped + 1}
		rt.push(sf)
		defer func() {
			// The opfun may itself unwind past us (e.g. it throws); make
			// sure the skip frame never survives that unwind.
			if top := rt.top(); top == sf {
				rt.pop()
			}
		}()
		return callOpFunc(rt, hf, ref, arg)
	case Scoped, General:
		return callGeneralOpFunc(rt, hf, ref, arg, identityResumeValue)
	default:
		// Forward never reaches here: a handler expresses "forward" by
		// leaving both HandlerDef.Ops[i] and General[i] nil, which find
		// already treats as absent and skips past.
		panic("effect: " + kind.String() + " operation performed through Invoke")
	}
}

// identityResumeValue is the resume function Invoke gives a General/Scoped
// opfun: there is no further computation to drive forward, so resuming is
// just handing the value back.
func identityResumeValue(v Value) Value { return v }

// callGeneralOpFunc runs hf's GeneralOpFunc for ref, bracketing the call
// with a fragmentFrame/scopedFrame pair so the handler stack reflects the
// yield per fragmentFrame's doc comment, and so a Scoped resume attempted
// after the opfun has returned is rejected.
func callGeneralOpFunc(rt *Runtime, hf *handlerFrame, ref OpRef, arg Value, resume func(Value) Value) Value {
	fr := &fragmentFrame{frames: []frame{hf}}
	rt.push(fr)
	sf := &scopedFrame{live: true}
	rt.push(sf)
	defer func() {
		sf.live = false
		if rt.top() == sf {
			rt.pop()
		}
		if rt.top() == fr {
			rt.pop()
		}
	}()
	gf := hf.general[ref.Index]
	return gf(rt, &hf.local, arg, func(v Value) Value {
		if ref.Kind() == Scoped && !sf.live {
			panic("effect: Scoped continuation resumed outside its opfun's call")
		}
		return resume(v)
	})
}
