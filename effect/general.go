// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// generalSuspension is the value a Scoped/General operation yields when
// performed through InvokeGeneral: unlike the pooled genericMarker the
// captured-continuation layer's Perform uses, it is never released back to
// a pool, so its k may be invoked any number of times — the mechanism that
// makes true multi-shot resumption (General) possible at all.
type generalSuspension struct {
	ref OpRef
	arg Value
	k   func(Value) Resumed
}

// InvokeGeneral performs a Scoped- or General-kind operation from a
// computation written in the captured-continuation layer's style (see
// [Cont], [Bind], [Return]) rather than as a plain imperative Go function.
// Ordinary Go code has no way to suspend itself and later be resumed zero,
// two, or more times without a goroutine per resumption; CPS gives that for
// free, since the continuation k is just a Go closure that may be called
// repeatedly. Pair with [InstallGeneral] to dispatch it against the same
// Runtime handler stack [Invoke] uses for the other five operation kinds.
func InvokeGeneral(ref OpRef, arg Value) Cont[Resumed, Value] {
	switch ref.Kind() {
	case Scoped, General:
	default:
		panic("effect: InvokeGeneral used with a " + ref.Kind().String() + " operation; use Invoke")
	}
	return Shift(func(k func(Value) Resumed) Resumed {
		return &generalSuspension{ref: ref, arg: arg, k: k}
	})
}

// InstallGeneral installs def — whose General table may answer Scoped/
// General operations alongside an Ops table (possibly nil) for the other
// five kinds dispatched through Invoke, exactly like [Install] — and drives
// body, a captured-continuation-layer computation, to completion,
// resolving every Scoped/General suspension it yields against the owning
// handler frame found via the same rt.find lookup Invoke uses. Unhandled
// operations of the other five kinds performed by body still dispatch
// through Invoke normally, since hf is pushed onto the same rt.frames.
//
// The type parameter A is body's own completion type, needed only to call
// it; InstallGeneral returns a plain Value because a GeneralOpFunc that
// resumes more than once (see resolveGeneral) is free to combine those
// results into something of a different shape than A, exactly as
// HandlerDef.Result may already do for the other five kinds.
func InstallGeneral[A any](rt *Runtime, def *HandlerDef, body Cont[Resumed, A]) Value {
	var local Value
	if def.Acquire != nil {
		local = def.Acquire()
	}
	hf := &handlerFrame{effect: def.Effect, ops: def.Ops, general: def.General, local: local, result: def.Result, release: def.Release}
	frameIdx := len(rt.frames)
	rt.push(hf)

	v := resolveGeneral(rt, body(toResumed[A]))

	popped := rt.pop()
	if popped != hf || len(rt.frames) != frameIdx {
		reportFatal("effect: handler stack corrupted on general handler return")
		panic("effect: handler stack corrupted on general handler return")
	}
	if hf.release != nil {
		hf.release(hf.local)
	}
	if hf.result != nil {
		v = hf.result(hf.local, v)
	}
	return v
}

// resolveGeneral drives result — either a final value or a generalSuspension
// — to a concrete Value, recursing once per resumption so that a
// GeneralOpFunc calling resume more than once (the ambiguous-choice/amb
// pattern) gets one independently-computed Value back per call.
func resolveGeneral(rt *Runtime, result Resumed) Value {
	gs, ok := result.(*generalSuspension)
	if !ok {
		if result == nil {
			return nil
		}
		return result.(Value)
	}
	hf, _ := rt.find(gs.ref)
	return callGeneralOpFunc(rt, hf, gs.ref, gs.arg, func(v Value) Value {
		return resolveGeneral(rt, gs.k(v))
	})
}
