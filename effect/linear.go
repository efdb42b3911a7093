// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Linear handlers: installed and torn down at a single lexically scoped
// region, never captured first-class. Defer/OnAbort/Param below are the
// three uses the direct-dispatch layer needs; none of them declare any
// operations of their own except Param's Get, so none ever appear in a
// find() walk except when explicitly performed.

// linearEffect identifies Defer/OnAbort frames for diagnostics; it has no
// operations, so it is never a find() target.
var linearEffect = &EffectDef{Name: "Linear"}

// Defer runs onExit on every exit path from body: normal return, an
// operation performed inside body that never resumes, and an unrelated
// unwind merely passing through this scope. Mirrors spec's do_release=true.
func Defer(rt *Runtime, onExit func(), body func(rt *Runtime) Value) Value {
	return Install(rt, &HandlerDef{
		Effect:  linearEffect,
		Release: func(Value) { onExit() },
	}, body)
}

// OnAbort runs onAbort only when body does not return normally — an
// unwind (throw, cancellation, or an unrelated NoResume passing through)
// reached this scope instead. Mirrors spec's do_release=false.
func OnAbort(rt *Runtime, onAbort func(), body func(rt *Runtime) Value) Value {
	normal := false
	return Install(rt, &HandlerDef{
		Effect: linearEffect,
		Release: func(Value) {
			if !normal {
				onAbort()
			}
		},
	}, func(rt *Runtime) Value {
		v := body(rt)
		normal = true
		return v
	})
}

// Param is an implicit parameter: a value installed for the dynamic
// extent of a scope and read back with Get, implemented as the single
// TailNoop operation spec's "implicit parameters" use describes. Distinct
// Params never collide because each owns its own *EffectDef identity.
type Param struct {
	def *EffectDef
}

// NewParam creates a fresh implicit-parameter key. name is diagnostic
// only (appears in panic messages if Get escapes its installing scope).
func NewParam(name string) *Param {
	return &Param{def: &EffectDef{
		Name: name,
		Ops:  []OpDef{{Name: "Get", Kind: TailNoop}},
	}}
}

// With installs value for the dynamic extent of body.
func (p *Param) With(rt *Runtime, value Value, body func(rt *Runtime) Value) Value {
	return Install(rt, &HandlerDef{
		Effect:  p.def,
		Acquire: func() Value { return value },
		Ops: []OpFunc{
			func(_ *Runtime, local *Value, _ Value) Value { return *local },
		},
	}, body)
}

// Get reads the nearest enclosing value installed by With. Fatal if no
// enclosing With exists, same as any other unhandled operation.
func (p *Param) Get(rt *Runtime) Value {
	return Invoke(rt, OpRef{Effect: p.def, Index: 0}, nil)
}
