// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "errors"

// Exception is the payload carried by Throw. Code namespaces the kind of
// exception; CodeCancel is reserved for cancellation (see ErrCancelled).
// Application code is free to use its own codes above zero.
type Exception struct {
	Code int
	Err  error
}

func (e Exception) Error() string { return e.Err.Error() }

// CodeCancel marks a cancellation exception: Try rethrows it past every
// non-exhaustive handler on the way out; only TryAll (and Finally, which
// is built from it) ever observes one directly.
const CodeCancel = -10000

// ErrCancelled is the error carried by exceptions raised through Cancel.
var ErrCancelled = errors.New("effect: cancelled")

var exceptionEffect = &EffectDef{Name: "Exception", Ops: []OpDef{
	{Name: "Throw", Kind: NoResume},
}}

var throwRef = OpRef{Effect: exceptionEffect, Index: 0}

// Throw raises exc, unwinding to the nearest enclosing Try/TryAll/Finally.
// Never returns.
func Throw(rt *Runtime, exc Exception) Value {
	return Invoke(rt, throwRef, exc)
}

// Cancel raises the reserved cancellation exception.
func Cancel(rt *Runtime) Value {
	return Throw(rt, Exception{Code: CodeCancel, Err: ErrCancelled})
}

// Outcome is the result of Try/TryAll: either Value holds body's result
// (Exc is nil), or Exc holds the exception body raised (Value is the
// zero Value).
type Outcome struct {
	Value Value
	Exc   *Exception
}

// TryAll runs body, catching every exception it raises including
// cancellation.
func TryAll(rt *Runtime, body func(rt *Runtime) Value) Outcome {
	var out Outcome
	def := &HandlerDef{
		Effect: exceptionEffect,
		Ops: []OpFunc{
			func(_ *Runtime, _ *Value, arg Value) Value {
				exc := arg.(Exception)
				out.Exc = &exc
				return nil
			},
		},
	}
	v := Install(rt, def, body)
	if out.Exc == nil {
		out.Value = v
	}
	return out
}

// Try runs body like TryAll, but rethrows a caught cancellation exception
// to the next enclosing handler instead of reporting it in Outcome — the
// "non-exhaustive" try of spec's exception model.
func Try(rt *Runtime, body func(rt *Runtime) Value) Outcome {
	out := TryAll(rt, body)
	if out.Exc != nil && out.Exc.Code == CodeCancel {
		Throw(rt, *out.Exc)
	}
	return out
}

// Finally runs body, unconditionally runs release once body has exited by
// any path, then rethrows body's exception if it raised one.
func Finally(rt *Runtime, body func(rt *Runtime) Value, release func()) Value {
	out := TryAll(rt, body)
	release()
	if out.Exc != nil {
		Throw(rt, *out.Exc)
	}
	return out.Value
}
