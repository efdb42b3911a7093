// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import "code.hybscloud.com/nodekont/effect"

// Scope is a node in the cancellation-scope tree. Scopes nest by Go value
// identity (a *Scope's pointer is its identity), parent-linked so Contains
// is a simple upward walk — no separate membership bookkeeping is needed.
type Scope struct {
	parent *Scope
}

// RootScope creates a fresh top-level cancellation scope with no parent.
func RootScope() *Scope { return &Scope{} }

// Child creates a scope nested under s.
func (s *Scope) Child() *Scope { return &Scope{parent: s} }

// Contains reports whether other is s itself or nested under it.
func (s *Scope) Contains(other *Scope) bool {
	for c := other; c != nil; c = c.parent {
		if c == s {
			return true
		}
	}
	return false
}

// scopeParam installs the current cancellation scope as an implicit
// parameter, exactly the linear TailNoop handler spec's "_cancel_scope"
// describes (see [effect.Param]).
var scopeParam = effect.NewParam("cancel_scope")

// WithScope installs scope as the current cancellation scope for the
// dynamic extent of body.
func WithScope(rt *effect.Runtime, scope *Scope, body func(rt *effect.Runtime) effect.Value) effect.Value {
	return scopeParam.With(rt, scope, body)
}

// CurrentScope returns the innermost scope installed by WithScope. Fatal
// (panics) if called outside any WithScope, same as any unhandled
// operation — every strand must run under at least the root scope
// Main installs.
func CurrentScope(rt *effect.Runtime) *Scope {
	return scopeParam.Get(rt).(*Scope)
}
