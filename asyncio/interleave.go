// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import (
	"sync"
	"time"

	"code.hybscloud.com/nodekont/effect"
)

// InterleaveResult is one strand's outcome from [Interleave]: either its
// returned value, or the exception it raised.
type InterleaveResult struct {
	Index int
	Value effect.Value
	Exc   *effect.Exception
}

// Interleave runs each of fns as its own strand, all sharing a single
// child cancellation scope, and blocks until every strand has finished —
// whether by returning or by raising. It never cancels a sibling just
// because another raised; that is [FirstOf]'s job. Results are returned
// in fns' original order, not completion order.
func Interleave(rt *effect.Runtime, fns []func(rt *effect.Runtime) effect.Value) []InterleaveResult {
	scope := CurrentScope(rt).Child()
	results := make([]InterleaveResult, len(fns))

	var wg sync.WaitGroup
	wg.Add(len(fns))
	for i, fn := range fns {
		i, fn := i, fn
		go func() {
			defer wg.Done()
			srt := rt.Fork()
			outcome := effect.TryAll(srt, func(srt *effect.Runtime) effect.Value {
				return WithScope(srt, scope, fn)
			})
			results[i] = InterleaveResult{Index: i, Value: outcome.Value, Exc: outcome.Exc}
		}()
	}
	wg.Wait()
	return results
}

// Timeout runs body in a child scope that is cancelled if it has not
// completed within d, returning (value, true) on normal completion or
// (nil, false) if the deadline fired first. A timeout is delivered the
// same way any other scope cancellation is — as an ECancel outcome on
// whatever request body was awaiting when the deadline passed.
func Timeout(rt *effect.Runtime, d time.Duration, body func(rt *effect.Runtime) effect.Value) (effect.Value, bool) {
	scope := CurrentScope(rt).Child()

	done := make(chan effect.Value, 1)
	go func() {
		v := WithScope(rt.Fork(), scope, body)
		done <- v
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case v := <-done:
		return v, true
	case <-timer.C:
		CancelScope(rt, scope)
		return nil, false
	}
}

// FirstOf runs each of fns as its own strand under a shared child scope
// and returns the first one to complete, cancelling every other strand's
// scope the moment a winner is found.
func FirstOf(rt *effect.Runtime, fns []func(rt *effect.Runtime) effect.Value) (int, effect.Value) {
	scope := CurrentScope(rt).Child()

	type outcome struct {
		idx int
		v   effect.Value
	}
	done := make(chan outcome, len(fns))
	for i, fn := range fns {
		i, fn := i, fn
		go func() {
			v := WithScope(rt.Fork(), scope, fn)
			done <- outcome{idx: i, v: v}
		}()
	}
	first := <-done
	CancelScope(rt, scope)
	return first.idx, first.v
}
