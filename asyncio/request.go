// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import "time"

// reqState tracks the three pending states a Request can be in while it
// waits for completion.
type reqState uint8

const (
	reqLive reqState = iota
	// reqCancelPendingWithOwner: the request's scope was cancelled but it
	// still has a live Owner, so delivery waits for ReleaseOwner.
	reqCancelPendingWithOwner
	// reqCancelPendingNoOwner: cancellation has been decided and will be
	// delivered on the request's done channel without further delay.
	reqCancelPendingNoOwner
)

// Request is one in-flight asynchronous operation: a cancellation scope, an
// optional owner object whose teardown the request may need to wait for,
// and an optional deadline. It is held in the Loop's intrusive doubly
// linked in-flight list for the duration of the wait.
type Request struct {
	Scope *Scope
	Owner any
	DueBy time.Time // zero value: no deadline

	state reqState
	done  chan int

	prev, next *Request
}

func newRequest(scope *Scope, owner any, dueBy time.Time) *Request {
	return &Request{Scope: scope, Owner: owner, DueBy: dueBy, done: make(chan int, 1)}
}

// complete delivers code exactly once; later calls are no-ops, matching
// the single-completion contract every Source honors.
func (r *Request) complete(code int) {
	select {
	case r.done <- code:
	default:
	}
}
