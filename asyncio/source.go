// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import (
	"context"
	"time"
)

// Source is the seam a real OS-backed reactor (file, TCP, TTY, DNS,
// timer) would implement. Perform runs the blocking operation to
// completion — or until ctx is cancelled — and returns an error code in
// the same way a syscall would: zero for success, a negative code on
// failure. This package supplies only [TimerSource]; building a full
// file/TCP/TTY/DNS reactor is periphery, out of scope here.
type Source interface {
	Perform(ctx context.Context) (code int, err error)
}

// ETimedOut is returned by a Source, or synthesized by the loop's deadline
// sweep, when an operation's DueBy has passed.
const ETimedOut = -110

// ECancel is synthesized when a request is cancelled by an enclosing
// scope cancellation, or when Dispatch cannot hand the request to the
// worker pool. Loop.Close does not produce it.
const ECancel = -125

// TimerSource is a Source that simply sleeps for Duration, the minimal
// concrete Source this package ships to exercise the whole Async Core
// end-to-end without depending on any real OS resource.
type TimerSource struct {
	Duration time.Duration
}

func (t TimerSource) Perform(ctx context.Context) (int, error) {
	timer := time.NewTimer(t.Duration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return 0, nil
	case <-ctx.Done():
		return ECancel, ctx.Err()
	}
}
