// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import (
	"errors"
	"sync"
	"time"

	"code.hybscloud.com/nodekont/effect"
)

// ErrChannelFull is returned by Emit when the channel has no waiting
// listener and its bounded buffer is already at capacity.
var ErrChannelFull = errors.New("asyncio: channel is full")

// Channel is the bounded FIFO + LIFO-listener-stack primitive of spec's
// §4.5.5: buffered values queue FIFO; a value handed to a channel with a
// receiver already waiting bypasses the buffer and goes straight to the
// most recently registered listener (LIFO), matching spec's preference
// for waking the innermost/most-recent waiter first.
type Channel struct {
	loop     *Loop
	capacity int

	mu        sync.Mutex
	buf       []int
	listeners []*Request
	closed    bool
}

// NewChannel creates a Channel bound to loop with the given buffer capacity.
func (l *Loop) NewChannel(capacity int) *Channel {
	return &Channel{loop: l, capacity: capacity}
}

// Emit delivers v to the channel: directly to the most recently
// registered waiting Receive if one exists, otherwise appended to the
// FIFO buffer. Returns ErrChannelFull if there is no listener and the
// buffer is already full.
func (c *Channel) Emit(v int) error {
	c.mu.Lock()
	if n := len(c.listeners); n > 0 {
		r := c.listeners[n-1]
		c.listeners = c.listeners[:n-1]
		c.mu.Unlock()
		c.loop.resolve(r, v)
		return nil
	}
	if len(c.buf) >= c.capacity {
		c.mu.Unlock()
		return ErrChannelFull
	}
	c.buf = append(c.buf, v)
	c.mu.Unlock()
	return nil
}

// Receive returns the next buffered value, or blocks the calling strand
// until one is Emitted. The wait is registered as a request under the
// strand's current cancellation scope, so it is interrupted like any
// other pending request if an enclosing scope is cancelled.
func (c *Channel) Receive(rt *effect.Runtime) int {
	if v, ok := c.popBuffered(); ok {
		return v
	}
	scope := CurrentScope(rt)
	return c.waitFor(rt, scope)
}

// ReceiveNoCancel is Receive, but the wait is registered outside any
// cancellation scope (the loop's own root), so a scope cancellation
// enclosing the caller cannot interrupt it.
func (c *Channel) ReceiveNoCancel(rt *effect.Runtime) int {
	if v, ok := c.popBuffered(); ok {
		return v
	}
	return c.waitFor(rt, c.loop.rootScope)
}

func (c *Channel) popBuffered() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.buf) == 0 {
		return 0, false
	}
	v := c.buf[0]
	c.buf = c.buf[1:]
	return v, true
}

func (c *Channel) waitFor(rt *effect.Runtime, scope *Scope) int {
	req := c.loop.register(rt, scope, nil, time.Time{})
	c.mu.Lock()
	c.listeners = append(c.listeners, req)
	c.mu.Unlock()
	return c.loop.await(req)
}

// Free cancels every pending Receive on the channel, delivering ECancel
// to each, and records the channel as closed. Values already buffered
// are kept, and Emit does not consult the closed flag: a later Emit is
// still buffered or handed to a waiting Receive as before.
func (c *Channel) Free() {
	c.mu.Lock()
	pending := c.listeners
	c.listeners = nil
	c.closed = true
	c.mu.Unlock()
	for _, r := range pending {
		c.loop.resolve(r, ECancel)
	}
}
