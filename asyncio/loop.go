// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ygrebnov/workers"

	"code.hybscloud.com/nodekont/effect"
)

// ioResult is the value a dispatched Source reports back to the loop.
type ioResult struct {
	req  *Request
	code int
}

// Config configures a Loop. The zero Config is not valid; NewLoop starts
// from the defaults (500ms sweep interval, 4096 in flight) and applies
// each Option on top.
type Config struct {
	SweepInterval time.Duration
	MaxInFlight   int
	Logger        *slog.Logger
}

// Option configures a Loop, the same functional-options shape
// ygrebnov/workers uses for its own Config.
type Option func(*Config)

// WithSweepInterval overrides the periodic deadline-sweep interval
// (default 500ms, per spec).
func WithSweepInterval(d time.Duration) Option {
	return func(c *Config) { c.SweepInterval = d }
}

// WithMaxInFlight bounds the number of concurrently registered requests
// dispatched to the worker pool (default 4096). Requests blocked only on
// a Channel are not subject to this bound.
func WithMaxInFlight(n int) Option {
	return func(c *Config) { c.MaxInFlight = n }
}

// WithLogger sets the loop's diagnostic logger (default: none).
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func defaultConfig() Config {
	return Config{SweepInterval: 500 * time.Millisecond, MaxInFlight: 4096}
}

// Loop is the event-loop stand-in of spec.md's §1 external OS event loop:
// a single dispatching goroutine's worth of shared state (the in-flight
// request list) guarded by one mutex, plus a ygrebnov/workers pool that
// runs blocking Sources off that goroutine and reports completions back
// over a channel. Strand goroutines never touch the in-flight list
// directly — they go through [Loop.Dispatch]/register/await, which do.
type Loop struct {
	cfg  Config
	sem  chan struct{}
	pool workers.Workers[ioResult]

	mu         sync.Mutex
	head, tail *Request

	rootScope *Scope

	done chan struct{}
	wg   sync.WaitGroup
}

// NewLoop creates a Loop and starts its dispatching and sweep goroutines.
// Close must be called to stop them.
func NewLoop(opts ...Option) *Loop {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	l := &Loop{
		cfg:       cfg,
		sem:       make(chan struct{}, cfg.MaxInFlight),
		pool:      workers.NewOptions[ioResult](context.Background(), workers.WithDynamicPool(), workers.WithStartImmediately()),
		rootScope: RootScope(),
		done:      make(chan struct{}),
	}
	l.wg.Add(2)
	go l.drain()
	go l.sweep()
	return l
}

// RootScope returns the loop's own top-level cancellation scope.
func (l *Loop) RootScope() *Scope { return l.rootScope }

// Close stops the loop's background goroutines. In-flight requests that
// never complete are left to the caller — Close does not cancel them.
func (l *Loop) Close() {
	close(l.done)
	l.wg.Wait()
}

func (l *Loop) drain() {
	defer l.wg.Done()
	results := l.pool.GetResults()
	errs := l.pool.GetErrors()
	for {
		select {
		case r, ok := <-results:
			if !ok {
				return
			}
			l.resolve(r.req, r.code)
		case err, ok := <-errs:
			if !ok {
				continue
			}
			if l.cfg.Logger != nil {
				l.cfg.Logger.Error("asyncio: source task failed", "error", err)
			}
		case <-l.done:
			return
		}
	}
}

func (l *Loop) sweep() {
	defer l.wg.Done()
	t := time.NewTicker(l.cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case now := <-t.C:
			l.sweepOnce(now)
		case <-l.done:
			return
		}
	}
}

func (l *Loop) sweepOnce(now time.Time) {
	l.mu.Lock()
	var due []*Request
	for r := l.head; r != nil; r = r.next {
		if r.state == reqLive && !r.DueBy.IsZero() && !r.DueBy.After(now) {
			r.state = reqCancelPendingNoOwner
			due = append(due, r)
		}
	}
	l.mu.Unlock()
	for _, r := range due {
		l.resolve(r, ETimedOut)
	}
}

func (l *Loop) link(r *Request) {
	l.mu.Lock()
	r.prev, r.next = l.tail, nil
	if l.tail != nil {
		l.tail.next = r
	} else {
		l.head = r
	}
	l.tail = r
	l.mu.Unlock()
}

func (l *Loop) unlink(r *Request) {
	l.mu.Lock()
	if r.prev != nil {
		r.prev.next = r.next
	} else if l.head == r {
		l.head = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	} else if l.tail == r {
		l.tail = r.prev
	}
	r.prev, r.next = nil, nil
	l.mu.Unlock()
}

// register links a new request into the in-flight list via the
// direct-dispatch req_register operation.
func (l *Loop) register(rt *effect.Runtime, scope *Scope, owner any, dueBy time.Time) *Request {
	req := newRequest(scope, owner, dueBy)
	effect.Invoke(rt, reqRegisterRef, req)
	return req
}

// await blocks the calling goroutine until req completes, then unlinks
// it. This is req_await: a General-kind operation implemented as a
// goroutine parked on a channel receive rather than through the
// captured-continuation layer — see DESIGN.md for why a blocked
// goroutine is the more idiomatic Go analogue of a resumable
// continuation here than a manually driven CPS trampoline.
func (l *Loop) await(req *Request) int {
	code := <-req.done
	l.unlink(req)
	return code
}

func (l *Loop) resolve(req *Request, code int) {
	req.complete(code)
}

func (l *Loop) forget(req *Request) {
	l.unlink(req)
}

// Dispatch submits src to the worker pool and blocks the calling strand
// until it completes or the request's cancellation scope is cancelled.
func (l *Loop) Dispatch(rt *effect.Runtime, src Source, dueBy time.Time) int {
	scope := CurrentScope(rt)
	req := l.register(rt, scope, nil, dueBy)
	l.sem <- struct{}{}
	if err := l.pool.AddTask(func(ctx context.Context) (ioResult, error) {
		defer func() { <-l.sem }()
		code, _ := src.Perform(ctx)
		return ioResult{req: req, code: code}, nil
	}); err != nil {
		<-l.sem
		l.forget(req)
		return ECancel
	}
	return l.await(req)
}

// cancelScope marks every in-flight request whose scope is within scope
// as pending cancellation, delivering it immediately to requests with no
// Owner and deferring delivery for those with one until ReleaseOwner.
func (l *Loop) cancelScope(scope *Scope) {
	l.mu.Lock()
	var toDeliver []*Request
	for r := l.head; r != nil; r = r.next {
		if r.state != reqLive || !scope.Contains(r.Scope) {
			continue
		}
		if r.Owner != nil {
			r.state = reqCancelPendingWithOwner
		} else {
			r.state = reqCancelPendingNoOwner
			toDeliver = append(toDeliver, r)
		}
	}
	l.mu.Unlock()
	for _, r := range toDeliver {
		l.resolve(r, ECancel)
	}
}

// releaseOwner reaps every request cancelled-with-owner whose owner is
// being torn down.
func (l *Loop) releaseOwner(owner any) {
	l.mu.Lock()
	var toDeliver []*Request
	for r := l.head; r != nil; r = r.next {
		if r.state == reqCancelPendingWithOwner && r.Owner == owner {
			toDeliver = append(toDeliver, r)
		}
	}
	l.mu.Unlock()
	for _, r := range toDeliver {
		l.resolve(r, ECancel)
	}
}

// --- direct-dispatch operation table (spec.md §4.5.1) ---

var asyncEffect = &effect.EffectDef{Name: "Async", Ops: []effect.OpDef{
	{Name: "UVLoop", Kind: effect.TailNoop},
	{Name: "ReqRegister", Kind: effect.TailNoop},
	{Name: "UVCancel", Kind: effect.TailNoop},
	{Name: "OwnerRelease", Kind: effect.TailNoop},
}}

var (
	uvLoopRef       = effect.OpRef{Effect: asyncEffect, Index: 0}
	reqRegisterRef  = effect.OpRef{Effect: asyncEffect, Index: 1}
	uvCancelRef     = effect.OpRef{Effect: asyncEffect, Index: 2}
	ownerReleaseRef = effect.OpRef{Effect: asyncEffect, Index: 3}
)

// installLoop makes l the loop handle for the dynamic extent of body,
// the four TailNoop operations of spec.md's async handler contract.
func installLoop(rt *effect.Runtime, l *Loop, body func(rt *effect.Runtime) effect.Value) effect.Value {
	def := &effect.HandlerDef{
		Effect:  asyncEffect,
		Acquire: func() effect.Value { return l },
		Ops: []effect.OpFunc{
			func(_ *effect.Runtime, local *effect.Value, _ effect.Value) effect.Value {
				return (*local).(*Loop)
			},
			func(_ *effect.Runtime, local *effect.Value, arg effect.Value) effect.Value {
				(*local).(*Loop).link(arg.(*Request))
				return nil
			},
			func(_ *effect.Runtime, local *effect.Value, arg effect.Value) effect.Value {
				(*local).(*Loop).cancelScope(arg.(*Scope))
				return nil
			},
			func(_ *effect.Runtime, local *effect.Value, arg effect.Value) effect.Value {
				(*local).(*Loop).releaseOwner(arg)
				return nil
			},
		},
	}
	return effect.Install(rt, def, body)
}

// CurrentLoop returns the event loop handle installed by Main.
func CurrentLoop(rt *effect.Runtime) *Loop {
	return effect.Invoke(rt, uvLoopRef, nil).(*Loop)
}

// CancelScope cancels every in-flight request within scope.
func CancelScope(rt *effect.Runtime, scope *Scope) {
	effect.Invoke(rt, uvCancelRef, scope)
}

// ReleaseOwner reaps every request cancelled-with-owner whose owner is owner.
func ReleaseOwner(rt *effect.Runtime, owner any) {
	effect.Invoke(rt, ownerReleaseRef, owner)
}
