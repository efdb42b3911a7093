// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import (
	"context"
	"io"
	"time"

	"code.hybscloud.com/nodekont/effect"
)

// StreamReader wraps an io.Reader so each chunk read suspends the
// calling strand exactly like any other req_await, instead of blocking
// the goroutine's underlying OS thread directly against the reader.
// This is the minimal periphery seam spec.md §1 calls out — "only its
// interface to the stream reader is specified" — a full buffered/TCP/TTY
// stack is out of scope.
type StreamReader struct {
	r    io.Reader
	loop *Loop
}

// NewStreamReader wraps r for chunked, req_await-driven reads on loop.
func NewStreamReader(loop *Loop, r io.Reader) *StreamReader {
	return &StreamReader{r: r, loop: loop}
}

type readResult struct {
	n   int
	err error
}

// readSource adapts one Read call into a Source.
type readSource struct {
	r   io.Reader
	buf []byte
	out *readResult
}

func (s readSource) Perform(ctx context.Context) (int, error) {
	n, err := s.r.Read(s.buf)
	*s.out = readResult{n: n, err: err}
	if err != nil && err != io.EOF {
		return ECancel, err
	}
	return 0, nil
}

// Read performs one chunked read into buf, suspending the calling strand
// until it completes. Returns (n, io.EOF) at end of stream, matching
// io.Reader's own contract.
func (s *StreamReader) Read(rt *effect.Runtime, buf []byte) (int, error) {
	var out readResult
	src := readSource{r: s.r, buf: buf, out: &out}
	code := s.loop.Dispatch(rt, src, time.Time{})
	if code == ECancel {
		return out.n, out.err
	}
	return out.n, out.err
}
