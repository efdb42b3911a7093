// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build kont_debug

package effect

import "reflect"

// checkNoStackPointer panics if v holds a pointer whose address falls
// suspiciously close to the current goroutine's stack (within one frame of
// the call site). This is a heuristic, not a proof: Go provides no portable
// way to query the true stack bounds of the calling goroutine.
func checkNoStackPointer(v Value) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	here := stackAddr()
	addr := rv.Pointer()
	const window = 1 << 16 // one typical goroutine stack growth step
	if diff := addr - here; diff < window && here-addr < window {
		panic("effect: value cell appears to carry a pointer into the local stack frame")
	}
}
