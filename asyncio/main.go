// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio

import (
	"fmt"
	"os"

	"code.hybscloud.com/nodekont/effect"
)

// Main installs the process-wide fatal handler (see effect.SetFatalHandler),
// a fresh Loop, and a root cancellation scope, runs entry to completion
// under them, and returns a process exit code: 0 if entry returned
// normally, 1 if it raised an unhandled exception (printed to os.Stderr
// first). A corrupted handler stack or an operation with no enclosing
// handler is also printed to os.Stderr, in place of the original's raw
// abort(), before the panic unwinds past this call. This is the whole of
// spec's outermost "run the program" step — everything else (strands,
// channels, requests) only ever runs nested inside one Main call.
func Main(entry func(rt *effect.Runtime) effect.Value) int {
	effect.SetFatalHandler(func(msg string) {
		fmt.Fprintln(os.Stderr, "asyncio: fatal:", msg)
	})

	loop := NewLoop()
	defer loop.Close()

	rt := effect.NewRuntime()
	var exitCode int
	installLoop(rt, loop, func(rt *effect.Runtime) effect.Value {
		return WithScope(rt, loop.RootScope(), func(rt *effect.Runtime) effect.Value {
			outcome := effect.TryAll(rt, entry)
			if outcome.Exc != nil {
				fmt.Fprintln(os.Stderr, "asyncio: unhandled exception:", outcome.Exc.Err)
				exitCode = 1
			}
			return outcome.Value
		})
	})
	return exitCode
}
