// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// fatalHandler is the process-wide hook consulted before a genuinely
// unrecoverable condition (a corrupted handler stack, an operation with no
// enclosing handler at all) panics the calling goroutine. The C reference
// (libhandler.h) exposes the same thing as a settable onfatal callback
// invoked just before its raw abort(); SetFatalHandler is its Go analogue,
// used in place of abort() so a host program gets one last chance to log
// before the panic unwinds past it.
var fatalHandler func(msg string)

// SetFatalHandler installs f as the process-wide fatal-condition hook,
// replacing any previously installed one. Passing nil restores the
// default of no hook. Like the original's global, this is process state,
// not per-Runtime — install it once, typically from the program's entry
// point (see asyncio.Main).
func SetFatalHandler(f func(msg string)) {
	fatalHandler = f
}

// reportFatal invokes the installed fatal handler, if any, with msg. Call
// sites that represent an unrecoverable runtime invariant violation —
// rather than an ordinary Throw/Cancel exception, which is recoverable by
// design — call this immediately before panicking.
func reportFatal(msg string) {
	if fatalHandler != nil {
		fatalHandler(msg)
	}
}
