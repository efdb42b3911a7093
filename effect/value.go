// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "unsafe"

// Value is a type-erased carrier used to pass arguments and results across
// the direct-dispatch layer's operation boundaries — the idiomatic-Go
// analogue of a C `lh_value` generic 64-bit-wide cell. Unlike a C union,
// a Go interface value already carries its own type tag, so the
// conversions below exist for documentation and call-site symmetry with
// the reference design rather than to work around a typeless union.
type Value = Resumed

// Unit is the shared zero-argument / zero-result value, standing in for
// the reference implementation's `lh_value_null` sentinel used by
// no-argument operations.
var Unit = struct{}{}

// Int converts an int to a Value.
func Int(i int) Value { return i }

// AsInt converts a Value back to an int. Panics if v does not hold an int.
func AsInt(v Value) int { return v.(int) }

// Bool converts a bool to a Value.
func Bool(b bool) Value { return b }

// AsBool converts a Value back to a bool. Panics if v does not hold a bool.
func AsBool(v Value) bool { return v.(bool) }

// Str converts a string to a Value.
func Str(s string) Value { return s }

// AsStr converts a Value back to a string. Panics if v does not hold a string.
func AsStr(v Value) string { return v.(string) }

// Ptr converts any pointer to a Value.
func Ptr[T any](p *T) Value { return p }

// AsPtr converts a Value back to a *T. Panics if v does not hold a *T.
func AsPtr[T any](v Value) *T { return v.(*T) }

// Func converts a function value to a Value.
func Func[F any](f F) Value { return f }

// AsFunc converts a Value back to an F. Panics if v does not hold an F.
func AsFunc[F any](v Value) F { return v.(F) }

// CheckNoStackPointer is a best-effort debug aid approximating the spec's
// "a value cell must not carry a pointer into a capturable stack region"
// invariant. Because this implementation represents continuations as heap
// closures and frame structs rather than raw stack slices (see package
// doc), there is no literal stack region to violate; this helper only
// catches the narrower, genuinely dangerous case of a pointer into the
// current goroutine's stack leaking into a Value that might outlive the
// frame it points into. It is intentionally cheap and approximate: callers
// needing a hard guarantee should not rely on it. No-op unless built with
// the kont_debug tag (see value_debug.go / value_nodebug.go).
func CheckNoStackPointer(v Value) {
	checkNoStackPointer(v)
}

// stackAddr returns the approximate address of the current stack frame,
// used only by the debug build of CheckNoStackPointer.
func stackAddr() uintptr {
	var x byte
	return uintptr(unsafe.Pointer(&x))
}
