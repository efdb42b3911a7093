// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !kont_debug

package effect

// checkNoStackPointer is a no-op in production builds.
func checkNoStackPointer(Value) {}
