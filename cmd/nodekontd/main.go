// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command nodekontd is a minimal demonstration harness for the asyncio
// package: it runs a handful of timed strands under asyncio.Main and
// exits with its reported status code.
package main

import (
	"os"
	"time"

	"code.hybscloud.com/nodekont/asyncio"
	"code.hybscloud.com/nodekont/effect"
)

func main() {
	os.Exit(asyncio.Main(func(rt *effect.Runtime) effect.Value {
		loop := asyncio.CurrentLoop(rt)
		results := asyncio.Interleave(rt, []func(rt *effect.Runtime) effect.Value{
			func(rt *effect.Runtime) effect.Value {
				loop.Dispatch(rt, asyncio.TimerSource{Duration: 20 * time.Millisecond}, time.Time{})
				return "first strand done"
			},
			func(rt *effect.Runtime) effect.Value {
				loop.Dispatch(rt, asyncio.TimerSource{Duration: 10 * time.Millisecond}, time.Time{})
				return "second strand done"
			},
		})
		for _, r := range results {
			if r.Exc != nil {
				continue
			}
			println(r.Value.(string))
		}
		return nil
	}))
}
