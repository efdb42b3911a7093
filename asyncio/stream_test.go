// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncio_test

import (
	"io"
	"strings"
	"testing"

	"code.hybscloud.com/nodekont/asyncio"
	"code.hybscloud.com/nodekont/effect"
)

func TestStreamReaderReadsChunksThenEOF(t *testing.T) {
	code := asyncio.Main(func(rt *effect.Runtime) effect.Value {
		loop := asyncio.CurrentLoop(rt)
		sr := asyncio.NewStreamReader(loop, strings.NewReader("hello"))

		buf := make([]byte, 3)
		n, err := sr.Read(rt, buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(buf[:n]) != "hel" {
			t.Fatalf("got %q, want hel", buf[:n])
		}

		var all []byte
		for {
			n, err := sr.Read(rt, buf)
			all = append(all, buf[:n]...)
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if string(all) != "lo" {
			t.Fatalf("got %q, want lo", all)
		}
		return nil
	})
	if code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
}
