// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect_test

import (
	"testing"

	"code.hybscloud.com/nodekont/effect"
)

func TestReturnRun(t *testing.T) {
	got := effect.Run(effect.Return[int](42))
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestReturnRunString(t *testing.T) {
	got := effect.Run(effect.Return[string]("hello"))
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestRunWith(t *testing.T) {
	m := effect.Return[string, int](42)
	got := effect.RunWith(m, func(x int) string {
		return "value"
	})
	if got != "value" {
		t.Fatalf("got %q, want %q", got, "value")
	}
}

func TestBindSimple(t *testing.T) {
	m := effect.Return[int](10)
	n := effect.Bind(m, func(x int) effect.Cont[int, int] {
		return effect.Return[int](x * 2)
	})
	got := effect.Run(n)
	if got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestBindChain(t *testing.T) {
	m := effect.Return[int](5)
	n := effect.Bind(m, func(x int) effect.Cont[int, int] {
		return effect.Bind(effect.Return[int](x+1), func(y int) effect.Cont[int, int] {
			return effect.Return[int](y * 2)
		})
	})
	got := effect.Run(n)
	if got != 12 {
		t.Fatalf("got %d, want 12", got)
	}
}

func TestBindLeftIdentity(t *testing.T) {
	// Bind(Return(a), f) ≡ f(a)
	a := 7
	f := func(x int) effect.Cont[int, int] {
		return effect.Return[int](x * 3)
	}

	left := effect.Run(effect.Bind(effect.Return[int](a), f))
	right := effect.Run(f(a))

	if left != right {
		t.Fatalf("left identity failed: %d != %d", left, right)
	}
}

func TestBindRightIdentity(t *testing.T) {
	// Bind(m, Return) ≡ m
	m := effect.Return[int](42)

	left := effect.Run(effect.Bind(m, func(x int) effect.Cont[int, int] {
		return effect.Return[int](x)
	}))
	right := effect.Run(m)

	if left != right {
		t.Fatalf("right identity failed: %d != %d", left, right)
	}
}

func TestBindAssociativity(t *testing.T) {
	// Bind(Bind(m, f), g) ≡ Bind(m, func(x) Bind(f(x), g))
	m := effect.Return[int](2)
	f := func(x int) effect.Cont[int, int] {
		return effect.Return[int](x + 3)
	}
	g := func(x int) effect.Cont[int, int] {
		return effect.Return[int](x * 2)
	}

	left := effect.Run(effect.Bind(effect.Bind(m, f), g))
	right := effect.Run(effect.Bind(m, func(x int) effect.Cont[int, int] {
		return effect.Bind(f(x), g)
	}))

	if left != right {
		t.Fatalf("associativity failed: %d != %d", left, right)
	}
}

func TestMap(t *testing.T) {
	m := effect.Return[int](10)
	n := effect.Map(m, func(x int) int {
		return x * 3
	})
	got := effect.Run(n)
	if got != 30 {
		t.Fatalf("got %d, want 30", got)
	}
}

func TestSuspend(t *testing.T) {
	m := effect.Suspend[int, int](func(k func(int) int) int {
		return k(42) + 1
	})
	got := effect.Run(m)
	if got != 43 {
		t.Fatalf("got %d, want 43", got)
	}
}

func TestPure(t *testing.T) {
	got := effect.Handle(effect.Pure(42), effect.HandleFunc[int](func(op effect.Operation) (effect.Resumed, bool) {
		panic("should not be called")
	}))
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestPureString(t *testing.T) {
	got := effect.Handle(effect.Pure("hello"), effect.HandleFunc[string](func(op effect.Operation) (effect.Resumed, bool) {
		panic("should not be called")
	}))
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestEffBindPure(t *testing.T) {
	// Eff[int] used as Cont[Resumed, int] in Bind
	comp := effect.Bind(
		effect.Pure(10),
		func(x int) effect.Eff[int] {
			return effect.Pure(x * 2)
		},
	)

	got := effect.Handle(comp, effect.HandleFunc[int](func(op effect.Operation) (effect.Resumed, bool) {
		panic("should not be called")
	}))
	if got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestBindLeftIdentityWithStrings(t *testing.T) {
	a := "hello"
	f := func(s string) effect.Cont[string, string] {
		return effect.Return[string](s + " world")
	}

	left := effect.Run(effect.Bind(effect.Return[string](a), f))
	right := effect.Run(f(a))

	if left != right {
		t.Fatalf("Bind left identity (string) failed: %q != %q", left, right)
	}
}

func TestBindAssociativityWithTypeChange(t *testing.T) {
	m := effect.Return[string](42)
	f := func(x int) effect.Cont[string, string] {
		return effect.Return[string]("value")
	}
	g := func(s string) effect.Cont[string, string] {
		return effect.Return[string](s + "!")
	}

	left := effect.Run(effect.Bind(effect.Bind(m, f), g))
	right := effect.Run(effect.Bind(m, func(x int) effect.Cont[string, string] {
		return effect.Bind(f(x), g)
	}))

	if left != right {
		t.Fatalf("Bind associativity (type change) failed: %q != %q", left, right)
	}
}
