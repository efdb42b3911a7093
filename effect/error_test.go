// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect_test

import (
	"testing"

	"code.hybscloud.com/nodekont/effect"
)

func TestErrorThrow(t *testing.T) {
	comp := effect.ThrowError[string, int]("something went wrong")

	result := effect.RunError[string, int](comp)
	if result.IsRight() {
		t.Fatal("expected Left, got Right")
	}
	err, _ := result.GetLeft()
	if err != "something went wrong" {
		t.Fatalf("got error %q, want %q", err, "something went wrong")
	}
}

func TestErrorNoThrow(t *testing.T) {
	comp := effect.Return[effect.Resumed, int](42)

	result := effect.RunError[string, int](comp)
	if result.IsLeft() {
		t.Fatal("expected Right, got Left")
	}
	val, _ := result.GetRight()
	if val != 42 {
		t.Fatalf("got %d, want 42", val)
	}
}

func TestErrorCatch(t *testing.T) {
	// Computation that throws, but is caught
	comp := effect.CatchError(
		effect.ThrowError[string, int]("error"),
		func(e string) effect.Cont[effect.Resumed, int] {
			return effect.Return[effect.Resumed](99) // recover with default value
		},
	)

	result := effect.RunError[string, int](comp)
	if result.IsLeft() {
		t.Fatal("expected Right after catch, got Left")
	}
	val, _ := result.GetRight()
	if val != 99 {
		t.Fatalf("got %d, want 99", val)
	}
}

func TestErrorCatchNoError(t *testing.T) {
	// Computation that succeeds, handler not called
	comp := effect.CatchError(
		effect.Return[effect.Resumed, int](42),
		func(e string) effect.Cont[effect.Resumed, int] {
			return effect.Return[effect.Resumed](0) // should not be called
		},
	)

	result := effect.RunError[string, int](comp)
	if result.IsLeft() {
		t.Fatal("expected Right, got Left")
	}
	val, _ := result.GetRight()
	if val != 42 {
		t.Fatalf("got %d, want 42", val)
	}
}

func TestErrorChained(t *testing.T) {
	// Error in middle of chain aborts rest
	comp := effect.Bind(
		effect.Return[effect.Resumed, int](1),
		func(x int) effect.Cont[effect.Resumed, int] {
			return effect.Bind(
				effect.ThrowError[string, int]("abort"),
				func(y int) effect.Cont[effect.Resumed, int] {
					return effect.Return[effect.Resumed](x + y) // never reached
				},
			)
		},
	)

	result := effect.RunError[string, int](comp)
	if result.IsRight() {
		t.Fatal("expected Left, got Right")
	}
	err, _ := result.GetLeft()
	if err != "abort" {
		t.Fatalf("got error %q, want %q", err, "abort")
	}
}

func TestExprErrorThrow(t *testing.T) {
	comp := effect.ExprThrowError[string, int]("something went wrong")

	result := effect.RunErrorExpr[string, int](comp)
	if result.IsRight() {
		t.Fatal("expected Left, got Right")
	}
	err, _ := result.GetLeft()
	if err != "something went wrong" {
		t.Fatalf("got error %q, want %q", err, "something went wrong")
	}
}

func TestExprErrorNoThrow(t *testing.T) {
	comp := effect.ExprReturn[int](42)

	result := effect.RunErrorExpr[string, int](comp)
	if result.IsLeft() {
		t.Fatal("expected Right, got Left")
	}
	val, _ := result.GetRight()
	if val != 42 {
		t.Fatalf("got %d, want 42", val)
	}
}

func TestExprErrorChained(t *testing.T) {
	// Error in middle of chain aborts rest
	comp := effect.ExprBind(
		effect.ExprReturn[int](1),
		func(x int) effect.Expr[int] {
			return effect.ExprBind(
				effect.ExprThrowError[string, int]("abort"),
				func(y int) effect.Expr[int] {
					return effect.ExprReturn(x + y) // never reached
				},
			)
		},
	)

	result := effect.RunErrorExpr[string, int](comp)
	if result.IsRight() {
		t.Fatal("expected Left, got Right")
	}
	err, _ := result.GetLeft()
	if err != "abort" {
		t.Fatalf("got error %q, want %q", err, "abort")
	}
}

func TestEitherLeft(t *testing.T) {
	e := effect.Left[string, int]("error")

	if !e.IsLeft() {
		t.Fatal("expected IsLeft true")
	}
	if e.IsRight() {
		t.Fatal("expected IsRight false")
	}
	err, ok := e.GetLeft()
	if !ok {
		t.Fatal("GetLeft should return true")
	}
	if err != "error" {
		t.Fatalf("got %q, want %q", err, "error")
	}
}

func TestEitherRight(t *testing.T) {
	e := effect.Right[string, int](42)

	if e.IsLeft() {
		t.Fatal("expected IsLeft false")
	}
	if !e.IsRight() {
		t.Fatal("expected IsRight true")
	}
	val, ok := e.GetRight()
	if !ok {
		t.Fatal("GetRight should return true")
	}
	if val != 42 {
		t.Fatalf("got %d, want 42", val)
	}
}

func TestMapEither(t *testing.T) {
	right := effect.Right[string, int](21)
	mapped := effect.MapEither(right, func(x int) int { return x * 2 })

	val, ok := mapped.GetRight()
	if !ok || val != 42 {
		t.Fatalf("got %d, want 42", val)
	}

	left := effect.Left[string, int]("error")
	mappedLeft := effect.MapEither(left, func(x int) int { return x * 2 })

	if mappedLeft.IsRight() {
		t.Fatal("mapping Left should remain Left")
	}
}

func TestFlatMapEither(t *testing.T) {
	right := effect.Right[string, int](21)
	result := effect.FlatMapEither(right, func(x int) effect.Either[string, int] {
		return effect.Right[string, int](x * 2)
	})

	val, ok := result.GetRight()
	if !ok || val != 42 {
		t.Fatalf("got %d, want 42", val)
	}

	// FlatMap with error in second computation
	result2 := effect.FlatMapEither(right, func(x int) effect.Either[string, int] {
		return effect.Left[string, int]("second error")
	})

	if result2.IsRight() {
		t.Fatal("expected Left from second computation")
	}
}

func TestMapLeftEither(t *testing.T) {
	left := effect.Left[string, int]("error")
	mapped := effect.MapLeftEither(left, func(e string) string {
		return "wrapped: " + e
	})

	err, ok := mapped.GetLeft()
	if !ok || err != "wrapped: error" {
		t.Fatalf("got %q, want %q", err, "wrapped: error")
	}
}
