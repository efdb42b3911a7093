// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect_test

import (
	"testing"

	"code.hybscloud.com/nodekont/effect"
)

func TestStateGetPut(t *testing.T) {
	// Bind(Get, func(s) Then(Put(s+1), Get))
	comp := effect.GetState(func(s int) effect.Cont[effect.Resumed, int] {
		return effect.PutState(s+1, effect.Perform(effect.Get[int]{}))
	})

	result, finalState := effect.RunState[int, int](10, comp)
	if result != 11 {
		t.Fatalf("got result %d, want 11", result)
	}
	if finalState != 11 {
		t.Fatalf("got state %d, want 11", finalState)
	}
}

func TestStateModify(t *testing.T) {
	comp := effect.ModifyState(func(s int) int { return s * 2 }, func(s int) effect.Cont[effect.Resumed, int] {
		return effect.Return[effect.Resumed](s)
	})

	result, finalState := effect.RunState[int, int](21, comp)
	if result != 42 {
		t.Fatalf("got result %d, want 42", result)
	}
	if finalState != 42 {
		t.Fatalf("got state %d, want 42", finalState)
	}
}

func TestStateEval(t *testing.T) {
	comp := effect.PutState(100, effect.Perform(effect.Get[int]{}))

	result := effect.EvalState[int, int](0, comp)
	if result != 100 {
		t.Fatalf("got %d, want 100", result)
	}
}

func TestStateExec(t *testing.T) {
	comp := effect.PutState(50, effect.Return[effect.Resumed]("done"))

	finalState := effect.ExecState[int, string](0, comp)
	if finalState != 50 {
		t.Fatalf("got state %d, want 50", finalState)
	}
}

func TestStateChained(t *testing.T) {
	// Multiple state updates in sequence
	comp := effect.PutState(1,
		effect.ModifyState(func(x int) int { return x + 1 }, func(_ int) effect.Cont[effect.Resumed, int] {
			return effect.ModifyState(func(x int) int { return x * 2 }, func(_ int) effect.Cont[effect.Resumed, int] {
				return effect.Perform(effect.Get[int]{})
			})
		}),
	)

	result, _ := effect.RunState[int, int](0, comp)
	if result != 4 { // (1 + 1) * 2 = 4
		t.Fatalf("got %d, want 4", result)
	}
}

func TestStatePure(t *testing.T) {
	// Pure value should not affect state
	comp := effect.Return[effect.Resumed, int](42)

	result, finalState := effect.RunState[int, int](100, comp)
	if result != 42 {
		t.Fatalf("got result %d, want 42", result)
	}
	if finalState != 100 {
		t.Fatalf("got state %d, want 100", finalState)
	}
}

func TestExprStateGetPut(t *testing.T) {
	// Bind(Get, func(s) Then(Put(s+1), Get))
	comp := effect.ExprBind(effect.ExprPerform(effect.Get[int]{}), func(s int) effect.Expr[int] {
		return effect.ExprThen(effect.ExprPerform(effect.Put[int]{Value: s + 1}), effect.ExprPerform(effect.Get[int]{}))
	})

	result, finalState := effect.RunStateExpr[int, int](10, comp)
	if result != 11 {
		t.Fatalf("got result %d, want 11", result)
	}
	if finalState != 11 {
		t.Fatalf("got state %d, want 11", finalState)
	}
}

func TestExprStateModify(t *testing.T) {
	comp := effect.ExprBind(effect.ExprPerform(effect.Modify[int]{F: func(s int) int { return s * 2 }}), func(s int) effect.Expr[int] {
		return effect.ExprReturn(s)
	})

	result, finalState := effect.RunStateExpr[int, int](21, comp)
	if result != 42 {
		t.Fatalf("got result %d, want 42", result)
	}
	if finalState != 42 {
		t.Fatalf("got state %d, want 42", finalState)
	}
}

func TestExprStateEval(t *testing.T) {
	comp := effect.ExprThen(effect.ExprPerform(effect.Put[int]{Value: 100}), effect.ExprPerform(effect.Get[int]{}))

	result, _ := effect.RunStateExpr[int, int](0, comp)
	if result != 100 {
		t.Fatalf("got %d, want 100", result)
	}
}

func TestExprStateExec(t *testing.T) {
	comp := effect.ExprThen(effect.ExprPerform(effect.Put[int]{Value: 50}), effect.ExprReturn("done"))

	_, finalState := effect.RunStateExpr[int, string](0, comp)
	if finalState != 50 {
		t.Fatalf("got state %d, want 50", finalState)
	}
}

func TestExprStateChained(t *testing.T) {
	// Then(Put(1), Bind(Modify(+1), func(_) Then(Modify(*2), Get)))
	comp := effect.ExprThen(effect.ExprPerform(effect.Put[int]{Value: 1}),
		effect.ExprBind(effect.ExprPerform(effect.Modify[int]{F: func(x int) int { return x + 1 }}), func(_ int) effect.Expr[int] {
			return effect.ExprBind(effect.ExprPerform(effect.Modify[int]{F: func(x int) int { return x * 2 }}), func(_ int) effect.Expr[int] {
				return effect.ExprPerform(effect.Get[int]{})
			})
		}),
	)

	result, _ := effect.RunStateExpr[int, int](0, comp)
	if result != 4 { // (1 + 1) * 2 = 4
		t.Fatalf("got %d, want 4", result)
	}
}

func TestExprStatePure(t *testing.T) {
	// Pure value should not affect state
	comp := effect.ExprReturn[int](42)

	result, finalState := effect.RunStateExpr[int, int](100, comp)
	if result != 42 {
		t.Fatalf("got result %d, want 42", result)
	}
	if finalState != 100 {
		t.Fatalf("got state %d, want 100", finalState)
	}
}
