// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package expr

import (
	"errors"
	"math"
	"testing"
)

// ============================================================================
// Arithmetic
// ============================================================================

func Test_Eval_01(t *testing.T) {
	check_Eval(t, NewAdd(Const64(2), Const64(3)), nil, 5)
}

func Test_Eval_02(t *testing.T) {
	check_Eval(t, NewSub(NewMul(x, x), y), Environment{0: 3, 1: 4}, 5)
}

func Test_Eval_03(t *testing.T) {
	check_Eval(t, NewDiv(Const64(1), Const64(4)), nil, 0.25)
}

func Test_Eval_04(t *testing.T) {
	check_Eval(t, NewNeg(NewPow(x, Const64(3))), Environment{0: 2}, -8)
}

func Test_Eval_05(t *testing.T) {
	check_Eval(t, NewAdd(NewPi(), NewE()), nil, math.Pi+math.E)
}

func Test_Eval_06(t *testing.T) {
	check_Eval(t, Sin(NewDiv(NewPi(), Const64(2))), nil, 1)
}

func Test_Eval_07(t *testing.T) {
	check_Eval(t, Ln(Exp(Const64(3))), nil, 3)
}

func Test_Eval_08(t *testing.T) {
	check_Eval(t, Sqrt(Const64(16)), nil, 4)
}

func Test_Eval_09(t *testing.T) {
	check_Eval(t, Abs(Const64(-3)), nil, 3)
}

func Test_Eval_10(t *testing.T) {
	check_Eval(t, NewFactorial(Const64(6)), nil, 720)
}

func Test_Eval_11(t *testing.T) {
	check_Eval(t, NewBinomial(Const64(6), Const64(3)), nil, 20)
}

func Test_Eval_12(t *testing.T) {
	// Choosing more than available is zero, not an error.
	check_Eval(t, NewBinomial(Const64(3), Const64(6)), nil, 0)
}

func Test_Eval_13(t *testing.T) {
	// Gauss: 1 + 2 + ... + 10.
	check_Eval(t, NewSummation(3, Const64(1), Const64(10), NewVar(3)), nil, 55)
}

func Test_Eval_14(t *testing.T) {
	// The index shadows any outer binding of the same variable.
	check_Eval(t, NewSummation(0, Const64(1), Const64(3), x), Environment{0: 100}, 6)
}

func Test_Eval_15(t *testing.T) {
	// An equation evaluates to its residual.
	check_Eval(t, NewEquation(NewMul(x, x), Const64(9)), Environment{0: 3}, 0)
}

func Test_Eval_16(t *testing.T) {
	check_Eval(t, NewLessThan(Const64(1), Const64(2)), nil, 1)
	check_Eval(t, NewGreaterThanOrEquals(Const64(1), Const64(2)), nil, 0)
}

// ============================================================================
// Failures
// ============================================================================

func Test_Eval_17(t *testing.T) {
	check_EvalFails(t, NewDiv(Const64(1), Const64(0)), nil)
}

func Test_Eval_18(t *testing.T) {
	// Near-zero denominators count as division by zero.
	check_EvalFails(t, NewDiv(Const64(1), x), Environment{0: 1e-20})
}

func Test_Eval_19(t *testing.T) {
	check_EvalFails(t, Ln(Const64(0)), nil)
	check_EvalFails(t, Ln(Const64(-1)), nil)
}

func Test_Eval_20(t *testing.T) {
	check_EvalFails(t, Sqrt(Const64(-1)), nil)
}

func Test_Eval_21(t *testing.T) {
	check_EvalFails(t, NewFactorial(Const64(21)), nil)
	check_EvalFails(t, NewFactorial(Const64(-1)), nil)
}

func Test_Eval_22(t *testing.T) {
	check_EvalFails(t, NewSummation(3, Const64(1), Const64(100000), NewVar(3)), nil)
}

func Test_Eval_23(t *testing.T) {
	check_EvalFails(t, NewPow(Const64(0), Const64(-1)), nil)
}

func Test_Eval_24(t *testing.T) {
	var unboundErr *UndefinedVariableError
	//
	_, err := x.Eval(Environment{1: 1})
	//
	if err == nil {
		t.Errorf("expected unbound variable error")
	} else if !errors.As(err, &unboundErr) {
		t.Errorf("expected unbound variable error, got %s", err)
	}
}

func Test_Eval_25(t *testing.T) {
	// Unapplied calculus operators and quantified formulae have no numeric
	// interpretation.
	for _, e := range []Expr{
		NewDerivative(NewPow(x, Const64(2)), 0),
		NewIntegral(x, 0),
		NewForAll(0, REALS, NewEquation(x, x)),
	} {
		if _, err := e.Eval(Environment{0: 1}); !errors.Is(err, ErrNotEvaluable) {
			t.Errorf("expected %s to be non-evaluable, got %v", e, err)
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Eval(t *testing.T, e Expr, env Environment, expected float64) {
	actual, err := e.Eval(env)
	//
	if err != nil {
		t.Errorf("unexpected error for %s: %s", e, err)
	} else if math.Abs(actual-expected) > 1e-9 {
		t.Errorf("expected %s => %f, got %f", e, expected, actual)
	}
}

func check_EvalFails(t *testing.T, e Expr, env Environment) {
	var domainErr *DomainError
	//
	if _, err := e.Eval(env); err == nil {
		t.Errorf("expected evaluation of %s to fail", e)
	} else if !errors.As(err, &domainErr) {
		t.Errorf("expected domain error for %s, got %s", e, err)
	}
}
