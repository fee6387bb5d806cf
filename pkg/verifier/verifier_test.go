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
package verifier

import (
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
)

var x = expr.NewVar(0)
var y = expr.NewVar(1)

// ============================================================================
// Symbolic
// ============================================================================

func Test_Symbolic_01(t *testing.T) {
	check_Symbolic(t, expr.NewAdd(x, expr.Const64(0)), x, true)
	check_Symbolic(t, expr.NewAdd(expr.Const64(2), expr.Const64(3)), expr.Const64(5), true)
	check_Symbolic(t, expr.NewAdd(x, y), expr.NewAdd(y, x), true)
	check_Symbolic(t, expr.NewMul(x, y), expr.NewMul(y, x), true)
}

func Test_Symbolic_02(t *testing.T) {
	check_Symbolic(t, expr.NewAdd(x, expr.Const64(1)), expr.NewAdd(x, expr.Const64(2)), false)
	// Canonicalization does not expand powers of sums.
	check_Symbolic(t, squareOf(expr.NewAdd(x, expr.Const64(1))), binomialExpansion(), false)
}

func Test_Symbolic_03(t *testing.T) {
	if !SymbolicZero(expr.NewSub(x, x)) {
		t.Errorf("expected x - x to be symbolically zero")
	}
	//
	if !SymbolicZero(expr.NewSub(expr.NewAdd(x, y), expr.NewAdd(y, x))) {
		t.Errorf("expected (x + y) - (y + x) to be symbolically zero")
	}
	//
	if SymbolicZero(expr.NewSub(x, expr.Const64(1))) {
		t.Errorf("expected x - 1 not to be symbolically zero")
	}
}

func Test_Symbolic_04(t *testing.T) {
	if !SymbolicOne(expr.NewDiv(x, x)) {
		t.Errorf("expected x / x to be symbolically one")
	}
	//
	if SymbolicOne(expr.NewDiv(x, y)) {
		t.Errorf("expected x / y not to be symbolically one")
	}
}

func Test_Symbolic_05(t *testing.T) {
	// A literal division by zero is a domain failure, not an equivalence.
	zeroDiv := expr.NewDiv(x, expr.Const64(0))
	check_Symbolic(t, zeroDiv, zeroDiv, false)
}

// ============================================================================
// Numerical
// ============================================================================

func Test_Numerical_01(t *testing.T) {
	check_Numerical(t, squareOf(expr.NewAdd(x, expr.Const64(1))), binomialExpansion(), true)
}

func Test_Numerical_02(t *testing.T) {
	check_Numerical(t, expr.NewAdd(x, expr.Const64(1)), expr.NewAdd(x, expr.Const64(2)), false)
}

func Test_Numerical_03(t *testing.T) {
	// Negative samples fail to evaluate on both sides and are skipped, so
	// agreement on the positive ones decides.
	check_Numerical(t, expr.Sqrt(x), expr.NewPow(x, expr.Const(expr.NewRational(1, 2))), true)
}

func Test_Numerical_04(t *testing.T) {
	// ln(x^2) evaluates everywhere except zero whereas 2ln(x) needs x > 0;
	// one-sided failures are skipped rather than counted against equivalence.
	lhs := expr.Ln(expr.NewPow(x, expr.Const64(2)))
	rhs := expr.NewMul(expr.Const64(2), expr.Ln(x))
	//
	check_Numerical(t, lhs, rhs, true)
}

func Test_Numerical_05(t *testing.T) {
	trig := expr.NewAdd(squareOf(expr.Sin(x)), squareOf(expr.Cos(x)))
	check_Numerical(t, trig, expr.Const64(1), true)
}

func Test_Numerical_06(t *testing.T) {
	rng := rand.New(rand.NewPCG(0, 1))
	//
	if !NumericalZero(expr.NewSub(x, x), 10, 1e-10, rng) {
		t.Errorf("expected x - x to be numerically zero")
	}
	//
	if NumericalZero(expr.NewSub(x, expr.Const64(1)), 10, 1e-10, rng) {
		t.Errorf("expected x - 1 not to be numerically zero")
	}
}

func Test_Numerical_07(t *testing.T) {
	check_Evaluable(t, expr.Sin(expr.NewAdd(x, y)), true)
	check_Evaluable(t, expr.NewFactorial(expr.Const64(5)), true)
	check_Evaluable(t, expr.NewDerivative(expr.NewPow(x, expr.Const64(2)), 0), false)
	check_Evaluable(t, expr.NewIntegral(x, 0), false)
	check_Evaluable(t, expr.NewAdd(x, expr.NewIntegral(x, 0)), false)
}

// ============================================================================
// Equivalence
// ============================================================================

func Test_Verifier_01(t *testing.T) {
	outcome := NewVerifier().VerifyEquivalence(expr.NewAdd(x, expr.Const64(0)), x)
	check_Outcome(t, outcome, VALID, 1.0)
}

func Test_Verifier_02(t *testing.T) {
	// Beyond the reach of canonicalization, so decided by sampling.
	outcome := NewVerifier().VerifyEquivalence(
		squareOf(expr.NewAdd(x, expr.Const64(1))), binomialExpansion())
	//
	check_Outcome(t, outcome, VALID, 0.999)
}

func Test_Verifier_03(t *testing.T) {
	outcome := NewVerifier().VerifyEquivalence(
		expr.NewAdd(x, expr.Const64(1)), expr.NewAdd(x, expr.Const64(2)))
	//
	if outcome.Status != INVALID {
		t.Errorf("expected invalid outcome, got %s", outcome)
	}
}

func Test_Verifier_04(t *testing.T) {
	// Derivatives cannot be sampled, so neither strategy decides.
	outcome := NewVerifier().VerifyEquivalence(
		expr.NewDerivative(expr.NewPow(x, expr.Const64(2)), 0),
		expr.NewMul(expr.Const64(2), x))
	//
	if outcome.Status != UNKNOWN {
		t.Errorf("expected unknown outcome, got %s", outcome)
	}
}

func Test_Verifier_05(t *testing.T) {
	v := NewVerifier().WithLevel(NUMERICAL)
	//
	trig := expr.NewAdd(squareOf(expr.Sin(x)), squareOf(expr.Cos(x)))
	check_Outcome(t, v.VerifyEquivalence(trig, expr.Const64(1)), VALID, 0.999)
	//
	outcome := v.VerifyEquivalence(expr.NewIntegral(x, 0), x)
	//
	if outcome.Status != UNKNOWN {
		t.Errorf("expected unknown outcome, got %s", outcome)
	}
}

func Test_Verifier_06(t *testing.T) {
	outcome := NewVerifier().WithLevel(FORMAL).VerifyEquivalence(x, x)
	//
	if outcome.Status != UNKNOWN {
		t.Errorf("expected unknown outcome, got %s", outcome)
	}
}

func Test_Verifier_07(t *testing.T) {
	// The sampler is seeded per call, so repeated verification of the same
	// pair is reproducible.
	v := NewVerifier().WithLevel(NUMERICAL).WithSeed(42)
	//
	lhs := expr.NewDiv(expr.NewSub(squareOf(x), expr.Const64(1)), expr.NewSub(x, expr.Const64(1)))
	rhs := expr.NewAdd(x, expr.Const64(1))
	//
	first := v.VerifyEquivalence(lhs, rhs)
	second := v.VerifyEquivalence(lhs, rhs)
	//
	if first != second {
		t.Errorf("expected reproducible outcomes, got %s then %s", first, second)
	}
}

// ============================================================================
// Steps
// ============================================================================

func Test_VerifyStep_01(t *testing.T) {
	rule := standard.Rule(2)
	before := expr.NewAdd(x, expr.Const64(0))
	//
	outcome := NewVerifier().VerifyStep(before, x, rule, rules.Context{})
	check_Outcome(t, outcome, VALID, 1.0)
}

func Test_VerifyStep_02(t *testing.T) {
	rule := standard.Rule(2)
	before := expr.NewAdd(x, expr.Const64(0))
	//
	outcome := NewVerifier().VerifyStep(before, expr.Const64(0), rule, rules.Context{})
	//
	if outcome.Status != INVALID {
		t.Errorf("expected invalid outcome, got %s", outcome)
	}
}

func Test_VerifyStep_03(t *testing.T) {
	rule := standard.Rule(2)
	//
	outcome := NewVerifier().VerifyStep(expr.NewMul(x, y), x, rule, rules.Context{})
	//
	if outcome.Status != INVALID {
		t.Errorf("expected invalid outcome, got %s", outcome)
	}
}

func Test_VerifyStep_04(t *testing.T) {
	// Differentiation steps cannot be sampled, so a matched application is
	// trusted at reduced confidence.
	rule := standard.Rule(23)
	before := expr.NewDerivative(expr.NewPow(x, expr.Const64(2)), 0)
	after := expr.NewMul(expr.Const64(2), expr.NewPow(x, expr.Const64(1)))
	//
	outcome := NewVerifier().VerifyStep(before, after, rule, rules.Context{})
	check_Outcome(t, outcome, VALID, 0.95)
}

// ============================================================================
// Solutions
// ============================================================================

func Test_VerifySolution_01(t *testing.T) {
	eq := expr.NewEquation(
		expr.NewAdd(expr.NewMul(expr.Const64(2), x), expr.Const64(1)), expr.Const64(7))
	//
	outcome := NewVerifier().VerifySolution(eq, 0, expr.Const64(3))
	check_Outcome(t, outcome, VALID, 1.0)
}

func Test_VerifySolution_02(t *testing.T) {
	eq := expr.NewEquation(
		expr.NewAdd(expr.NewMul(expr.Const64(2), x), expr.Const64(1)), expr.Const64(7))
	//
	outcome := NewVerifier().VerifySolution(eq, 0, expr.Const64(4))
	//
	if outcome.Status != INVALID {
		t.Errorf("expected invalid outcome, got %s", outcome)
	}
}

func Test_VerifySolution_03(t *testing.T) {
	outcome := NewVerifier().VerifySolution(x, 0, expr.Const64(1))
	//
	if outcome.Status != INVALID {
		t.Errorf("expected invalid outcome, got %s", outcome)
	}
}

func Test_VerifySolution_04(t *testing.T) {
	// x^2 = 2 under x := sqrt(2) holds to floating point, not structurally.
	eq := expr.NewEquation(expr.NewPow(x, expr.Const64(2)), expr.Const64(2))
	//
	outcome := NewVerifier().VerifySolution(eq, 0, expr.Sqrt(expr.Const64(2)))
	//
	if !outcome.IsValid() {
		t.Errorf("expected valid outcome, got %s", outcome)
	}
}

// ============================================================================
// Helpers
// ============================================================================

var standard = rules.StandardRules()

func check_Symbolic(t *testing.T, a expr.Expr, b expr.Expr, expected bool) {
	t.Helper()
	//
	if SymbolicEquivalent(a, b) != expected {
		t.Errorf("expected SymbolicEquivalent(%s, %s) == %t", a, b, expected)
	}
}

func check_Numerical(t *testing.T, a expr.Expr, b expr.Expr, expected bool) {
	t.Helper()
	//
	rng := rand.New(rand.NewPCG(0, 1))
	//
	if NumericalEquivalent(a, b, 25, 1e-10, rng) != expected {
		t.Errorf("expected NumericalEquivalent(%s, %s) == %t", a, b, expected)
	}
}

func check_Evaluable(t *testing.T, e expr.Expr, expected bool) {
	t.Helper()
	//
	if Evaluable(e) != expected {
		t.Errorf("expected Evaluable(%s) == %t", e, expected)
	}
}

func check_Outcome(t *testing.T, outcome Outcome, status uint8, confidence float64) {
	t.Helper()
	//
	if outcome.Status != status {
		t.Errorf("unexpected outcome %s", outcome)
	} else if status == VALID && outcome.Confidence != confidence {
		t.Errorf("expected confidence %.3f, got %s", confidence, outcome)
	}
}

func squareOf(e expr.Expr) expr.Expr {
	return expr.NewPow(e, expr.Const64(2))
}

func binomialExpansion() expr.Expr {
	return expr.NewAdd(
		expr.NewAdd(squareOf(x), expr.NewMul(expr.Const64(2), x)), expr.Const64(1))
}
