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
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	x = NewVar(0)
	y = NewVar(1)
	z = NewVar(2)
)

// ============================================================================
// Identity Elimination
// ============================================================================

func Test_Canon_01(t *testing.T) {
	check_Canonical(t, NewAdd(x, Const64(0)), x)
}

func Test_Canon_02(t *testing.T) {
	check_Canonical(t, NewAdd(Const64(0), x), x)
}

func Test_Canon_03(t *testing.T) {
	check_Canonical(t, NewMul(x, Const64(1)), x)
}

func Test_Canon_04(t *testing.T) {
	check_Canonical(t, NewMul(Const64(0), x), Const64(0))
}

func Test_Canon_05(t *testing.T) {
	check_Canonical(t, NewSub(x, Const64(0)), x)
}

func Test_Canon_06(t *testing.T) {
	check_Canonical(t, NewDiv(x, Const64(1)), x)
}

func Test_Canon_07(t *testing.T) {
	check_Canonical(t, NewPow(x, Const64(1)), x)
}

func Test_Canon_08(t *testing.T) {
	check_Canonical(t, NewPow(x, Const64(0)), Const64(1))
}

func Test_Canon_09(t *testing.T) {
	// Pinned convention: zero to the zero is one.
	check_Canonical(t, NewPow(Const64(0), Const64(0)), Const64(1))
}

func Test_Canon_10(t *testing.T) {
	check_Canonical(t, NewNeg(NewNeg(x)), x)
}

// ============================================================================
// Constant Folding
// ============================================================================

func Test_Canon_11(t *testing.T) {
	check_Canonical(t, NewAdd(Const64(2), Const64(3)), Const64(5))
}

func Test_Canon_12(t *testing.T) {
	// Exact fractions, where floats would round.
	check_Canonical(t, NewAdd(Const(NewRational(1, 3)), Const(NewRational(2, 3))), Const64(1))
}

func Test_Canon_13(t *testing.T) {
	check_Canonical(t, NewDiv(Const64(1), Const64(3)), Const(NewRational(1, 3)))
}

func Test_Canon_14(t *testing.T) {
	check_Canonical(t, NewPow(Const64(2), Const64(10)), Const64(1024))
}

func Test_Canon_15(t *testing.T) {
	// Exponent beyond the folding bound stays symbolic.
	check_Canonical(t, NewPow(Const64(2), Const64(100)),
		&Pow{Const64(2), Const64(100)})
}

func Test_Canon_16(t *testing.T) {
	check_Canonical(t, NewFactorial(Const64(5)), Const64(120))
}

func Test_Canon_17(t *testing.T) {
	check_Canonical(t, NewBinomial(Const64(5), Const64(2)), Const64(10))
}

func Test_Canon_18(t *testing.T) {
	check_Canonical(t, NewBinomial(Const64(2), Const64(5)), Const64(0))
}

func Test_Canon_19(t *testing.T) {
	check_Canonical(t, Abs(Const64(-7)), Const64(7))
}

func Test_Canon_20(t *testing.T) {
	// Transcendental applications never fold to approximations.
	check_Canonical(t, Sin(Const64(0)), Sin(Const64(0)))
}

// ============================================================================
// Commutativity & Associativity
// ============================================================================

func Test_Canon_21(t *testing.T) {
	check_Equivalent(t, NewAdd(x, y), NewAdd(y, x))
}

func Test_Canon_22(t *testing.T) {
	check_Equivalent(t, NewAdd(NewAdd(x, y), z), NewAdd(x, NewAdd(y, z)))
}

func Test_Canon_23(t *testing.T) {
	check_Equivalent(t, NewMul(x, y), NewMul(y, x))
}

func Test_Canon_24(t *testing.T) {
	check_Equivalent(t, NewMul(NewMul(x, y), z), NewMul(x, NewMul(y, z)))
}

func Test_Canon_25(t *testing.T) {
	check_Equivalent(t, NewAdd(NewPi(), x), NewAdd(x, NewPi()))
}

// ============================================================================
// Like Terms & Factors
// ============================================================================

func Test_Canon_26(t *testing.T) {
	check_Equivalent(t, NewAdd(x, x), NewMul(Const64(2), x))
}

func Test_Canon_27(t *testing.T) {
	check_Equivalent(t, NewAdd(NewAdd(x, x), x), NewMul(Const64(3), x))
}

func Test_Canon_28(t *testing.T) {
	check_Equivalent(t,
		NewAdd(NewMul(Const64(2), x), NewMul(Const64(3), x)),
		NewMul(Const64(5), x))
}

func Test_Canon_29(t *testing.T) {
	check_Canonical(t, NewSub(x, x), Const64(0))
}

func Test_Canon_30(t *testing.T) {
	check_Equivalent(t, NewMul(x, x), NewPow(x, Const64(2)))
}

func Test_Canon_31(t *testing.T) {
	check_Equivalent(t, NewMul(NewMul(x, x), x), NewPow(x, Const64(3)))
}

func Test_Canon_32(t *testing.T) {
	check_Equivalent(t,
		NewMul(NewPow(x, Const64(2)), NewPow(x, Const64(3))),
		NewPow(x, Const64(5)))
}

func Test_Canon_33(t *testing.T) {
	check_Canonical(t, NewDiv(x, x), Const64(1))
}

func Test_Canon_34(t *testing.T) {
	check_Equivalent(t, NewPow(NewPow(x, Const64(2)), Const64(3)), NewPow(x, Const64(6)))
}

func Test_Canon_35(t *testing.T) {
	check_Equivalent(t,
		NewPow(NewMul(x, y), Const64(2)),
		NewMul(NewPow(x, Const64(2)), NewPow(y, Const64(2))))
}

func Test_Canon_36(t *testing.T) {
	// Fractional outer powers must not distribute, since (x^2)^(1/2) is
	// not x for negative x.
	check_Distinct(t, NewPow(NewPow(x, Const64(2)), Const(NewRational(1, 2))), x)
}

func Test_Canon_37(t *testing.T) {
	check_Equivalent(t,
		NewMul(Const64(2), NewAdd(x, y)),
		NewAdd(NewMul(Const64(2), x), NewMul(Const64(2), y)))
}

func Test_Canon_38(t *testing.T) {
	check_Equivalent(t,
		NewMul(Const64(2), NewAdd(x, y)),
		NewAdd(NewAdd(x, y), NewAdd(x, y)))
}

func Test_Canon_39(t *testing.T) {
	check_Equivalent(t,
		NewSub(Const64(0), NewAdd(x, y)),
		NewSub(NewNeg(x), y))
}

func Test_Canon_40(t *testing.T) {
	check_Equivalent(t,
		NewPow(NewMul(Const64(2), x), Const64(2)),
		NewMul(Const64(4), NewPow(x, Const64(2))))
}

// ============================================================================
// Distinctions
// ============================================================================

func Test_Canon_41(t *testing.T) {
	check_Distinct(t, NewAdd(x, y), NewMul(x, y))
}

func Test_Canon_42(t *testing.T) {
	check_Distinct(t, x, y)
}

func Test_Canon_43(t *testing.T) {
	check_Distinct(t, NewPi(), NewE())
}

func Test_Canon_44(t *testing.T) {
	// Products of distinct sums stay unexpanded: expansion is a rewrite,
	// not a canonicalisation.
	check_Distinct(t,
		NewMul(NewAdd(x, y), NewAdd(x, z)),
		NewAdd(NewAdd(NewPow(x, Const64(2)), NewMul(x, z)), NewAdd(NewMul(x, y), NewMul(y, z))))
}

func Test_Canon_45(t *testing.T) {
	check_Distinct(t, Sqrt(x), NewPow(x, Const(NewRational(1, 2))))
}

// ============================================================================
// Domain Failures
// ============================================================================

func Test_Canon_46(t *testing.T) {
	check_CanonError(t, NewDiv(Const64(1), Const64(0)))
}

func Test_Canon_47(t *testing.T) {
	check_CanonError(t, NewPow(Const64(0), Const64(-2)))
}

func Test_Canon_48(t *testing.T) {
	check_CanonError(t, Ln(Const64(0)))
}

func Test_Canon_49(t *testing.T) {
	check_CanonError(t, Sqrt(Const64(-4)))
}

func Test_Canon_50(t *testing.T) {
	check_CanonError(t, NewFactorial(Const64(-1)))
}

func Test_Canon_51(t *testing.T) {
	// The offending subtree survives unreduced alongside the error.
	result, err := Canonicalize(NewDiv(x, Const64(0)))
	//
	if err == nil {
		t.Errorf("expected domain error, got %s", result)
	} else if _, ok := result.(*Div); !ok {
		t.Errorf("expected unreduced quotient, got %s", result)
	}
}

// ============================================================================
// Robustness
// ============================================================================

func Test_Canon_52(t *testing.T) {
	// Deeply nested input hits the recursion bound rather than the stack.
	e := x
	for i := 0; i < 500; i++ {
		e = NewAdd(e, Const64(1))
	}
	//
	if _, err := Canonicalize(e); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func Test_Canon_53(t *testing.T) {
	// Canonicalisation is idempotent.
	exprs := []Expr{
		NewAdd(NewMul(Const64(2), x), NewMul(x, Const64(3))),
		NewMul(NewAdd(x, y), NewAdd(x, y)),
		NewSub(NewDiv(x, y), NewDiv(y, x)),
		NewPow(NewAdd(x, Const64(1)), Const64(2)),
		Sin(NewMul(Const64(2), NewPi())),
		NewSummation(3, Const64(1), Const64(10), NewVar(3)),
		NewDerivative(NewPow(x, Const64(2)), 0),
	}
	//
	for _, e := range exprs {
		once, err := Canonicalize(e)
		if err != nil {
			t.Errorf("unexpected error for %s: %s", e, err)
			continue
		}
		//
		twice, err := Canonicalize(once)
		if err != nil {
			t.Errorf("unexpected error for %s: %s", once, err)
		} else if !Equal(once, twice) {
			t.Errorf("canonical form of %s not stable: %s vs %s", e, once, twice)
		}
	}
}

func Test_Canon_54(t *testing.T) {
	// Binders canonicalise their bodies without touching the index.
	check_Equivalent(t,
		NewSummation(3, Const64(1), Const64(10), NewAdd(NewVar(3), Const64(0))),
		NewSummation(3, Const64(1), Const64(10), NewVar(3)))
}

func Test_Canon_55(t *testing.T) {
	check_Equivalent(t,
		NewEquation(NewAdd(x, Const64(0)), NewMul(y, Const64(1))),
		NewEquation(x, y))
}

// ===================================================================
// Test Helpers
// ===================================================================

var ratComparer = cmp.Comparer(func(a, b Rational) bool { return a.Equals(b) })

// Check that an expression reduces to an exact canonical structure.
func check_Canonical(t *testing.T, input Expr, expected Expr) {
	actual, err := Canonicalize(input)
	//
	if err != nil {
		t.Errorf("unexpected error for %s: %s", input, err)
	} else if diff := cmp.Diff(expected, actual, ratComparer); diff != "" {
		t.Errorf("canonical form of %s mismatch (-expected +actual):\n%s", input, diff)
	}
}

// Check that two expressions share a canonical form.
func check_Equivalent(t *testing.T, lhs Expr, rhs Expr) {
	lc, err := Canonicalize(lhs)
	if err != nil {
		t.Errorf("unexpected error for %s: %s", lhs, err)
		return
	}
	//
	rc, err := Canonicalize(rhs)
	if err != nil {
		t.Errorf("unexpected error for %s: %s", rhs, err)
		return
	}
	//
	if !Equal(lc, rc) {
		t.Errorf("expected %s == %s, got %s vs %s", lhs, rhs, lc, rc)
	} else if Hash(lc) != Hash(rc) {
		t.Errorf("equal forms hash differently: %s vs %s", lc, rc)
	}
}

// Check that two expressions do not share a canonical form.
func check_Distinct(t *testing.T, lhs Expr, rhs Expr) {
	lc, err := Canonicalize(lhs)
	if err != nil {
		t.Errorf("unexpected error for %s: %s", lhs, err)
		return
	}
	//
	rc, err := Canonicalize(rhs)
	if err != nil {
		t.Errorf("unexpected error for %s: %s", rhs, err)
		return
	}
	//
	if Equal(lc, rc) {
		t.Errorf("expected %s != %s, but both gave %s", lhs, rhs, lc)
	}
}

// Check that canonicalisation reports a domain failure.
func check_CanonError(t *testing.T, input Expr) {
	var domainErr *DomainError
	//
	_, err := Canonicalize(input)
	//
	if err == nil {
		t.Errorf("expected domain error for %s", input)
	} else if !errors.As(err, &domainErr) {
		t.Errorf("expected domain error for %s, got %s", input, err)
	}
}
