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
package rules

import (
	"fmt"

	"github.com/consensys/go-lemma/pkg/expr"
)

// maxPowFold bounds the exponents which constant folding will expand, keeping
// folded numerators and denominators small.
const maxPowFold = 10

// AlgebraRules returns the elementary algebra rules (identifiers 1..20).
func AlgebraRules() []*Rule {
	return []*Rule{
		constFold(),
		addZero(),
		subZero(),
		mulOne(),
		mulZero(),
		subSelf(),
		divSelf(),
		negNeg(),
		divOne(),
		zeroDiv(),
		collectLike(),
		distribute(),
		factorCommon(),
		differenceOfSquares(),
		powZero(),
		powOne(),
		onePow(),
		powProduct(),
		powPow(),
		binomialSquare(),
	}
}

// Rule 1: fold arithmetic over two constants into a single constant.
func constFold() *Rule {
	return &Rule{
		Id:          1,
		Name:        "const_fold",
		Category:    ALGEBRA,
		Description: "Fold arithmetic between constants (e.g. 2 + 3 = 5)",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			switch t := e.(type) {
			case *expr.Add:
				if a, b, ok := constPair(t.Lhs, t.Rhs); ok {
					r := a.Add(b)
					return apply1(expr.Const(r), foldJust(a, "+", b, r))
				}
			case *expr.Sub:
				if a, b, ok := constPair(t.Lhs, t.Rhs); ok {
					r := a.Sub(b)
					return apply1(expr.Const(r), foldJust(a, "-", b, r))
				}
			case *expr.Mul:
				if a, b, ok := constPair(t.Lhs, t.Rhs); ok {
					r := a.Mul(b)
					return apply1(expr.Const(r), foldJust(a, "*", b, r))
				}
			case *expr.Div:
				if a, b, ok := constPair(t.Lhs, t.Rhs); ok && !b.IsZero() {
					r := a.Div(b)
					return apply1(expr.Const(r), foldJust(a, "/", b, r))
				}
			case *expr.Pow:
				a, ok1 := expr.AsConstant(t.Base)
				n, ok2 := smallExponent(t.Exponent)
				//
				if ok1 && ok2 && !(a.IsZero() && n < 0) {
					r := a.Pow(n)
					return apply1(expr.Const(r), foldJust(a, "^", expr.NewRationalFromInt(int64(n)), r))
				}
			case *expr.Neg:
				if a, ok := expr.AsConstant(t.Arg); ok {
					r := a.Neg()
					return apply1(expr.Const(r), fmt.Sprintf("-(%s) = %s", a, r))
				}
			}
			//
			return nil
		},
	}
}

// Rule 2: additive identity.
func addZero() *Rule {
	return &Rule{
		Id:          2,
		Name:        "add_zero",
		Category:    ALGEBRA,
		Description: "Adding zero changes nothing",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Add); ok {
				if expr.IsZero(t.Rhs) {
					return apply1(t.Lhs, "x + 0 = x")
				} else if expr.IsZero(t.Lhs) {
					return apply1(t.Rhs, "0 + x = x")
				}
			}
			//
			return nil
		},
	}
}

// Rule 3: subtracting zero.
func subZero() *Rule {
	return &Rule{
		Id:          3,
		Name:        "sub_zero",
		Category:    ALGEBRA,
		Description: "Subtracting zero changes nothing",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Sub); ok && expr.IsZero(t.Rhs) {
				return apply1(t.Lhs, "x - 0 = x")
			}
			//
			return nil
		},
	}
}

// Rule 4: multiplicative identity.
func mulOne() *Rule {
	return &Rule{
		Id:          4,
		Name:        "mul_one",
		Category:    ALGEBRA,
		Description: "Multiplying by one changes nothing",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Mul); ok {
				if expr.IsOne(t.Rhs) {
					return apply1(t.Lhs, "x * 1 = x")
				} else if expr.IsOne(t.Lhs) {
					return apply1(t.Rhs, "1 * x = x")
				}
			}
			//
			return nil
		},
	}
}

// Rule 5: multiplication by zero annihilates.
func mulZero() *Rule {
	return &Rule{
		Id:          5,
		Name:        "mul_zero",
		Category:    ALGEBRA,
		Description: "Multiplying by zero gives zero",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Mul); ok {
				if expr.IsZero(t.Rhs) {
					return apply1(expr.Const64(0), "x * 0 = 0")
				} else if expr.IsZero(t.Lhs) {
					return apply1(expr.Const64(0), "0 * x = 0")
				}
			}
			//
			return nil
		},
	}
}

// Rule 6: subtracting an expression from itself.
func subSelf() *Rule {
	return &Rule{
		Id:          6,
		Name:        "sub_self",
		Category:    ALGEBRA,
		Description: "Subtracting an expression from itself gives zero",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Sub); ok && expr.Equal(t.Lhs, t.Rhs) {
				return apply1(expr.Const64(0), "x - x = 0")
			}
			//
			return nil
		},
	}
}

// Rule 7: dividing an expression by itself.
func divSelf() *Rule {
	return &Rule{
		Id:          7,
		Name:        "div_self",
		Category:    ALGEBRA,
		Description: "Dividing a (non-zero) expression by itself gives one",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Div); ok && expr.Equal(t.Lhs, t.Rhs) && !expr.IsZero(t.Rhs) {
				return apply1(expr.Const64(1), "x / x = 1")
			}
			//
			return nil
		},
	}
}

// Rule 8: double negation.
func negNeg() *Rule {
	return &Rule{
		Id:          8,
		Name:        "neg_neg",
		Category:    ALGEBRA,
		Description: "Double negation cancels",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Neg); ok {
				if inner, ok := t.Arg.(*expr.Neg); ok {
					return apply1(inner.Arg, "-(-x) = x")
				}
			}
			//
			return nil
		},
	}
}

// Rule 9: dividing by one.
func divOne() *Rule {
	return &Rule{
		Id:          9,
		Name:        "div_one",
		Category:    ALGEBRA,
		Description: "Dividing by one changes nothing",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Div); ok && expr.IsOne(t.Rhs) {
				return apply1(t.Lhs, "x / 1 = x")
			}
			//
			return nil
		},
	}
}

// Rule 10: zero numerator.
func zeroDiv() *Rule {
	return &Rule{
		Id:          10,
		Name:        "zero_div",
		Category:    ALGEBRA,
		Description: "Zero divided by a non-zero expression gives zero",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Div); ok && expr.IsZero(t.Lhs) && !expr.IsZero(t.Rhs) {
				return apply1(expr.Const64(0), "0 / x = 0")
			}
			//
			return nil
		},
	}
}

// Rule 11: collect like terms of an addition.
func collectLike() *Rule {
	return &Rule{
		Id:          11,
		Name:        "collect_like",
		Category:    ALGEBRA,
		Description: "Collect like terms (e.g. x + x = 2x)",
		Domains:     domains(),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Add)
			if !ok {
				return nil
			}
			//
			ca, base1 := coefficientOf(t.Lhs)
			cb, base2 := coefficientOf(t.Rhs)
			// Constants are folded by const_fold instead.
			if _, isConst := expr.AsConstant(base1); isConst || !expr.Equal(base1, base2) {
				return nil
			}
			//
			sum := ca.Add(cb)
			result := scaleBy(sum, base1)
			//
			if ca.IsOne() && cb.IsOne() {
				return apply1(result, "x + x = 2x")
			}
			//
			return apply1(result, "ax + bx = (a + b)x")
		},
	}
}

// Rule 12: distribute multiplication over addition.
func distribute() *Rule {
	return &Rule{
		Id:          12,
		Name:        "distribute",
		Category:    ALGEBRA,
		Description: "Distribute multiplication over addition",
		Domains:     domains(),
		Cost:        3,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Mul)
			if !ok {
				return nil
			}
			//
			var apps []Application
			//
			if sum, ok := t.Rhs.(*expr.Add); ok {
				result := expr.NewAdd(expr.NewMul(t.Lhs, sum.Lhs), expr.NewMul(t.Lhs, sum.Rhs))
				apps = append(apps, Application{result, "a(b + c) = ab + ac"})
			}
			//
			if sum, ok := t.Lhs.(*expr.Add); ok {
				result := expr.NewAdd(expr.NewMul(sum.Lhs, t.Rhs), expr.NewMul(sum.Rhs, t.Rhs))
				apps = append(apps, Application{result, "(a + b)c = ac + bc"})
			}
			//
			return apps
		},
	}
}

// Rule 13: factor out a common factor of two products.
func factorCommon() *Rule {
	return &Rule{
		Id:          13,
		Name:        "factor_common",
		Category:    ALGEBRA,
		Description: "Factor a common factor out of a sum of products",
		Domains:     domains(),
		Cost:        3,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Add)
			if !ok {
				return nil
			}
			//
			lhs, ok1 := t.Lhs.(*expr.Mul)
			rhs, ok2 := t.Rhs.(*expr.Mul)
			//
			if !ok1 || !ok2 {
				return nil
			}
			// Try the common factor in each of the four positions.
			var apps []Application
			//
			if expr.Equal(lhs.Lhs, rhs.Lhs) {
				result := expr.NewMul(lhs.Lhs, expr.NewAdd(lhs.Rhs, rhs.Rhs))
				apps = append(apps, Application{result, "ab + ac = a(b + c)"})
			}
			//
			if expr.Equal(lhs.Lhs, rhs.Rhs) {
				result := expr.NewMul(lhs.Lhs, expr.NewAdd(lhs.Rhs, rhs.Lhs))
				apps = append(apps, Application{result, "ab + ca = a(b + c)"})
			}
			//
			if expr.Equal(lhs.Rhs, rhs.Lhs) {
				result := expr.NewMul(lhs.Rhs, expr.NewAdd(lhs.Lhs, rhs.Rhs))
				apps = append(apps, Application{result, "ab + bc = b(a + c)"})
			}
			//
			if expr.Equal(lhs.Rhs, rhs.Rhs) {
				result := expr.NewMul(lhs.Rhs, expr.NewAdd(lhs.Lhs, rhs.Lhs))
				apps = append(apps, Application{result, "ab + cb = (a + c)b"})
			}
			//
			return apps
		},
	}
}

// Rule 14: difference of squares.
func differenceOfSquares() *Rule {
	return &Rule{
		Id:          14,
		Name:        "difference_of_squares",
		Category:    ALGEBRA,
		Description: "Factor a difference of squares",
		Domains:     domains(),
		Cost:        3,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Sub)
			if !ok {
				return nil
			}
			//
			lhs, ok1 := t.Lhs.(*expr.Pow)
			rhs, ok2 := t.Rhs.(*expr.Pow)
			//
			if ok1 && ok2 && isConstInt(lhs.Exponent, 2) && isConstInt(rhs.Exponent, 2) {
				result := expr.NewMul(
					expr.NewAdd(lhs.Base, rhs.Base),
					expr.NewSub(lhs.Base, rhs.Base))
				//
				return apply1(result, "a^2 - b^2 = (a + b)(a - b)")
			}
			//
			return nil
		},
	}
}

// Rule 15: zero exponent.
func powZero() *Rule {
	return &Rule{
		Id:          15,
		Name:        "pow_zero",
		Category:    ALGEBRA,
		Description: "Anything to the power zero is one",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Pow); ok && expr.IsZero(t.Exponent) {
				return apply1(expr.Const64(1), "x^0 = 1")
			}
			//
			return nil
		},
	}
}

// Rule 16: unit exponent.
func powOne() *Rule {
	return &Rule{
		Id:          16,
		Name:        "pow_one",
		Category:    ALGEBRA,
		Description: "Anything to the power one is itself",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Pow); ok && expr.IsOne(t.Exponent) {
				return apply1(t.Base, "x^1 = x")
			}
			//
			return nil
		},
	}
}

// Rule 17: unit base.
func onePow() *Rule {
	return &Rule{
		Id:          17,
		Name:        "one_pow",
		Category:    ALGEBRA,
		Description: "One to any power is one",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Pow); ok && expr.IsOne(t.Base) {
				return apply1(expr.Const64(1), "1^x = 1")
			}
			//
			return nil
		},
	}
}

// Rule 18: product of powers over a common base.
func powProduct() *Rule {
	return &Rule{
		Id:          18,
		Name:        "pow_product",
		Category:    ALGEBRA,
		Description: "Multiply powers of a common base by adding exponents",
		Domains:     domains(),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Mul)
			if !ok {
				return nil
			}
			//
			lhs, ok1 := t.Lhs.(*expr.Pow)
			rhs, ok2 := t.Rhs.(*expr.Pow)
			//
			if ok1 && ok2 && expr.Equal(lhs.Base, rhs.Base) {
				result := expr.NewPow(lhs.Base, expr.NewAdd(lhs.Exponent, rhs.Exponent))
				return apply1(result, "x^a * x^b = x^(a+b)")
			}
			//
			return nil
		},
	}
}

// Rule 19: power of a power.  Restricted to integral outer exponents, since
// for fractional ones the rewrite is unsound over negative bases (compare
// (x^2)^(1/2) with x).
func powPow() *Rule {
	return &Rule{
		Id:          19,
		Name:        "pow_pow",
		Category:    ALGEBRA,
		Description: "Raise a power to an integral power by multiplying exponents",
		Domains:     domains(),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Pow)
			if !ok {
				return nil
			}
			//
			inner, ok := t.Base.(*expr.Pow)
			//
			if c, isConst := expr.AsConstant(t.Exponent); ok && isConst && c.IsInteger() {
				result := expr.NewPow(inner.Base, expr.NewMul(inner.Exponent, t.Exponent))
				return apply1(result, "(x^a)^b = x^(a*b)")
			}
			//
			return nil
		},
	}
}

// Rule 20: square of a sum.
func binomialSquare() *Rule {
	return &Rule{
		Id:          20,
		Name:        "binomial_square",
		Category:    ALGEBRA,
		Description: "Expand the square of a sum",
		Domains:     domains(),
		Cost:        3,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Pow)
			if !ok || !isConstInt(t.Exponent, 2) {
				return nil
			}
			//
			if sum, ok := t.Base.(*expr.Add); ok {
				a, b := sum.Lhs, sum.Rhs
				result := expr.NewAdd(
					expr.NewAdd(
						expr.NewPow(a, expr.Const64(2)),
						expr.NewMul(expr.Const64(2), expr.NewMul(a, b))),
					expr.NewPow(b, expr.Const64(2)))
				//
				return apply1(result, "(a + b)^2 = a^2 + 2ab + b^2")
			}
			//
			return nil
		},
	}
}

// constPair extracts the values of two constant expressions, or fails.
func constPair(lhs expr.Expr, rhs expr.Expr) (expr.Rational, expr.Rational, bool) {
	a, ok1 := expr.AsConstant(lhs)
	b, ok2 := expr.AsConstant(rhs)
	//
	return a, b, ok1 && ok2
}

// smallExponent extracts an integral exponent within the folding bound.
func smallExponent(e expr.Expr) (int, bool) {
	c, ok := expr.AsConstant(e)
	if !ok || !c.IsInteger() {
		return 0, false
	}
	//
	n, ok := c.Int64()
	if !ok || n < -maxPowFold || n > maxPowFold {
		return 0, false
	}
	//
	return int(n), true
}

// isConstInt checks for a specific integer constant.
func isConstInt(e expr.Expr, n int64) bool {
	c, ok := expr.AsConstant(e)
	return ok && c.Equals(expr.NewRationalFromInt(n))
}

// coefficientOf splits an expression into a rational coefficient and a base
// term, looking through negation and through multiplication by a constant.
func coefficientOf(e expr.Expr) (expr.Rational, expr.Expr) {
	switch t := e.(type) {
	case *expr.Neg:
		c, base := coefficientOf(t.Arg)
		return c.Neg(), base
	case *expr.Mul:
		if c, ok := expr.AsConstant(t.Lhs); ok {
			return c, t.Rhs
		} else if c, ok := expr.AsConstant(t.Rhs); ok {
			return c, t.Lhs
		}
	}
	//
	return expr.NewRationalFromInt(1), e
}

// scaleBy rebuilds a scalar multiple of a base term.
func scaleBy(coeff expr.Rational, base expr.Expr) expr.Expr {
	switch {
	case coeff.IsZero():
		return expr.Const64(0)
	case coeff.IsOne():
		return base
	}
	//
	return expr.NewMul(expr.Const(coeff), base)
}

// foldJust renders a constant-folding justification such as "2 + 3 = 5".
func foldJust(a expr.Rational, op string, b expr.Rational, r expr.Rational) string {
	return fmt.Sprintf("%s %s %s = %s", a, op, b, r)
}
