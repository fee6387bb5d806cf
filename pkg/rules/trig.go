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
	"github.com/consensys/go-lemma/pkg/expr"
)

// TrigRules returns the trigonometric identity rules (identifiers 41..50).
func TrigRules() []*Rule {
	return []*Rule{
		sinZero(),
		cosZero(),
		tanZero(),
		sinPi(),
		cosPi(),
		sinHalfPi(),
		cosHalfPi(),
		pythagoreanIdentity(),
		tanDefinition(),
		sinDoubleAngle(),
	}
}

// Rule 41: sine at zero.
func sinZero() *Rule {
	return specialValue(41, "sin_zero", expr.SIN, isZeroArg, expr.Const64(0), "sin(0) = 0")
}

// Rule 42: cosine at zero.
func cosZero() *Rule {
	return specialValue(42, "cos_zero", expr.COS, isZeroArg, expr.Const64(1), "cos(0) = 1")
}

// Rule 43: tangent at zero.
func tanZero() *Rule {
	return specialValue(43, "tan_zero", expr.TAN, isZeroArg, expr.Const64(0), "tan(0) = 0")
}

// Rule 44: sine at pi.
func sinPi() *Rule {
	return specialValue(44, "sin_pi", expr.SIN, isPiArg, expr.Const64(0), "sin(pi) = 0")
}

// Rule 45: cosine at pi.
func cosPi() *Rule {
	return specialValue(45, "cos_pi", expr.COS, isPiArg, expr.Const64(-1), "cos(pi) = -1")
}

// Rule 46: sine at pi over two.
func sinHalfPi() *Rule {
	return specialValue(46, "sin_half_pi", expr.SIN, isHalfPiArg, expr.Const64(1), "sin(pi/2) = 1")
}

// Rule 47: cosine at pi over two.
func cosHalfPi() *Rule {
	return specialValue(47, "cos_half_pi", expr.COS, isHalfPiArg, expr.Const64(0), "cos(pi/2) = 0")
}

// Rule 48: the Pythagorean identity.
func pythagoreanIdentity() *Rule {
	return &Rule{
		Id:          48,
		Name:        "pythagorean_identity",
		Category:    TRIGONOMETRY,
		Description: "Collapse sin(x)^2 + cos(x)^2 to one",
		Domains:     domains(DOMAIN_TRIG),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Add)
			if !ok {
				return nil
			}
			//
			u1, op1, ok1 := squaredFunc(t.Lhs)
			u2, op2, ok2 := squaredFunc(t.Rhs)
			//
			if ok1 && ok2 && expr.Equal(u1, u2) {
				sinCos := op1 == expr.SIN && op2 == expr.COS
				cosSin := op1 == expr.COS && op2 == expr.SIN
				//
				if sinCos || cosSin {
					return apply1(expr.Const64(1), "sin(x)^2 + cos(x)^2 = 1")
				}
			}
			//
			return nil
		},
	}
}

// Rule 49: definition of the tangent.
func tanDefinition() *Rule {
	return &Rule{
		Id:          49,
		Name:        "tan_definition",
		Category:    TRIGONOMETRY,
		Description: "Rewrite a tangent as sine over cosine",
		Domains:     domains(DOMAIN_TRIG),
		Cost:        2,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			if fn, ok := e.(*expr.Func); ok && fn.Op == expr.TAN {
				result := expr.NewDiv(expr.Sin(fn.Arg), expr.Cos(fn.Arg))
				return apply1(result, "tan(x) = sin(x)/cos(x)")
			}
			//
			return nil
		},
	}
}

// Rule 50: the sine double-angle identity.
func sinDoubleAngle() *Rule {
	return &Rule{
		Id:          50,
		Name:        "sin_double_angle",
		Category:    TRIGONOMETRY,
		Description: "Collapse 2sin(x)cos(x) to sin(2x)",
		Domains:     domains(DOMAIN_TRIG),
		Cost:        3,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Mul)
			if !ok {
				return nil
			}
			// 2 * (sin(x) * cos(x))
			if isConstInt(t.Lhs, 2) {
				if inner, ok := t.Rhs.(*expr.Mul); ok {
					if u, ok := sinCosPair(inner.Lhs, inner.Rhs); ok {
						result := expr.Sin(expr.NewMul(expr.Const64(2), u))
						return apply1(result, "2sin(x)cos(x) = sin(2x)")
					}
				}
			}
			// (2 * sin(x)) * cos(x)
			if lhs, ok := t.Lhs.(*expr.Mul); ok && isConstInt(lhs.Lhs, 2) {
				if u, ok := sinCosPair(lhs.Rhs, t.Rhs); ok {
					result := expr.Sin(expr.NewMul(expr.Const64(2), u))
					return apply1(result, "2sin(x)cos(x) = sin(2x)")
				}
			}
			//
			return nil
		},
	}
}

// specialValue constructs a rule folding a trigonometric function at a
// well-known argument.
func specialValue(id RuleID, name string, op uint8, match func(expr.Expr) bool,
	value expr.Expr, justification string) *Rule {
	return &Rule{
		Id:          id,
		Name:        name,
		Category:    TRIGONOMETRY,
		Description: "Fold " + justification,
		Domains:     domains(DOMAIN_TRIG),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if fn, ok := e.(*expr.Func); ok && fn.Op == op && match(fn.Arg) {
				return apply1(value, justification)
			}
			//
			return nil
		},
	}
}

func isZeroArg(e expr.Expr) bool {
	return expr.IsZero(e)
}

func isPiArg(e expr.Expr) bool {
	_, ok := e.(*expr.Pi)
	return ok
}

// isHalfPiArg recognises pi/2, in raw division form or as a canonical scalar
// multiple of pi.
func isHalfPiArg(e expr.Expr) bool {
	if t, ok := e.(*expr.Div); ok {
		return isPiArg(t.Lhs) && isConstInt(t.Rhs, 2)
	}
	//
	if s, ok := e.(*expr.Sum); ok && len(s.Terms) == 1 {
		return isPiArg(s.Terms[0].Expr) && s.Terms[0].Coeff.Equals(expr.NewRational(1, 2))
	}
	//
	return false
}

// squaredFunc matches the square of a unary function application, returning
// the argument and operator.
func squaredFunc(e expr.Expr) (expr.Expr, uint8, bool) {
	if pow, ok := e.(*expr.Pow); ok && isConstInt(pow.Exponent, 2) {
		if fn, ok := pow.Base.(*expr.Func); ok {
			return fn.Arg, fn.Op, true
		}
	}
	//
	return nil, 0, false
}

// sinCosPair matches sin(u)*cos(u) in either order, returning u.
func sinCosPair(a expr.Expr, b expr.Expr) (expr.Expr, bool) {
	f1, ok1 := a.(*expr.Func)
	f2, ok2 := b.(*expr.Func)
	//
	if !ok1 || !ok2 || !expr.Equal(f1.Arg, f2.Arg) {
		return nil, false
	}
	//
	if (f1.Op == expr.SIN && f2.Op == expr.COS) || (f1.Op == expr.COS && f2.Op == expr.SIN) {
		return f1.Arg, true
	}
	//
	return nil, false
}
