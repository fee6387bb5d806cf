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

// EquationRules returns the equation rearrangement rules (identifiers
// 61..66).  These isolate the target variable given by the context or, when
// none is given, the only free variable of the equation.
func EquationRules() []*Rule {
	return []*Rule{
		cancelAddition(),
		cancelSubtraction(),
		cancelMultiplication(),
		cancelDivision(),
		swapSides(),
		linearSolve(),
	}
}

// Rule 61: move an added term to the other side.
func cancelAddition() *Rule {
	return &Rule{
		Id:          61,
		Name:        "cancel_addition",
		Category:    EQUATION,
		Description: "Subtract an added term from both sides",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, ctx Context) []Application {
			eq, v, ok := targetEquation(e, ctx)
			if !ok {
				return nil
			}
			//
			add, ok := eq.Lhs.(*expr.Add)
			if !ok {
				return nil
			}
			//
			if expr.ContainsVar(add.Lhs, v) && !expr.ContainsVar(add.Rhs, v) {
				result := expr.NewEquation(add.Lhs, expr.NewSub(eq.Rhs, add.Rhs))
				return apply1(result, "x + a = b -> x = b - a")
			} else if expr.ContainsVar(add.Rhs, v) && !expr.ContainsVar(add.Lhs, v) {
				result := expr.NewEquation(add.Rhs, expr.NewSub(eq.Rhs, add.Lhs))
				return apply1(result, "a + x = b -> x = b - a")
			}
			//
			return nil
		},
	}
}

// Rule 62: move a subtracted term to the other side.
func cancelSubtraction() *Rule {
	return &Rule{
		Id:          62,
		Name:        "cancel_subtraction",
		Category:    EQUATION,
		Description: "Add a subtracted term to both sides",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, ctx Context) []Application {
			eq, v, ok := targetEquation(e, ctx)
			if !ok {
				return nil
			}
			//
			sub, ok := eq.Lhs.(*expr.Sub)
			if !ok {
				return nil
			}
			//
			if expr.ContainsVar(sub.Lhs, v) && !expr.ContainsVar(sub.Rhs, v) {
				result := expr.NewEquation(sub.Lhs, expr.NewAdd(eq.Rhs, sub.Rhs))
				return apply1(result, "x - a = b -> x = b + a")
			} else if expr.ContainsVar(sub.Rhs, v) && !expr.ContainsVar(sub.Lhs, v) {
				result := expr.NewEquation(sub.Rhs, expr.NewSub(sub.Lhs, eq.Rhs))
				return apply1(result, "a - x = b -> x = a - b")
			}
			//
			return nil
		},
	}
}

// Rule 63: divide both sides by a constant coefficient.
func cancelMultiplication() *Rule {
	return &Rule{
		Id:          63,
		Name:        "cancel_multiplication",
		Category:    EQUATION,
		Description: "Divide both sides by a constant factor",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, ctx Context) []Application {
			eq, v, ok := targetEquation(e, ctx)
			if !ok {
				return nil
			}
			//
			mul, ok := eq.Lhs.(*expr.Mul)
			if !ok {
				return nil
			}
			//
			if c, ok := expr.AsConstant(mul.Lhs); ok && !c.IsZero() && expr.ContainsVar(mul.Rhs, v) {
				result := expr.NewEquation(mul.Rhs, expr.NewDiv(eq.Rhs, mul.Lhs))
				return apply1(result, "cx = b -> x = b/c")
			} else if c, ok := expr.AsConstant(mul.Rhs); ok && !c.IsZero() && expr.ContainsVar(mul.Lhs, v) {
				result := expr.NewEquation(mul.Lhs, expr.NewDiv(eq.Rhs, mul.Rhs))
				return apply1(result, "xc = b -> x = b/c")
			}
			//
			return nil
		},
	}
}

// Rule 64: multiply both sides by a constant divisor.
func cancelDivision() *Rule {
	return &Rule{
		Id:          64,
		Name:        "cancel_division",
		Category:    EQUATION,
		Description: "Multiply both sides by a constant divisor",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, ctx Context) []Application {
			eq, v, ok := targetEquation(e, ctx)
			if !ok {
				return nil
			}
			//
			div, ok := eq.Lhs.(*expr.Div)
			if !ok {
				return nil
			}
			//
			if c, ok := expr.AsConstant(div.Rhs); ok && !c.IsZero() && expr.ContainsVar(div.Lhs, v) {
				result := expr.NewEquation(div.Lhs, expr.NewMul(eq.Rhs, div.Rhs))
				return apply1(result, "x/a = b -> x = ab")
			}
			//
			return nil
		},
	}
}

// Rule 65: swap the sides of an equation whose target sits on the right.
func swapSides() *Rule {
	return &Rule{
		Id:          65,
		Name:        "swap_sides",
		Category:    EQUATION,
		Description: "Swap sides so the target variable is on the left",
		Domains:     domains(),
		Cost:        1,
		Reversible:  true,
		Apply: func(e expr.Expr, ctx Context) []Application {
			eq, v, ok := targetEquation(e, ctx)
			if !ok {
				return nil
			}
			//
			if expr.ContainsVar(eq.Rhs, v) && !expr.ContainsVar(eq.Lhs, v) {
				return apply1(expr.NewEquation(eq.Rhs, eq.Lhs), "a = b -> b = a")
			}
			//
			return nil
		},
	}
}

// Rule 66: solve a linear equation in one step.
func linearSolve() *Rule {
	return &Rule{
		Id:          66,
		Name:        "linear_solve",
		Category:    EQUATION,
		Description: "Solve ax + b = c directly",
		Domains:     domains(),
		Cost:        2,
		Apply: func(e expr.Expr, ctx Context) []Application {
			eq, v, ok := targetEquation(e, ctx)
			if !ok {
				return nil
			}
			//
			c, ok := expr.AsConstant(eq.Rhs)
			if !ok {
				return nil
			}
			//
			add, ok := eq.Lhs.(*expr.Add)
			if !ok {
				return nil
			}
			//
			b, ok := expr.AsConstant(add.Rhs)
			if !ok {
				return nil
			}
			//
			a, base := coefficientOf(add.Lhs)
			//
			if u, ok := base.(*expr.Variable); ok && u.Symbol == v && !a.IsZero() {
				solution := c.Sub(b).Div(a)
				result := expr.NewEquation(base, expr.Const(solution))
				//
				return apply1(result, "ax + b = c -> x = (c - b)/a")
			}
			//
			return nil
		},
	}
}

// targetEquation matches an equation together with the variable to isolate,
// taken from the context or inferred when the equation has exactly one free
// variable.
func targetEquation(e expr.Expr, ctx Context) (*expr.Equation, expr.Symbol, bool) {
	eq, ok := e.(*expr.Equation)
	if !ok {
		return nil, 0, false
	}
	//
	if ctx.TargetVar.HasValue() {
		return eq, ctx.TargetVar.Unwrap(), true
	}
	//
	if vars := expr.FreeVars(eq); len(vars) == 1 {
		return eq, vars[0], true
	}
	//
	return nil, 0, false
}
