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

// CalculusRules returns the symbolic differentiation rules (identifiers
// 21..31).
func CalculusRules() []*Rule {
	return []*Rule{
		derivativeConstant(),
		derivativeVariable(),
		powerRule(),
		sumRule(),
		differenceRule(),
		productRule(),
		quotientRule(),
		sinRule(),
		cosRule(),
		expRule(),
		lnRule(),
	}
}

// IntegrationRules returns the symbolic integration rules (identifiers
// 32..40).
func IntegrationRules() []*Rule {
	return []*Rule{
		powerIntegral(),
		constantIntegral(),
		sumIntegral(),
		differenceIntegral(),
		sinIntegral(),
		cosIntegral(),
		expIntegral(),
		reciprocalIntegral(),
		constantMultipleIntegral(),
	}
}

// ============================================================================
// Differentiation
// ============================================================================

// Rule 21: derivative of an expression free of the differentiation variable.
func derivativeConstant() *Rule {
	return &Rule{
		Id:          21,
		Name:        "derivative_constant",
		Category:    CALCULUS,
		Description: "The derivative of a constant is zero",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Derivative); ok && !expr.ContainsVar(t.Body, t.Var) {
				return apply1(expr.Const64(0), "d/dx(c) = 0 (c does not contain x)")
			}
			//
			return nil
		},
	}
}

// Rule 22: derivative of the differentiation variable itself.
func derivativeVariable() *Rule {
	return &Rule{
		Id:          22,
		Name:        "derivative_variable",
		Category:    CALCULUS,
		Description: "The derivative of the variable itself is one",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Derivative)
			if !ok {
				return nil
			}
			//
			if v, ok := t.Body.(*expr.Variable); ok && v.Symbol == t.Var {
				return apply1(expr.Const64(1), "d/dx(x) = 1")
			}
			//
			return nil
		},
	}
}

// Rule 23: power rule for differentiation.
func powerRule() *Rule {
	return &Rule{
		Id:          23,
		Name:        "power_rule",
		Category:    CALCULUS,
		Description: "Differentiate a constant power of the variable",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Derivative)
			if !ok {
				return nil
			}
			//
			pow, ok := t.Body.(*expr.Pow)
			if !ok {
				return nil
			}
			//
			v, ok1 := pow.Base.(*expr.Variable)
			n, ok2 := expr.AsConstant(pow.Exponent)
			//
			if ok1 && ok2 && v.Symbol == t.Var {
				// n * x^(n-1)
				result := expr.NewMul(
					expr.Const(n),
					expr.NewPow(pow.Base, expr.Const(n.Sub(expr.NewRationalFromInt(1)))))
				//
				return apply1(result, "d/dx(x^n) = n * x^(n-1)")
			}
			//
			return nil
		},
	}
}

// Rule 24: derivative of a sum.
func sumRule() *Rule {
	return &Rule{
		Id:          24,
		Name:        "sum_rule",
		Category:    CALCULUS,
		Description: "Differentiate a sum termwise",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Derivative)
			if !ok {
				return nil
			}
			//
			if add, ok := t.Body.(*expr.Add); ok {
				result := expr.NewAdd(
					expr.NewDerivative(add.Lhs, t.Var),
					expr.NewDerivative(add.Rhs, t.Var))
				//
				return apply1(result, "d/dx(f + g) = f' + g'")
			}
			//
			return nil
		},
	}
}

// Rule 25: derivative of a difference.
func differenceRule() *Rule {
	return &Rule{
		Id:          25,
		Name:        "difference_rule",
		Category:    CALCULUS,
		Description: "Differentiate a difference termwise",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Derivative)
			if !ok {
				return nil
			}
			//
			if sub, ok := t.Body.(*expr.Sub); ok {
				result := expr.NewSub(
					expr.NewDerivative(sub.Lhs, t.Var),
					expr.NewDerivative(sub.Rhs, t.Var))
				//
				return apply1(result, "d/dx(f - g) = f' - g'")
			}
			//
			return nil
		},
	}
}

// Rule 26: product rule.
func productRule() *Rule {
	return &Rule{
		Id:          26,
		Name:        "product_rule",
		Category:    CALCULUS,
		Description: "Differentiate a product",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Derivative)
			if !ok {
				return nil
			}
			//
			if mul, ok := t.Body.(*expr.Mul); ok {
				f, g := mul.Lhs, mul.Rhs
				result := expr.NewAdd(
					expr.NewMul(expr.NewDerivative(f, t.Var), g),
					expr.NewMul(f, expr.NewDerivative(g, t.Var)))
				//
				return apply1(result, "d/dx(fg) = f'g + fg'")
			}
			//
			return nil
		},
	}
}

// Rule 27: quotient rule.
func quotientRule() *Rule {
	return &Rule{
		Id:          27,
		Name:        "quotient_rule",
		Category:    CALCULUS,
		Description: "Differentiate a quotient",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        3,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Derivative)
			if !ok {
				return nil
			}
			//
			if div, ok := t.Body.(*expr.Div); ok {
				f, g := div.Lhs, div.Rhs
				numerator := expr.NewSub(
					expr.NewMul(expr.NewDerivative(f, t.Var), g),
					expr.NewMul(f, expr.NewDerivative(g, t.Var)))
				result := expr.NewDiv(numerator, expr.NewPow(g, expr.Const64(2)))
				//
				return apply1(result, "d/dx(f/g) = (f'g - fg')/g^2")
			}
			//
			return nil
		},
	}
}

// Rule 28: derivative of sine, with chain factor.
func sinRule() *Rule {
	return &Rule{
		Id:          28,
		Name:        "sin_rule",
		Category:    CALCULUS,
		Description: "Differentiate a sine",
		Domains:     domains(DOMAIN_DIFF, DOMAIN_TRIG),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			if u, ok := derivativeOfFunc(e, expr.SIN); ok {
				t := e.(*expr.Derivative)
				result := expr.NewMul(expr.Cos(u), expr.NewDerivative(u, t.Var))
				//
				return apply1(result, "d/dx(sin(u)) = cos(u) * u'")
			}
			//
			return nil
		},
	}
}

// Rule 29: derivative of cosine, with chain factor.
func cosRule() *Rule {
	return &Rule{
		Id:          29,
		Name:        "cos_rule",
		Category:    CALCULUS,
		Description: "Differentiate a cosine",
		Domains:     domains(DOMAIN_DIFF, DOMAIN_TRIG),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			if u, ok := derivativeOfFunc(e, expr.COS); ok {
				t := e.(*expr.Derivative)
				result := expr.NewMul(
					expr.NewNeg(expr.Sin(u)),
					expr.NewDerivative(u, t.Var))
				//
				return apply1(result, "d/dx(cos(u)) = -sin(u) * u'")
			}
			//
			return nil
		},
	}
}

// Rule 30: derivative of the exponential, with chain factor.
func expRule() *Rule {
	return &Rule{
		Id:          30,
		Name:        "exp_rule",
		Category:    CALCULUS,
		Description: "Differentiate an exponential",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			if u, ok := derivativeOfFunc(e, expr.EXP); ok {
				t := e.(*expr.Derivative)
				result := expr.NewMul(expr.Exp(u), expr.NewDerivative(u, t.Var))
				//
				return apply1(result, "d/dx(exp(u)) = exp(u) * u'")
			}
			//
			return nil
		},
	}
}

// Rule 31: derivative of the natural logarithm, with chain factor.
func lnRule() *Rule {
	return &Rule{
		Id:          31,
		Name:        "ln_rule",
		Category:    CALCULUS,
		Description: "Differentiate a natural logarithm",
		Domains:     domains(DOMAIN_DIFF),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			if u, ok := derivativeOfFunc(e, expr.LN); ok {
				t := e.(*expr.Derivative)
				result := expr.NewDiv(expr.NewDerivative(u, t.Var), u)
				//
				return apply1(result, "d/dx(ln(u)) = u'/u")
			}
			//
			return nil
		},
	}
}

// ============================================================================
// Integration
// ============================================================================

// Rule 32: power rule for integration.
func powerIntegral() *Rule {
	return &Rule{
		Id:          32,
		Name:        "power_integral",
		Category:    INTEGRATION,
		Description: "Integrate a constant power of the variable",
		Domains:     domains(DOMAIN_INT),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Integral)
			if !ok {
				return nil
			}
			// integral(x dx) = x^2/2
			if v, ok := t.Body.(*expr.Variable); ok && v.Symbol == t.Var {
				result := expr.NewDiv(
					expr.NewPow(t.Body, expr.Const64(2)),
					expr.Const64(2))
				//
				return apply1(result, "integral(x dx) = x^2/2")
			}
			// integral(x^n dx) = x^(n+1)/(n+1) for n != -1
			if pow, ok := t.Body.(*expr.Pow); ok {
				v, ok1 := pow.Base.(*expr.Variable)
				n, ok2 := expr.AsConstant(pow.Exponent)
				minusOne := expr.NewRationalFromInt(-1)
				//
				if ok1 && ok2 && v.Symbol == t.Var && !n.Equals(minusOne) {
					next := n.Add(expr.NewRationalFromInt(1))
					result := expr.NewDiv(
						expr.NewPow(pow.Base, expr.Const(next)),
						expr.Const(next))
					//
					return apply1(result, "integral(x^n dx) = x^(n+1)/(n+1)")
				}
			}
			//
			return nil
		},
	}
}

// Rule 33: integral of an expression free of the integration variable.
func constantIntegral() *Rule {
	return &Rule{
		Id:          33,
		Name:        "constant_integral",
		Category:    INTEGRATION,
		Description: "Integrate a constant",
		Domains:     domains(DOMAIN_INT),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Integral)
			if !ok || expr.ContainsVar(t.Body, t.Var) {
				return nil
			}
			//
			result := expr.NewMul(t.Body, expr.NewVar(t.Var))
			//
			return apply1(result, "integral(c dx) = cx")
		},
	}
}

// Rule 34: integral of a sum.
func sumIntegral() *Rule {
	return &Rule{
		Id:          34,
		Name:        "sum_integral",
		Category:    INTEGRATION,
		Description: "Integrate a sum termwise",
		Domains:     domains(DOMAIN_INT),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Integral)
			if !ok {
				return nil
			}
			//
			if add, ok := t.Body.(*expr.Add); ok {
				result := expr.NewAdd(
					expr.NewIntegral(add.Lhs, t.Var),
					expr.NewIntegral(add.Rhs, t.Var))
				//
				return apply1(result, "integral(f + g) = integral(f) + integral(g)")
			}
			//
			return nil
		},
	}
}

// Rule 35: integral of a difference.
func differenceIntegral() *Rule {
	return &Rule{
		Id:          35,
		Name:        "difference_integral",
		Category:    INTEGRATION,
		Description: "Integrate a difference termwise",
		Domains:     domains(DOMAIN_INT),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Integral)
			if !ok {
				return nil
			}
			//
			if sub, ok := t.Body.(*expr.Sub); ok {
				result := expr.NewSub(
					expr.NewIntegral(sub.Lhs, t.Var),
					expr.NewIntegral(sub.Rhs, t.Var))
				//
				return apply1(result, "integral(f - g) = integral(f) - integral(g)")
			}
			//
			return nil
		},
	}
}

// Rule 36: integral of sine of the variable.
func sinIntegral() *Rule {
	return &Rule{
		Id:          36,
		Name:        "sin_integral",
		Category:    INTEGRATION,
		Description: "Integrate a sine of the variable",
		Domains:     domains(DOMAIN_INT, DOMAIN_TRIG),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if v, ok := integralOfFunc(e, expr.SIN); ok {
				return apply1(expr.NewNeg(expr.Cos(v)), "integral(sin(x) dx) = -cos(x)")
			}
			//
			return nil
		},
	}
}

// Rule 37: integral of cosine of the variable.
func cosIntegral() *Rule {
	return &Rule{
		Id:          37,
		Name:        "cos_integral",
		Category:    INTEGRATION,
		Description: "Integrate a cosine of the variable",
		Domains:     domains(DOMAIN_INT, DOMAIN_TRIG),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if v, ok := integralOfFunc(e, expr.COS); ok {
				return apply1(expr.Sin(v), "integral(cos(x) dx) = sin(x)")
			}
			//
			return nil
		},
	}
}

// Rule 38: integral of the exponential of the variable.
func expIntegral() *Rule {
	return &Rule{
		Id:          38,
		Name:        "exp_integral",
		Category:    INTEGRATION,
		Description: "Integrate an exponential of the variable",
		Domains:     domains(DOMAIN_INT),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if v, ok := integralOfFunc(e, expr.EXP); ok {
				return apply1(expr.Exp(v), "integral(exp(x) dx) = exp(x)")
			}
			//
			return nil
		},
	}
}

// Rule 39: integral of the reciprocal of the variable.
func reciprocalIntegral() *Rule {
	return &Rule{
		Id:          39,
		Name:        "reciprocal_integral",
		Category:    INTEGRATION,
		Description: "Integrate the reciprocal of the variable",
		Domains:     domains(DOMAIN_INT),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Integral)
			if !ok {
				return nil
			}
			// integral(1/x dx)
			if div, ok := t.Body.(*expr.Div); ok && expr.IsOne(div.Lhs) {
				if v, ok := div.Rhs.(*expr.Variable); ok && v.Symbol == t.Var {
					return apply1(expr.Ln(expr.Abs(div.Rhs)), "integral(1/x dx) = ln(abs(x))")
				}
			}
			// integral(x^(-1) dx)
			if pow, ok := t.Body.(*expr.Pow); ok && isConstInt(pow.Exponent, -1) {
				if v, ok := pow.Base.(*expr.Variable); ok && v.Symbol == t.Var {
					return apply1(expr.Ln(expr.Abs(pow.Base)), "integral(x^(-1) dx) = ln(abs(x))")
				}
			}
			//
			return nil
		},
	}
}

// Rule 40: pull a factor free of the integration variable out of the
// integral.
func constantMultipleIntegral() *Rule {
	return &Rule{
		Id:          40,
		Name:        "constant_multiple_integral",
		Category:    INTEGRATION,
		Description: "Pull a constant factor out of an integral",
		Domains:     domains(DOMAIN_INT),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Integral)
			if !ok {
				return nil
			}
			//
			mul, ok := t.Body.(*expr.Mul)
			if !ok {
				return nil
			}
			//
			if !expr.ContainsVar(mul.Lhs, t.Var) && expr.ContainsVar(mul.Rhs, t.Var) {
				result := expr.NewMul(mul.Lhs, expr.NewIntegral(mul.Rhs, t.Var))
				return apply1(result, "integral(c*f dx) = c * integral(f dx)")
			} else if !expr.ContainsVar(mul.Rhs, t.Var) && expr.ContainsVar(mul.Lhs, t.Var) {
				result := expr.NewMul(mul.Rhs, expr.NewIntegral(mul.Lhs, t.Var))
				return apply1(result, "integral(f*c dx) = c * integral(f dx)")
			}
			//
			return nil
		},
	}
}

// derivativeOfFunc matches the derivative of a given unary function,
// returning the function argument.
func derivativeOfFunc(e expr.Expr, op uint8) (expr.Expr, bool) {
	if t, ok := e.(*expr.Derivative); ok {
		if fn, ok := t.Body.(*expr.Func); ok && fn.Op == op {
			return fn.Arg, true
		}
	}
	//
	return nil, false
}

// integralOfFunc matches the integral of a given unary function applied
// directly to the integration variable, returning that variable.
func integralOfFunc(e expr.Expr, op uint8) (expr.Expr, bool) {
	if t, ok := e.(*expr.Integral); ok {
		if fn, ok := t.Body.(*expr.Func); ok && fn.Op == op {
			if v, ok := fn.Arg.(*expr.Variable); ok && v.Symbol == t.Var {
				return fn.Arg, true
			}
		}
	}
	//
	return nil, false
}
