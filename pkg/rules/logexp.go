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

// LogExpRules returns the logarithm and exponential identity rules
// (identifiers 51..58).
func LogExpRules() []*Rule {
	return []*Rule{
		lnOne(),
		lnE(),
		expZero(),
		expOne(),
		expLn(),
		lnExp(),
		lnProduct(),
		lnPower(),
	}
}

// Rule 51: logarithm of one.
func lnOne() *Rule {
	return &Rule{
		Id:          51,
		Name:        "ln_one",
		Category:    LOG_EXP,
		Description: "The logarithm of one is zero",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if fn, ok := e.(*expr.Func); ok && fn.Op == expr.LN && expr.IsOne(fn.Arg) {
				return apply1(expr.Const64(0), "ln(1) = 0")
			}
			//
			return nil
		},
	}
}

// Rule 52: logarithm of Euler's number.
func lnE() *Rule {
	return &Rule{
		Id:          52,
		Name:        "ln_e",
		Category:    LOG_EXP,
		Description: "The logarithm of e is one",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if fn, ok := e.(*expr.Func); ok && fn.Op == expr.LN {
				if _, isE := fn.Arg.(*expr.E); isE {
					return apply1(expr.Const64(1), "ln(e) = 1")
				}
			}
			//
			return nil
		},
	}
}

// Rule 53: exponential of zero.
func expZero() *Rule {
	return &Rule{
		Id:          53,
		Name:        "exp_zero",
		Category:    LOG_EXP,
		Description: "The exponential of zero is one",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if fn, ok := e.(*expr.Func); ok && fn.Op == expr.EXP && expr.IsZero(fn.Arg) {
				return apply1(expr.Const64(1), "exp(0) = 1")
			}
			//
			return nil
		},
	}
}

// Rule 54: exponential of one.
func expOne() *Rule {
	return &Rule{
		Id:          54,
		Name:        "exp_one",
		Category:    LOG_EXP,
		Description: "The exponential of one is e",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if fn, ok := e.(*expr.Func); ok && fn.Op == expr.EXP && expr.IsOne(fn.Arg) {
				return apply1(expr.NewE(), "exp(1) = e")
			}
			//
			return nil
		},
	}
}

// Rule 55: exponential of a logarithm.
func expLn() *Rule {
	return &Rule{
		Id:          55,
		Name:        "exp_ln",
		Category:    LOG_EXP,
		Description: "The exponential inverts the logarithm",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if u, ok := composedFunc(e, expr.EXP, expr.LN); ok {
				return apply1(u, "exp(ln(x)) = x")
			}
			//
			return nil
		},
	}
}

// Rule 56: logarithm of an exponential.
func lnExp() *Rule {
	return &Rule{
		Id:          56,
		Name:        "ln_exp",
		Category:    LOG_EXP,
		Description: "The logarithm inverts the exponential",
		Domains:     domains(),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if u, ok := composedFunc(e, expr.LN, expr.EXP); ok {
				return apply1(u, "ln(exp(x)) = x")
			}
			//
			return nil
		},
	}
}

// Rule 57: logarithm of a product.
func lnProduct() *Rule {
	return &Rule{
		Id:          57,
		Name:        "ln_product",
		Category:    LOG_EXP,
		Description: "Split the logarithm of a product",
		Domains:     domains(),
		Cost:        2,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			fn, ok := e.(*expr.Func)
			if !ok || fn.Op != expr.LN {
				return nil
			}
			//
			if mul, ok := fn.Arg.(*expr.Mul); ok {
				result := expr.NewAdd(expr.Ln(mul.Lhs), expr.Ln(mul.Rhs))
				return apply1(result, "ln(ab) = ln(a) + ln(b)")
			}
			//
			return nil
		},
	}
}

// Rule 58: logarithm of a power.
func lnPower() *Rule {
	return &Rule{
		Id:          58,
		Name:        "ln_power",
		Category:    LOG_EXP,
		Description: "Pull an exponent out of a logarithm",
		Domains:     domains(),
		Cost:        2,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			fn, ok := e.(*expr.Func)
			if !ok || fn.Op != expr.LN {
				return nil
			}
			//
			if pow, ok := fn.Arg.(*expr.Pow); ok {
				result := expr.NewMul(pow.Exponent, expr.Ln(pow.Base))
				return apply1(result, "ln(a^n) = n*ln(a)")
			}
			//
			return nil
		},
	}
}

// composedFunc matches outer(inner(u)), returning u.
func composedFunc(e expr.Expr, outer uint8, inner uint8) (expr.Expr, bool) {
	if fn, ok := e.(*expr.Func); ok && fn.Op == outer {
		if fn2, ok := fn.Arg.(*expr.Func); ok && fn2.Op == inner {
			return fn2.Arg, true
		}
	}
	//
	return nil, false
}
