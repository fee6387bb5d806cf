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
	"math"
	"math/rand/v2"

	"github.com/consensys/go-lemma/pkg/expr"
)

// NumericalEquivalent checks whether two expressions agree at randomly
// sampled points.  Free variables of both sides are drawn uniformly from
// [-10, 10], nudged out of [-0.5, 0.5] to dodge common singularities, and the
// expressions are accepted as equivalent when every sample agrees within a
// relative tolerance.  Samples on which either side fails to evaluate are
// skipped rather than counted as mismatches, so a pair which never evaluates
// is vacuously accepted; callers gate on evaluability first.
func NumericalEquivalent(a expr.Expr, b expr.Expr, samples uint, tolerance float64, rng *rand.Rand) bool {
	vars := unionVars(a, b)
	//
	for i := uint(0); i < samples; i++ {
		env := samplePoint(vars, rng)
		//
		v1, err1 := a.Eval(env)
		v2, err2 := b.Eval(env)
		//
		if err1 != nil || err2 != nil {
			continue
		}
		//
		if math.Abs(v1-v2) > tolerance*(1.0+math.Max(math.Abs(v1), math.Abs(v2))) {
			return false
		}
	}
	//
	return true
}

// NumericalZero checks whether an expression evaluates to zero at randomly
// sampled points, under the same sampling regime as NumericalEquivalent.
func NumericalZero(e expr.Expr, samples uint, tolerance float64, rng *rand.Rand) bool {
	vars := unionVars(e)
	//
	for i := uint(0); i < samples; i++ {
		env := samplePoint(vars, rng)
		//
		if v, err := e.Eval(env); err == nil && math.Abs(v) > tolerance {
			return false
		}
	}
	//
	return true
}

// Evaluable determines whether an expression can be numerically sampled at
// all, which excludes anything containing an unevaluated derivative, integral
// or quantifier.
func Evaluable(e expr.Expr) bool {
	switch t := e.(type) {
	case *expr.Constant, *expr.Pi, *expr.E, *expr.Variable:
		return true
	case *expr.Func:
		return Evaluable(t.Arg)
	case *expr.Add:
		return Evaluable(t.Lhs) && Evaluable(t.Rhs)
	case *expr.Sub:
		return Evaluable(t.Lhs) && Evaluable(t.Rhs)
	case *expr.Neg:
		return Evaluable(t.Arg)
	case *expr.Mul:
		return Evaluable(t.Lhs) && Evaluable(t.Rhs)
	case *expr.Div:
		return Evaluable(t.Lhs) && Evaluable(t.Rhs)
	case *expr.Pow:
		return Evaluable(t.Base) && Evaluable(t.Exponent)
	case *expr.Sum:
		for _, term := range t.Terms {
			if !Evaluable(term.Expr) {
				return false
			}
		}
		//
		return true
	case *expr.Product:
		for _, factor := range t.Factors {
			if !Evaluable(factor.Base) {
				return false
			}
		}
		//
		return true
	case *expr.Factorial:
		return Evaluable(t.Arg)
	case *expr.Binomial:
		return Evaluable(t.N) && Evaluable(t.K)
	case *expr.Summation:
		return Evaluable(t.From) && Evaluable(t.To) && Evaluable(t.Body)
	case *expr.Equation:
		return Evaluable(t.Lhs) && Evaluable(t.Rhs)
	case *expr.Inequality:
		return Evaluable(t.Lhs) && Evaluable(t.Rhs)
	case *expr.Derivative, *expr.Integral, *expr.Quantifier:
		return false
	default:
		panic("unreachable")
	}
}

// unionVars collects the free variables of the given expressions.
func unionVars(exprs ...expr.Expr) []expr.Symbol {
	var vars []expr.Symbol
	//
	seen := make(map[expr.Symbol]bool)
	//
	for _, e := range exprs {
		for _, v := range expr.FreeVars(e) {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	//
	return vars
}

// samplePoint draws a random assignment for the given variables, avoiding the
// band around zero where division and logarithm singularities cluster.
func samplePoint(vars []expr.Symbol, rng *rand.Rand) expr.Environment {
	env := make(expr.Environment, len(vars))
	//
	for _, v := range vars {
		val := rng.Float64()*20.0 - 10.0
		//
		if val >= -0.5 && val <= 0.5 {
			if val >= 0 {
				val += 1.0
			} else {
				val -= 1.0
			}
		}
		//
		env[v] = val
	}
	//
	return env
}
