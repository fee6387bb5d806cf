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

// maxFactorialFold bounds the arguments which factorial and binomial folding
// will expand, keeping folded values within 64 bits.
const maxFactorialFold = 20

// CombinatoricsRules returns the factorial, binomial coefficient and finite
// summation rules (identifiers 71..80).
func CombinatoricsRules() []*Rule {
	return []*Rule{
		factorialFold(),
		factorialUnfold(),
		binomialZero(),
		binomialSelf(),
		binomialOne(),
		binomialSymmetry(),
		binomialFold(),
		pascalIdentity(),
		gaussSummation(),
		constantSummation(),
	}
}

// Rule 71: fold a small factorial to its value.
func factorialFold() *Rule {
	return &Rule{
		Id:          71,
		Name:        "factorial_fold",
		Category:    COMBINATORIAL,
		Description: "Fold a small factorial (e.g. 5! = 120)",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Factorial)
			if !ok {
				return nil
			}
			//
			if n, ok := smallNat(t.Arg); ok {
				value := factorialValue(n)
				return apply1(expr.Const64(value), fmt.Sprintf("%d! = %d", n, value))
			}
			//
			return nil
		},
	}
}

// Rule 72: unfold one step of a factorial.
func factorialUnfold() *Rule {
	return &Rule{
		Id:          72,
		Name:        "factorial_unfold",
		Category:    COMBINATORIAL,
		Description: "Unfold a factorial one step",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        2,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Factorial)
			if !ok {
				return nil
			}
			//
			if n, ok := smallNat(t.Arg); ok && n >= 1 {
				result := expr.NewMul(
					expr.Const64(n),
					expr.NewFactorial(expr.Const64(n-1)))
				//
				return apply1(result, "n! = n * (n-1)!")
			}
			//
			return nil
		},
	}
}

// Rule 73: choosing nothing.
func binomialZero() *Rule {
	return &Rule{
		Id:          73,
		Name:        "binomial_zero",
		Category:    COMBINATORIAL,
		Description: "Choosing zero items has one way",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Binomial); ok && expr.IsZero(t.K) {
				return apply1(expr.Const64(1), "C(n,0) = 1 for all n")
			}
			//
			return nil
		},
	}
}

// Rule 74: choosing everything.
func binomialSelf() *Rule {
	return &Rule{
		Id:          74,
		Name:        "binomial_self",
		Category:    COMBINATORIAL,
		Description: "Choosing all items has one way",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Binomial); ok && expr.Equal(t.N, t.K) {
				return apply1(expr.Const64(1), "C(n,n) = 1 for all n")
			}
			//
			return nil
		},
	}
}

// Rule 75: choosing a single item.
func binomialOne() *Rule {
	return &Rule{
		Id:          75,
		Name:        "binomial_one",
		Category:    COMBINATORIAL,
		Description: "Choosing one item has n ways",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			if t, ok := e.(*expr.Binomial); ok && expr.IsOne(t.K) {
				return apply1(t.N, "C(n,1) = n")
			}
			//
			return nil
		},
	}
}

// Rule 76: binomial symmetry.
func binomialSymmetry() *Rule {
	return &Rule{
		Id:          76,
		Name:        "binomial_symmetry",
		Category:    COMBINATORIAL,
		Description: "Reflect a binomial coefficient",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        2,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Binomial)
			if !ok {
				return nil
			}
			//
			n, ok1 := smallNat(t.N)
			k, ok2 := smallNat(t.K)
			//
			if ok1 && ok2 && k <= n {
				result := expr.NewBinomial(t.N, expr.Const64(n-k))
				return apply1(result, "C(n,k) = C(n,n-k)")
			}
			//
			return nil
		},
	}
}

// Rule 77: fold a small binomial coefficient to its value.
func binomialFold() *Rule {
	return &Rule{
		Id:          77,
		Name:        "binomial_fold",
		Category:    COMBINATORIAL,
		Description: "Fold a small binomial coefficient (e.g. C(5,2) = 10)",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        1,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Binomial)
			if !ok {
				return nil
			}
			//
			n, ok1 := smallNat(t.N)
			k, ok2 := smallNat(t.K)
			//
			if ok1 && ok2 {
				value := binomialValue(n, k)
				return apply1(expr.Const64(value), fmt.Sprintf("C(%d,%d) = %d", n, k, value))
			}
			//
			return nil
		},
	}
}

// Rule 78: Pascal's identity.
func pascalIdentity() *Rule {
	return &Rule{
		Id:          78,
		Name:        "pascal_identity",
		Category:    COMBINATORIAL,
		Description: "Expand a binomial coefficient via Pascal's identity",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        3,
		Reversible:  true,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Binomial)
			if !ok {
				return nil
			}
			//
			n, ok1 := smallNat(t.N)
			k, ok2 := smallNat(t.K)
			//
			if ok1 && ok2 && n >= 1 && k >= 1 {
				result := expr.NewAdd(
					expr.NewBinomial(expr.Const64(n-1), expr.Const64(k-1)),
					expr.NewBinomial(expr.Const64(n-1), expr.Const64(k)))
				//
				return apply1(result, "C(n,k) = C(n-1,k-1) + C(n-1,k)")
			}
			//
			return nil
		},
	}
}

// Rule 79: the Gauss summation formula.
func gaussSummation() *Rule {
	return &Rule{
		Id:          79,
		Name:        "gauss_summation",
		Category:    COMBINATORIAL,
		Description: "Close the sum of the first n integers",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Summation)
			if !ok || !expr.IsOne(t.From) {
				return nil
			}
			//
			body, ok := t.Body.(*expr.Variable)
			if !ok || body.Symbol != t.Var || expr.ContainsVar(t.To, t.Var) {
				return nil
			}
			//
			result := expr.NewDiv(
				expr.NewMul(t.To, expr.NewAdd(t.To, expr.Const64(1))),
				expr.Const64(2))
			//
			return apply1(result, "sum(i=1..n, i) = n(n+1)/2")
		},
	}
}

// Rule 80: a summation whose body is free of the index.
func constantSummation() *Rule {
	return &Rule{
		Id:          80,
		Name:        "constant_summation",
		Category:    COMBINATORIAL,
		Description: "Close a sum of a constant body",
		Domains:     domains(DOMAIN_COMBINATORIAL),
		Cost:        2,
		Apply: func(e expr.Expr, _ Context) []Application {
			t, ok := e.(*expr.Summation)
			if !ok || expr.ContainsVar(t.Body, t.Var) {
				return nil
			}
			//
			lo, ok1 := constInt(t.From)
			hi, ok2 := constInt(t.To)
			//
			if ok1 && ok2 && lo <= hi {
				result := expr.NewMul(expr.Const64(hi-lo+1), t.Body)
				return apply1(result, "sum(i=a..b, c) = (b - a + 1)c")
			}
			//
			return nil
		},
	}
}

// smallNat extracts a natural number within the factorial folding bound.
func smallNat(e expr.Expr) (int64, bool) {
	n, ok := constInt(e)
	return n, ok && n >= 0 && n <= maxFactorialFold
}

// constInt extracts an integral constant.
func constInt(e expr.Expr) (int64, bool) {
	c, ok := expr.AsConstant(e)
	if !ok || !c.IsInteger() {
		return 0, false
	}
	//
	return c.Int64()
}

func factorialValue(n int64) int64 {
	value := int64(1)
	//
	for i := int64(2); i <= n; i++ {
		value *= i
	}
	//
	return value
}

func binomialValue(n int64, k int64) int64 {
	if k > n {
		return 0
	} else if k > n-k {
		k = n - k
	}
	//
	value := int64(1)
	//
	for i := int64(1); i <= k; i++ {
		value = value * (n - k + i) / i
	}
	//
	return value
}
