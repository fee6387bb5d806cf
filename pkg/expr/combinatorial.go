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
	"fmt"
	"math"
)

// maxFactorial is the largest argument for which factorials are computed,
// since 20! is the largest factorial representable in an int64.
const maxFactorial = 20

// Factorial represents the factorial of an expression.
type Factorial struct {
	Arg Expr
}

// NewFactorial constructs the factorial of an expression.
func NewFactorial(arg Expr) Expr {
	return &Factorial{arg}
}

// Complexity implementation for Expr interface.
func (p *Factorial) Complexity() uint {
	return 1 + p.Arg.Complexity()
}

// Eval implementation for Expr interface.
func (p *Factorial) Eval(env Environment) (float64, error) {
	arg, err := p.Arg.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	n := int64(math.Round(arg))
	//
	if n < 0 || n > maxFactorial {
		return 0, factorialOutOfRange()
	}
	//
	return float64(factorialInt64(n)), nil
}

// Substitute implementation for Expr interface.
func (p *Factorial) Substitute(sym Symbol, with Expr) Expr {
	return &Factorial{p.Arg.Substitute(sym, with)}
}

func (p *Factorial) String() string {
	return fmt.Sprintf("(%s)!", p.Arg)
}

func (p *Factorial) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	arg := p.Arg.canon(depth+1, st)
	// Fold factorials of small integer constants.
	if c, ok := AsConstant(arg); ok && c.IsInteger() {
		if n, ok := c.Int64(); ok {
			switch {
			case n < 0:
				st.record(factorialOutOfRange())
			case n <= maxFactorial:
				return Const64(factorialInt64(n))
			}
		}
	}
	//
	return &Factorial{arg}
}

func (p *Factorial) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Arg.vars(bound, out)
}

// Binomial represents the binomial coefficient of two expressions.
type Binomial struct {
	N Expr
	K Expr
}

// NewBinomial constructs the binomial coefficient "n choose k".
func NewBinomial(n Expr, k Expr) Expr {
	return &Binomial{n, k}
}

// Complexity implementation for Expr interface.
func (p *Binomial) Complexity() uint {
	return 1 + p.N.Complexity() + p.K.Complexity()
}

// Eval implementation for Expr interface.
func (p *Binomial) Eval(env Environment) (float64, error) {
	nval, err := p.N.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	kval, err := p.K.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	var (
		n = int64(math.Round(nval))
		k = int64(math.Round(kval))
	)
	//
	if n < 0 || k < 0 || n > maxFactorial {
		return 0, binomialOutOfRange()
	} else if k > n {
		return 0, nil
	}
	//
	return float64(binomialInt64(n, k)), nil
}

// Substitute implementation for Expr interface.
func (p *Binomial) Substitute(sym Symbol, with Expr) Expr {
	return &Binomial{p.N.Substitute(sym, with), p.K.Substitute(sym, with)}
}

func (p *Binomial) String() string {
	return fmt.Sprintf("C(%s, %s)", p.N, p.K)
}

func (p *Binomial) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	var (
		n = p.N.canon(depth+1, st)
		k = p.K.canon(depth+1, st)
	)
	// Fold binomial coefficients of small integer constants.
	if cn, ok := AsConstant(n); ok && cn.IsInteger() {
		if ck, ok := AsConstant(k); ok && ck.IsInteger() {
			nv, nok := cn.Int64()
			kv, kok := ck.Int64()
			//
			if nok && kok && nv >= 0 && kv >= 0 && nv <= maxFactorial {
				if kv > nv {
					return Const64(0)
				}
				//
				return Const64(binomialInt64(nv, kv))
			}
		}
	}
	//
	return &Binomial{n, k}
}

func (p *Binomial) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.N.vars(bound, out)
	p.K.vars(bound, out)
}

func factorialInt64(n int64) int64 {
	result := int64(1)
	//
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	//
	return result
}

func binomialInt64(n int64, k int64) int64 {
	// Exploit symmetry to shorten the product.
	if k > n-k {
		k = n - k
	}
	//
	result := int64(1)
	//
	for i := int64(0); i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	//
	return result
}
