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

import "math"

// Pow represents one expression raised to the power of another.
type Pow struct {
	Base     Expr
	Exponent Expr
}

// NewPow constructs an exponentiation of two expressions.
func NewPow(base Expr, exponent Expr) Expr {
	return &Pow{base, exponent}
}

// Complexity implementation for Expr interface.
func (p *Pow) Complexity() uint {
	return 1 + p.Base.Complexity() + p.Exponent.Complexity()
}

// Eval implementation for Expr interface.
func (p *Pow) Eval(env Environment) (float64, error) {
	base, err := p.Base.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	exponent, err := p.Exponent.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	return powEval(base, exponent)
}

// Substitute implementation for Expr interface.
func (p *Pow) Substitute(sym Symbol, with Expr) Expr {
	return &Pow{p.Base.Substitute(sym, with), p.Exponent.Substitute(sym, with)}
}

func (p *Pow) String() string {
	return p.Base.String() + "^" + p.Exponent.String()
}

func (p *Pow) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	var (
		base     = p.Base.canon(depth+1, st)
		exponent = p.Exponent.canon(depth+1, st)
	)
	// Symbolic exponents stay opaque.
	c, ok := AsConstant(exponent)
	if !ok {
		return &Pow{base, exponent}
	}
	//
	switch {
	case c.IsZero():
		// Includes the pinned convention 0^0 = 1.
		return Const64(1)
	case c.IsOne():
		return base
	}
	// Zero and one bases collapse for positive exponents.
	if b, ok := AsConstant(base); ok {
		if b.IsZero() && c.IsNegative() {
			st.record(divisionByZero())
			return &Pow{base, exponent}
		} else if b.IsZero() {
			return Const64(0)
		} else if b.IsOne() {
			return Const64(1)
		}
	}
	// Exact rational exponents distribute through products and split powers
	// via factor collection; small integer powers of constants fold there.
	collector := newFactorCollector()
	collector.add(base, c)
	//
	return collector.render()
}

func (p *Pow) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Base.vars(bound, out)
	p.Exponent.vars(bound, out)
}

// powEval computes base^exponent, reporting domain failures (zero to a
// negative power, or a result outside the reals) as errors.
func powEval(base float64, exponent float64) (float64, error) {
	if base == 0 && exponent < 0 {
		return 0, divisionByZero()
	}
	//
	val := math.Pow(base, exponent)
	//
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, powUndefined()
	}
	//
	return val, nil
}
