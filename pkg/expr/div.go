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

// Div represents the quotient of two expressions.
type Div struct {
	Lhs Expr
	Rhs Expr
}

// NewDiv constructs the quotient of two expressions.
func NewDiv(lhs Expr, rhs Expr) Expr {
	return &Div{lhs, rhs}
}

// Complexity implementation for Expr interface.
func (p *Div) Complexity() uint {
	return 1 + p.Lhs.Complexity() + p.Rhs.Complexity()
}

// Eval implementation for Expr interface.
func (p *Div) Eval(env Environment) (float64, error) {
	lhs, err := p.Lhs.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	rhs, err := p.Rhs.Eval(env)
	if err != nil {
		return 0, err
	}
	// Guard against dividing by (numerically) zero
	if math.Abs(rhs) < 1e-15 {
		return 0, divisionByZero()
	}
	//
	return lhs / rhs, nil
}

// Substitute implementation for Expr interface.
func (p *Div) Substitute(sym Symbol, with Expr) Expr {
	return &Div{p.Lhs.Substitute(sym, with), p.Rhs.Substitute(sym, with)}
}

func (p *Div) String() string {
	return "(" + p.Lhs.String() + " / " + p.Rhs.String() + ")"
}

func (p *Div) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	var (
		lhs = p.Lhs.canon(depth+1, st)
		rhs = p.Rhs.canon(depth+1, st)
	)
	// A literal zero denominator is a domain failure: record it and leave
	// the quotient unreduced.
	if IsZero(rhs) {
		st.record(divisionByZero())
		return &Div{lhs, rhs}
	}
	// Exact constant folding
	if l, lok := AsConstant(lhs); lok {
		if r, rok := AsConstant(rhs); rok {
			return Const(l.Div(r))
		}
	}
	// Combine factors, inverting the denominator
	collector := newFactorCollector()
	collector.add(lhs, NewRationalFromInt(1))
	collector.add(rhs, NewRationalFromInt(-1))
	// Done
	return collector.render()
}

func (p *Div) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Lhs.vars(bound, out)
	p.Rhs.vars(bound, out)
}
