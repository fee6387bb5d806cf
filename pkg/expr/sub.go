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

// Sub represents the difference of two expressions.
type Sub struct {
	Lhs Expr
	Rhs Expr
}

// NewSub constructs the difference of two expressions.
func NewSub(lhs Expr, rhs Expr) Expr {
	return &Sub{lhs, rhs}
}

// Complexity implementation for Expr interface.
func (p *Sub) Complexity() uint {
	return 1 + p.Lhs.Complexity() + p.Rhs.Complexity()
}

// Eval implementation for Expr interface.
func (p *Sub) Eval(env Environment) (float64, error) {
	lhs, err := p.Lhs.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	rhs, err := p.Rhs.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	return lhs - rhs, nil
}

// Substitute implementation for Expr interface.
func (p *Sub) Substitute(sym Symbol, with Expr) Expr {
	return &Sub{p.Lhs.Substitute(sym, with), p.Rhs.Substitute(sym, with)}
}

func (p *Sub) String() string {
	return "(" + p.Lhs.String() + " - " + p.Rhs.String() + ")"
}

func (p *Sub) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	var (
		lhs       = p.Lhs.canon(depth+1, st)
		rhs       = p.Rhs.canon(depth+1, st)
		collector = newTermCollector()
	)
	// Exact constant folding
	if l, lok := AsConstant(lhs); lok {
		if r, rok := AsConstant(rhs); rok {
			return Const(l.Sub(r))
		}
	}
	// Collect like terms, negating the subtrahend
	collector.add(lhs, NewRationalFromInt(1))
	collector.add(rhs, NewRationalFromInt(-1))
	// Done
	return sumOf(collector.terms())
}

func (p *Sub) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Lhs.vars(bound, out)
	p.Rhs.vars(bound, out)
}

// ============================================================================
// Negation
// ============================================================================

// Neg represents the negation of an expression.  Canonical forms carry no
// negation nodes: they fold into term coefficients instead.
type Neg struct {
	Arg Expr
}

// NewNeg constructs the negation of an expression.
func NewNeg(arg Expr) Expr {
	return &Neg{arg}
}

// Complexity implementation for Expr interface.
func (p *Neg) Complexity() uint {
	return 1 + p.Arg.Complexity()
}

// Eval implementation for Expr interface.
func (p *Neg) Eval(env Environment) (float64, error) {
	val, err := p.Arg.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	return -val, nil
}

// Substitute implementation for Expr interface.
func (p *Neg) Substitute(sym Symbol, with Expr) Expr {
	return &Neg{p.Arg.Substitute(sym, with)}
}

func (p *Neg) String() string {
	return "-" + p.Arg.String()
}

func (p *Neg) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	arg := p.Arg.canon(depth+1, st)
	// Exact constant folding
	if c, ok := AsConstant(arg); ok {
		return Const(c.Neg())
	}
	// Fold the negation into a coefficient
	collector := newTermCollector()
	collector.add(arg, NewRationalFromInt(-1))
	// Done
	return sumOf(collector.terms())
}

func (p *Neg) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Arg.vars(bound, out)
}
