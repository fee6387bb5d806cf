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

import "fmt"

// Equation asserts that two expressions are equal.
type Equation struct {
	Lhs Expr
	Rhs Expr
}

// NewEquation constructs an equation between two expressions.
func NewEquation(lhs Expr, rhs Expr) Expr {
	return &Equation{lhs, rhs}
}

// Complexity implementation for Expr interface.
func (p *Equation) Complexity() uint {
	return 1 + p.Lhs.Complexity() + p.Rhs.Complexity()
}

// Eval implementation for Expr interface.  An equation evaluates to the
// signed residual of its two sides, hence zero exactly when it holds.
func (p *Equation) Eval(env Environment) (float64, error) {
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
func (p *Equation) Substitute(sym Symbol, with Expr) Expr {
	return &Equation{p.Lhs.Substitute(sym, with), p.Rhs.Substitute(sym, with)}
}

func (p *Equation) String() string {
	return fmt.Sprintf("%s = %s", p.Lhs, p.Rhs)
}

func (p *Equation) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	return &Equation{p.Lhs.canon(depth+1, st), p.Rhs.canon(depth+1, st)}
}

func (p *Equation) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Lhs.vars(bound, out)
	p.Rhs.vars(bound, out)
}

const (
	// LESS_THAN indicates a (strict) less-than inequality.
	LESS_THAN uint8 = iota
	// LESS_THAN_EQUALS indicates a less-than-or-equals inequality.
	LESS_THAN_EQUALS
	// GREATER_THAN indicates a (strict) greater-than inequality.
	GREATER_THAN
	// GREATER_THAN_EQUALS indicates a greater-than-or-equals inequality.
	GREATER_THAN_EQUALS
)

// Inequality relates two expressions by an order comparison of a given kind.
type Inequality struct {
	Kind uint8
	Lhs  Expr
	Rhs  Expr
}

// NewLessThan constructs a (strict) less-than inequality.
func NewLessThan(lhs Expr, rhs Expr) Expr {
	return &Inequality{LESS_THAN, lhs, rhs}
}

// NewLessThanOrEquals constructs a less-than-or-equals inequality.
func NewLessThanOrEquals(lhs Expr, rhs Expr) Expr {
	return &Inequality{LESS_THAN_EQUALS, lhs, rhs}
}

// NewGreaterThan constructs a (strict) greater-than inequality.
func NewGreaterThan(lhs Expr, rhs Expr) Expr {
	return &Inequality{GREATER_THAN, lhs, rhs}
}

// NewGreaterThanOrEquals constructs a greater-than-or-equals inequality.
func NewGreaterThanOrEquals(lhs Expr, rhs Expr) Expr {
	return &Inequality{GREATER_THAN_EQUALS, lhs, rhs}
}

// Complexity implementation for Expr interface.
func (p *Inequality) Complexity() uint {
	return 1 + p.Lhs.Complexity() + p.Rhs.Complexity()
}

// Eval implementation for Expr interface.  An inequality evaluates to one
// when it holds, and zero otherwise.
func (p *Inequality) Eval(env Environment) (float64, error) {
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
	var holds bool
	//
	switch p.Kind {
	case LESS_THAN:
		holds = lhs < rhs
	case LESS_THAN_EQUALS:
		holds = lhs <= rhs
	case GREATER_THAN:
		holds = lhs > rhs
	case GREATER_THAN_EQUALS:
		holds = lhs >= rhs
	default:
		panic("unreachable")
	}
	//
	if holds {
		return 1, nil
	}
	//
	return 0, nil
}

// Substitute implementation for Expr interface.
func (p *Inequality) Substitute(sym Symbol, with Expr) Expr {
	return &Inequality{p.Kind, p.Lhs.Substitute(sym, with), p.Rhs.Substitute(sym, with)}
}

func (p *Inequality) String() string {
	var symbol string
	//
	switch p.Kind {
	case LESS_THAN:
		symbol = "<"
	case LESS_THAN_EQUALS:
		symbol = "<="
	case GREATER_THAN:
		symbol = ">"
	case GREATER_THAN_EQUALS:
		symbol = ">="
	default:
		panic("unreachable")
	}
	//
	return fmt.Sprintf("%s %s %s", p.Lhs, symbol, p.Rhs)
}

func (p *Inequality) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	return &Inequality{p.Kind, p.Lhs.canon(depth+1, st), p.Rhs.canon(depth+1, st)}
}

func (p *Inequality) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Lhs.vars(bound, out)
	p.Rhs.vars(bound, out)
}
