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
	"math"
)

// Constant represents an exact rational constant.
type Constant struct {
	Value Rational
}

// Const constructs a constant expression from a rational.
func Const(val Rational) Expr {
	return &Constant{val}
}

// Const64 constructs a constant expression from an integer.
func Const64(val int64) Expr {
	return &Constant{NewRationalFromInt(val)}
}

// Complexity implementation for Expr interface.
func (p *Constant) Complexity() uint { return 1 }

// Eval implementation for Expr interface.
func (p *Constant) Eval(env Environment) (float64, error) {
	return p.Value.Float64(), nil
}

// Substitute implementation for Expr interface.
func (p *Constant) Substitute(sym Symbol, with Expr) Expr { return p }

func (p *Constant) String() string {
	return p.Value.String()
}

func (p *Constant) canon(depth uint, st *canonState) Expr { return p }

func (p *Constant) vars(bound map[Symbol]bool, out map[Symbol]bool) {}

// Pi represents the transcendental constant π.
type Pi struct{}

// NewPi constructs the constant π.
func NewPi() Expr { return &Pi{} }

// Complexity implementation for Expr interface.
func (p *Pi) Complexity() uint { return 1 }

// Eval implementation for Expr interface.
func (p *Pi) Eval(env Environment) (float64, error) {
	return math.Pi, nil
}

// Substitute implementation for Expr interface.
func (p *Pi) Substitute(sym Symbol, with Expr) Expr { return p }

func (p *Pi) String() string { return "pi" }

func (p *Pi) canon(depth uint, st *canonState) Expr { return p }

func (p *Pi) vars(bound map[Symbol]bool, out map[Symbol]bool) {}

// E represents Euler's number.
type E struct{}

// NewE constructs Euler's number.
func NewE() Expr { return &E{} }

// Complexity implementation for Expr interface.
func (p *E) Complexity() uint { return 1 }

// Eval implementation for Expr interface.
func (p *E) Eval(env Environment) (float64, error) {
	return math.E, nil
}

// Substitute implementation for Expr interface.
func (p *E) Substitute(sym Symbol, with Expr) Expr { return p }

func (p *E) String() string { return "e" }

func (p *E) canon(depth uint, st *canonState) Expr { return p }

func (p *E) vars(bound map[Symbol]bool, out map[Symbol]bool) {}

// AsConstant extracts the exact value of a constant expression, returning
// false for anything which is not a plain rational constant.
func AsConstant(e Expr) (Rational, bool) {
	if c, ok := e.(*Constant); ok {
		return c.Value, true
	}
	//
	return Rational{}, false
}

// IsZero checks whether an expression is the literal constant zero.
func IsZero(e Expr) bool {
	c, ok := e.(*Constant)
	return ok && c.Value.IsZero()
}

// IsOne checks whether an expression is the literal constant one.
func IsOne(e Expr) bool {
	c, ok := e.(*Constant)
	return ok && c.Value.IsOne()
}

// IsAtom checks whether an expression is a leaf (a constant, named constant
// or variable).
func IsAtom(e Expr) bool {
	switch e.(type) {
	case *Constant, *Pi, *E, *Variable:
		return true
	}
	//
	return false
}
