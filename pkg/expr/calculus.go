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

// Derivative represents the (unapplied) derivative of a body with respect to
// a variable.  The variable is treated as bound within the body.
type Derivative struct {
	Body Expr
	Var  Symbol
}

// NewDerivative constructs the derivative of a body with respect to a
// variable.
func NewDerivative(body Expr, v Symbol) Expr {
	return &Derivative{body, v}
}

// Complexity implementation for Expr interface.
func (p *Derivative) Complexity() uint {
	return 1 + p.Body.Complexity()
}

// Eval implementation for Expr interface.
func (p *Derivative) Eval(env Environment) (float64, error) {
	return 0, ErrNotEvaluable
}

// Substitute implementation for Expr interface.
func (p *Derivative) Substitute(sym Symbol, with Expr) Expr {
	if sym == p.Var {
		return p
	}
	//
	return &Derivative{p.Body.Substitute(sym, with), p.Var}
}

func (p *Derivative) String() string {
	return fmt.Sprintf("d/dv%d(%s)", p.Var, p.Body)
}

func (p *Derivative) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	return &Derivative{p.Body.canon(depth+1, st), p.Var}
}

func (p *Derivative) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	varsBinding(p.Body, p.Var, bound, out)
}

// Integral represents the (unapplied) indefinite integral of a body with
// respect to a variable.  The variable is treated as bound within the body.
type Integral struct {
	Body Expr
	Var  Symbol
}

// NewIntegral constructs the integral of a body with respect to a variable.
func NewIntegral(body Expr, v Symbol) Expr {
	return &Integral{body, v}
}

// Complexity implementation for Expr interface.
func (p *Integral) Complexity() uint {
	return 1 + p.Body.Complexity()
}

// Eval implementation for Expr interface.
func (p *Integral) Eval(env Environment) (float64, error) {
	return 0, ErrNotEvaluable
}

// Substitute implementation for Expr interface.
func (p *Integral) Substitute(sym Symbol, with Expr) Expr {
	if sym == p.Var {
		return p
	}
	//
	return &Integral{p.Body.Substitute(sym, with), p.Var}
}

func (p *Integral) String() string {
	return fmt.Sprintf("integral(%s, v%d)", p.Body, p.Var)
}

func (p *Integral) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	return &Integral{p.Body.canon(depth+1, st), p.Var}
}

func (p *Integral) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	varsBinding(p.Body, p.Var, bound, out)
}

// Summation represents a finite sum of a body over an integer range, binding
// the index variable within the body.
type Summation struct {
	Var  Symbol
	From Expr
	To   Expr
	Body Expr
}

// NewSummation constructs a finite sum of a body over an inclusive range.
func NewSummation(v Symbol, from Expr, to Expr, body Expr) Expr {
	return &Summation{v, from, to, body}
}

// Complexity implementation for Expr interface.
func (p *Summation) Complexity() uint {
	return 1 + p.From.Complexity() + p.To.Complexity() + p.Body.Complexity()
}

// Eval implementation for Expr interface.
func (p *Summation) Eval(env Environment) (float64, error) {
	from, err := p.From.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	to, err := p.To.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	var (
		lo = int64(math.Round(from))
		hi = int64(math.Round(to))
	)
	// Cap the iteration range, since evaluation must stay cheap.
	if hi-lo > 1000 {
		return 0, summationTooLarge()
	}
	// Bind the index variable in a scratch environment.
	inner := make(Environment, len(env)+1)
	for k, v := range env {
		inner[k] = v
	}
	//
	total := 0.0
	//
	for i := lo; i <= hi; i++ {
		inner[p.Var] = float64(i)
		//
		val, err := p.Body.Eval(inner)
		if err != nil {
			return 0, err
		}
		//
		total += val
	}
	//
	return total, nil
}

// Substitute implementation for Expr interface.
func (p *Summation) Substitute(sym Symbol, with Expr) Expr {
	var (
		from = p.From.Substitute(sym, with)
		to   = p.To.Substitute(sym, with)
		body = p.Body
	)
	// The index variable shadows substitution within the body only.
	if sym != p.Var {
		body = body.Substitute(sym, with)
	}
	//
	return &Summation{p.Var, from, to, body}
}

func (p *Summation) String() string {
	return fmt.Sprintf("sum(v%d=%s..%s, %s)", p.Var, p.From, p.To, p.Body)
}

func (p *Summation) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	return &Summation{
		p.Var,
		p.From.canon(depth+1, st),
		p.To.canon(depth+1, st),
		p.Body.canon(depth+1, st),
	}
}

func (p *Summation) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.From.vars(bound, out)
	p.To.vars(bound, out)
	varsBinding(p.Body, p.Var, bound, out)
}

// varsBinding collects the free variables of a body in which one additional
// variable is bound.
func varsBinding(body Expr, v Symbol, bound map[Symbol]bool, out map[Symbol]bool) {
	if bound[v] {
		body.vars(bound, out)
		return
	}
	//
	bound[v] = true
	body.vars(bound, out)
	delete(bound, v)
}
