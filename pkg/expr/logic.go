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

const (
	// REALS indicates quantification over the real numbers.
	REALS uint8 = iota
	// INTEGERS indicates quantification over the integers.
	INTEGERS
	// NATURALS indicates quantification over the natural numbers.
	NATURALS
)

// Quantifier binds a variable ranging over a given domain within a body,
// either universally or existentially.
type Quantifier struct {
	// Exists distinguishes existential from universal quantification.
	Exists bool
	Var    Symbol
	Domain uint8
	Body   Expr
}

// NewForAll constructs a universal quantifier over a given domain.
func NewForAll(v Symbol, domain uint8, body Expr) Expr {
	return &Quantifier{false, v, domain, body}
}

// NewExists constructs an existential quantifier over a given domain.
func NewExists(v Symbol, domain uint8, body Expr) Expr {
	return &Quantifier{true, v, domain, body}
}

// Complexity implementation for Expr interface.
func (p *Quantifier) Complexity() uint {
	return 1 + p.Body.Complexity()
}

// Eval implementation for Expr interface.  Quantified statements cannot be
// evaluated pointwise.
func (p *Quantifier) Eval(env Environment) (float64, error) {
	return 0, ErrNotEvaluable
}

// Substitute implementation for Expr interface.
func (p *Quantifier) Substitute(sym Symbol, with Expr) Expr {
	if sym == p.Var {
		return p
	}
	//
	return &Quantifier{p.Exists, p.Var, p.Domain, p.Body.Substitute(sym, with)}
}

func (p *Quantifier) String() string {
	var quantifier = "forall"
	//
	if p.Exists {
		quantifier = "exists"
	}
	//
	return fmt.Sprintf("%s v%d in %s. %s", quantifier, p.Var, domainName(p.Domain), p.Body)
}

func (p *Quantifier) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	return &Quantifier{p.Exists, p.Var, p.Domain, p.Body.canon(depth+1, st)}
}

func (p *Quantifier) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	varsBinding(p.Body, p.Var, bound, out)
}

func domainName(domain uint8) string {
	switch domain {
	case REALS:
		return "R"
	case INTEGERS:
		return "Z"
	case NATURALS:
		return "N"
	default:
		panic("unreachable")
	}
}
