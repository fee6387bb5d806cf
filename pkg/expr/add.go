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
	"sort"
	"strings"

	"github.com/consensys/go-lemma/pkg/util"
)

// Add represents the sum of two expressions.  This is the input form;
// canonicalization flattens chains of additions into sorted n-ary Sum forms.
type Add struct {
	Lhs Expr
	Rhs Expr
}

// NewAdd constructs the sum of two expressions.
func NewAdd(lhs Expr, rhs Expr) Expr {
	return &Add{lhs, rhs}
}

// Complexity implementation for Expr interface.
func (p *Add) Complexity() uint {
	return 1 + p.Lhs.Complexity() + p.Rhs.Complexity()
}

// Eval implementation for Expr interface.
func (p *Add) Eval(env Environment) (float64, error) {
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
	return lhs + rhs, nil
}

// Substitute implementation for Expr interface.
func (p *Add) Substitute(sym Symbol, with Expr) Expr {
	return &Add{p.Lhs.Substitute(sym, with), p.Rhs.Substitute(sym, with)}
}

func (p *Add) String() string {
	return "(" + p.Lhs.String() + " + " + p.Rhs.String() + ")"
}

func (p *Add) canon(depth uint, st *canonState) Expr {
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
			return Const(l.Add(r))
		}
	}
	// Collect like terms across both operands
	collector.add(lhs, NewRationalFromInt(1))
	collector.add(rhs, NewRationalFromInt(1))
	// Done
	return sumOf(collector.terms())
}

func (p *Add) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Lhs.vars(bound, out)
	p.Rhs.vars(bound, out)
}

// ============================================================================
// Sum
// ============================================================================

// Term is a single addend of an n-ary sum, pairing an exact coefficient with
// the (non-constant) expression it scales.  The constant part of a sum is
// carried as a coefficient on the literal one.
type Term struct {
	Coeff Rational
	Expr  Expr
}

// Sum represents a flattened n-ary sum of coefficient-scaled terms.  In
// canonical form the terms are sorted, coefficients are non-zero, and no term
// is itself a sum.
type Sum struct {
	Terms []Term
}

// NewSum constructs an n-ary sum from the given terms.
func NewSum(terms []Term) Expr {
	return &Sum{terms}
}

// Complexity implementation for Expr interface.
func (p *Sum) Complexity() uint {
	count := uint(1)
	//
	for _, t := range p.Terms {
		if !t.Coeff.IsOne() {
			count++
		}
		//
		count += t.Expr.Complexity()
	}
	//
	return count
}

// Eval implementation for Expr interface.
func (p *Sum) Eval(env Environment) (float64, error) {
	total := 0.0
	//
	for _, t := range p.Terms {
		val, err := t.Expr.Eval(env)
		if err != nil {
			return 0, err
		}
		//
		total += t.Coeff.Float64() * val
	}
	//
	return total, nil
}

// Substitute implementation for Expr interface.
func (p *Sum) Substitute(sym Symbol, with Expr) Expr {
	terms := make([]Term, len(p.Terms))
	for i, t := range p.Terms {
		terms[i] = Term{t.Coeff, t.Expr.Substitute(sym, with)}
	}
	//
	return &Sum{terms}
}

func (p *Sum) String() string {
	var r strings.Builder
	//
	r.WriteString("(")
	//
	for i, t := range p.Terms {
		if i != 0 {
			r.WriteString(" + ")
		}
		//
		r.WriteString(t.String())
	}
	//
	r.WriteString(")")
	//
	return r.String()
}

func (p *Sum) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	collector := newTermCollector()
	//
	for _, t := range p.Terms {
		collector.add(t.Expr.canon(depth+1, st), t.Coeff)
	}
	//
	return sumOf(collector.terms())
}

func (p *Sum) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	for _, t := range p.Terms {
		t.Expr.vars(bound, out)
	}
}

func (p Term) String() string {
	switch {
	case IsOne(p.Expr):
		return p.Coeff.String()
	case p.Coeff.IsOne():
		return p.Expr.String()
	default:
		return p.Coeff.String() + "*" + p.Expr.String()
	}
}

// ============================================================================
// Like-term collection
// ============================================================================

// termCollector accumulates coefficients of like terms, so that flattening a
// chain of additions merges terms which share the same canonical subterm.
type termCollector struct {
	coeffs *util.HashMap[Key, Rational]
}

func newTermCollector() *termCollector {
	return &termCollector{util.NewHashMap[Key, Rational](8)}
}

// Add a canonicalized addend, scaled by the given coefficient.  Constants
// accumulate against the literal one; nested sums are flattened on the fly.
func (p *termCollector) add(e Expr, coeff Rational) {
	switch t := e.(type) {
	case *Constant:
		p.accumulate(Const64(1), coeff.Mul(t.Value))
	case *Sum:
		for _, term := range t.Terms {
			p.accumulate(term.Expr, coeff.Mul(term.Coeff))
		}
	case *Neg:
		p.add(t.Arg, coeff.Neg())
	default:
		p.accumulate(e, coeff)
	}
}

func (p *termCollector) accumulate(e Expr, coeff Rational) {
	key := NewKey(e)
	//
	if existing, ok := p.coeffs.Get(key); ok {
		p.coeffs.Insert(key, existing.Add(coeff))
	} else {
		p.coeffs.Insert(key, coeff)
	}
}

// Extract the accumulated terms, dropping zero coefficients and sorting by
// the total order over subterms.
func (p *termCollector) terms() []Term {
	terms := make([]Term, 0, p.coeffs.Size())
	//
	p.coeffs.Each(func(key Key, coeff Rational) {
		if !coeff.IsZero() {
			terms = append(terms, Term{coeff, key.Expr})
		}
	})
	//
	sort.Slice(terms, func(i, j int) bool {
		return Compare(terms[i].Expr, terms[j].Expr) < 0
	})
	//
	return terms
}

// Render a collected term list as its simplest expression form: an empty sum
// is zero, a singleton with unit coefficient is the term itself, and a
// singleton constant folds away entirely.
func sumOf(terms []Term) Expr {
	if len(terms) == 0 {
		return Const64(0)
	}
	//
	if len(terms) == 1 {
		t := terms[0]
		//
		switch {
		case IsOne(t.Expr):
			return Const(t.Coeff)
		case t.Coeff.IsOne():
			return t.Expr
		}
	}
	//
	return &Sum{terms}
}
