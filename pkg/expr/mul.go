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

// Mul represents the product of two expressions.  This is the input form;
// canonicalization flattens chains of multiplications into sorted n-ary
// Product forms, with any scalar multiplier folded into an enclosing sum
// coefficient.
type Mul struct {
	Lhs Expr
	Rhs Expr
}

// NewMul constructs the product of two expressions.
func NewMul(lhs Expr, rhs Expr) Expr {
	return &Mul{lhs, rhs}
}

// Complexity implementation for Expr interface.
func (p *Mul) Complexity() uint {
	return 1 + p.Lhs.Complexity() + p.Rhs.Complexity()
}

// Eval implementation for Expr interface.
func (p *Mul) Eval(env Environment) (float64, error) {
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
	return lhs * rhs, nil
}

// Substitute implementation for Expr interface.
func (p *Mul) Substitute(sym Symbol, with Expr) Expr {
	return &Mul{p.Lhs.Substitute(sym, with), p.Rhs.Substitute(sym, with)}
}

func (p *Mul) String() string {
	return "(" + p.Lhs.String() + " * " + p.Rhs.String() + ")"
}

func (p *Mul) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	var (
		lhs       = p.Lhs.canon(depth+1, st)
		rhs       = p.Rhs.canon(depth+1, st)
		collector = newFactorCollector()
	)
	// Exact constant folding
	if l, lok := AsConstant(lhs); lok {
		if r, rok := AsConstant(rhs); rok {
			return Const(l.Mul(r))
		}
	}
	// Combine factors across both operands
	collector.add(lhs, NewRationalFromInt(1))
	collector.add(rhs, NewRationalFromInt(1))
	// Done
	return collector.render()
}

func (p *Mul) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Lhs.vars(bound, out)
	p.Rhs.vars(bound, out)
}

// ============================================================================
// Product
// ============================================================================

// Factor is a single multiplicand of an n-ary product, pairing a base
// expression with an exact rational power.  Powers arising from flattening
// are integers, but fractional powers combine exactly as well.
type Factor struct {
	Base  Expr
	Power Rational
}

// Product represents a flattened n-ary product of powered factors.  In
// canonical form the factors are sorted by base, powers are non-zero and no
// factor is itself a product.
type Product struct {
	Factors []Factor
}

// NewProduct constructs an n-ary product from the given factors.
func NewProduct(factors []Factor) Expr {
	return &Product{factors}
}

// Complexity implementation for Expr interface.
func (p *Product) Complexity() uint {
	count := uint(1)
	//
	for _, f := range p.Factors {
		if !f.Power.IsOne() {
			count++
		}
		//
		count += f.Base.Complexity()
	}
	//
	return count
}

// Eval implementation for Expr interface.
func (p *Product) Eval(env Environment) (float64, error) {
	total := 1.0
	//
	for _, f := range p.Factors {
		base, err := f.Base.Eval(env)
		if err != nil {
			return 0, err
		}
		//
		val, err := powEval(base, f.Power.Float64())
		if err != nil {
			return 0, err
		}
		//
		total *= val
	}
	//
	return total, nil
}

// Substitute implementation for Expr interface.
func (p *Product) Substitute(sym Symbol, with Expr) Expr {
	factors := make([]Factor, len(p.Factors))
	for i, f := range p.Factors {
		factors[i] = Factor{f.Base.Substitute(sym, with), f.Power}
	}
	//
	return &Product{factors}
}

func (p *Product) String() string {
	var r strings.Builder
	//
	for i, f := range p.Factors {
		if i != 0 {
			r.WriteString("*")
		}
		//
		r.WriteString(f.String())
	}
	//
	return r.String()
}

func (p *Product) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	collector := newFactorCollector()
	//
	for _, f := range p.Factors {
		collector.add(f.Base.canon(depth+1, st), f.Power)
	}
	//
	return collector.render()
}

func (p *Product) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	for _, f := range p.Factors {
		f.Base.vars(bound, out)
	}
}

func (p Factor) String() string {
	if p.Power.IsOne() {
		return p.Base.String()
	}
	//
	return p.Base.String() + "^" + p.Power.String()
}

// ============================================================================
// Factor collection
// ============================================================================

// factorCollector combines the factors of a product, accumulating powers of
// matching bases and folding constants into a single rational multiplier.
type factorCollector struct {
	// multiplier is the folded constant part of the product.
	multiplier Rational
	// powers maps factor bases to their accumulated powers.
	powers *util.HashMap[Key, Rational]
	// order records first-seen factor bases, so extraction need not rely on
	// map iteration order.
	order []Expr
}

func newFactorCollector() *factorCollector {
	return &factorCollector{
		multiplier: NewRationalFromInt(1),
		powers:     util.NewHashMap[Key, Rational](8),
	}
}

// Add a canonicalized multiplicand raised to the given power.  Constants fold
// into the multiplier; nested products flatten; powered forms with exact
// rational exponents split so that matching bases combine.
func (p *factorCollector) add(e Expr, power Rational) {
	switch t := e.(type) {
	case *Constant:
		if n, ok := intPower(power); ok {
			if t.Value.IsZero() && n > 0 {
				p.multiplier = NewRationalFromInt(0)
			} else if !t.Value.IsZero() {
				p.multiplier = p.multiplier.Mul(t.Value.Pow(n))
			} else {
				// Zero base with non-positive power: keep opaque.
				p.accumulate(e, power)
			}
			//
			return
		}
		// Fractional power of a constant stays opaque.
		p.accumulate(e, power)
	case *Product:
		// Distributing an outer power through a product is only sound for
		// integer powers.
		if !power.IsInteger() {
			p.accumulate(e, power)
			return
		}
		//
		for _, f := range t.Factors {
			p.add(f.Base, f.Power.Mul(power))
		}
	case *Pow:
		// Multiplying exponents ((x^a)^b = x^(a*b)) is only sound for
		// integer outer powers; fractional ones stay opaque.
		if c, ok := AsConstant(t.Exponent); ok && power.IsInteger() {
			p.add(t.Base, c.Mul(power))
			return
		}
		//
		p.accumulate(e, power)
	case *Sum:
		// A singleton sum is a scalar multiple: for integer powers the
		// scalar folds into the multiplier exactly.
		if n, ok := intPower(power); ok && len(t.Terms) == 1 {
			p.multiplier = p.multiplier.Mul(t.Terms[0].Coeff.Pow(n))
			p.add(t.Terms[0].Expr, power)
			//
			return
		}
		//
		p.accumulate(e, power)
	default:
		p.accumulate(e, power)
	}
}

func (p *factorCollector) accumulate(e Expr, power Rational) {
	key := NewKey(e)
	//
	if existing, ok := p.powers.Get(key); ok {
		p.powers.Insert(key, existing.Add(power))
	} else {
		p.powers.Insert(key, power)
		p.order = append(p.order, e)
	}
}

// Render the collected product as its simplest expression form.
func (p *factorCollector) render() Expr {
	if p.multiplier.IsZero() {
		return Const64(0)
	}
	//
	factors := make([]Factor, 0, p.powers.Size())
	//
	for _, base := range p.order {
		power, _ := p.powers.Get(NewKey(base))
		//
		if !power.IsZero() {
			factors = append(factors, Factor{base, power})
		}
	}
	//
	sort.Slice(factors, func(i, j int) bool {
		return Compare(factors[i].Base, factors[j].Base) < 0
	})
	//
	var core Expr
	//
	switch {
	case len(factors) == 0:
		return Const(p.multiplier)
	case len(factors) == 1 && factors[0].Power.IsOne():
		core = factors[0].Base
	case len(factors) == 1:
		core = &Pow{factors[0].Base, Const(factors[0].Power)}
	default:
		core = &Product{factors}
	}
	// Fold any scalar multiplier into a singleton sum coefficient.
	if p.multiplier.IsOne() {
		return core
	}
	// Distribute the multiplier through a sum core, so that scalar multiples
	// of sums canonicalise identically to their term-collected forms.
	if s, ok := core.(*Sum); ok {
		terms := make([]Term, len(s.Terms))
		for i, t := range s.Terms {
			terms[i] = Term{t.Coeff.Mul(p.multiplier), t.Expr}
		}
		//
		return &Sum{terms}
	}
	//
	return &Sum{[]Term{{p.multiplier, core}}}
}

// intPower extracts small integer powers suitable for exact folding.
func intPower(power Rational) (int, bool) {
	if n, ok := power.Int64(); ok && n >= -maxFoldExponent && n <= maxFoldExponent {
		return int(n), true
	}
	//
	return 0, false
}
