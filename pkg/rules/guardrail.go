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
package rules

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-lemma/pkg/expr"
)

// ProblemProfile summarises which gated domains occur anywhere within an
// expression, along with its overall complexity.  Profiles are computed by a
// single scan of the expression and then used to discard rules whose required
// domains cannot possibly match, without running any match logic.
type ProblemProfile struct {
	features   *bitset.BitSet
	complexity uint
}

// ProfileOf scans an expression and determines its problem profile.
func ProfileOf(e expr.Expr) ProblemProfile {
	p := ProblemProfile{bitset.New(NFEATURES), e.Complexity()}
	p.scan(e)
	//
	return p
}

// Admits determines whether a rule passes the guardrail for this profile,
// meaning every domain the rule requires is present.  Rules without domain
// requirements are always admitted, hence only feature-tagged rules can ever
// be excluded.
func (p *ProblemProfile) Admits(rule *Rule) bool {
	return p.features.IsSuperSet(rule.Domains)
}

// HasTrig indicates a trigonometric function occurs somewhere.
func (p *ProblemProfile) HasTrig() bool {
	return p.features.Test(DOMAIN_TRIG)
}

// HasCalculus indicates a derivative or integral occurs somewhere.
func (p *ProblemProfile) HasCalculus() bool {
	return p.features.Test(DOMAIN_DIFF) || p.features.Test(DOMAIN_INT)
}

// HasCombinatorics indicates a factorial, binomial coefficient or finite
// summation occurs somewhere.
func (p *ProblemProfile) HasCombinatorics() bool {
	return p.features.Test(DOMAIN_COMBINATORIAL)
}

// Complexity returns the complexity of the profiled expression.
func (p *ProblemProfile) Complexity() uint {
	return p.complexity
}

func (p *ProblemProfile) scan(e expr.Expr) {
	switch t := e.(type) {
	case *expr.Constant, *expr.Pi, *expr.E, *expr.Variable:
		// leaf
	case *expr.Func:
		switch t.Op {
		case expr.SIN, expr.COS, expr.TAN:
			p.features.Set(DOMAIN_TRIG)
		}
		//
		p.scan(t.Arg)
	case *expr.Add:
		p.scan(t.Lhs)
		p.scan(t.Rhs)
	case *expr.Sub:
		p.scan(t.Lhs)
		p.scan(t.Rhs)
	case *expr.Neg:
		p.scan(t.Arg)
	case *expr.Mul:
		p.scan(t.Lhs)
		p.scan(t.Rhs)
	case *expr.Div:
		p.scan(t.Lhs)
		p.scan(t.Rhs)
	case *expr.Pow:
		p.scan(t.Base)
		p.scan(t.Exponent)
	case *expr.Sum:
		for _, term := range t.Terms {
			p.scan(term.Expr)
		}
	case *expr.Product:
		for _, factor := range t.Factors {
			p.scan(factor.Base)
		}
	case *expr.Factorial:
		p.features.Set(DOMAIN_COMBINATORIAL)
		p.scan(t.Arg)
	case *expr.Binomial:
		p.features.Set(DOMAIN_COMBINATORIAL)
		p.scan(t.N)
		p.scan(t.K)
	case *expr.Summation:
		p.features.Set(DOMAIN_COMBINATORIAL)
		p.scan(t.From)
		p.scan(t.To)
		p.scan(t.Body)
	case *expr.Derivative:
		p.features.Set(DOMAIN_DIFF)
		p.scan(t.Body)
	case *expr.Integral:
		p.features.Set(DOMAIN_INT)
		p.scan(t.Body)
	case *expr.Equation:
		p.scan(t.Lhs)
		p.scan(t.Rhs)
	case *expr.Inequality:
		p.scan(t.Lhs)
		p.scan(t.Rhs)
	case *expr.Quantifier:
		p.scan(t.Body)
	default:
		panic("unreachable")
	}
}
