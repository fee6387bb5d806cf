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
	"github.com/consensys/go-lemma/pkg/util"
)

// RuleID uniquely identifies a rewrite rule.  Identifiers are stable across
// runs and rulesets, meaning they can be used to key learned statistics such
// as policy priors.
type RuleID uint32

const (
	// ALGEBRA category covers elementary algebraic rewrites (folding,
	// identities, distribution, factoring).
	ALGEBRA uint8 = iota
	// CALCULUS category covers symbolic differentiation.
	CALCULUS
	// INTEGRATION category covers symbolic integration.
	INTEGRATION
	// TRIGONOMETRY category covers trigonometric identities and special
	// values.
	TRIGONOMETRY
	// LOG_EXP category covers logarithm and exponential identities.
	LOG_EXP
	// EQUATION category covers rearrangements which isolate a variable on
	// one side of an equation.
	EQUATION
	// COMBINATORIAL category covers factorials, binomial coefficients and
	// finite summations.
	COMBINATORIAL
)

// Feature bits tested by the guardrail prefilter.  A rule tagged with one or
// more features is only attempted against expressions whose profile exhibits
// every one of them.
const (
	// DOMAIN_TRIG indicates the presence of a trigonometric function.
	DOMAIN_TRIG uint = iota
	// DOMAIN_DIFF indicates the presence of a derivative node.
	DOMAIN_DIFF
	// DOMAIN_INT indicates the presence of an integral node.
	DOMAIN_INT
	// DOMAIN_COMBINATORIAL indicates the presence of a factorial, binomial
	// coefficient or finite summation.
	DOMAIN_COMBINATORIAL
)

// NFEATURES gives the number of guardrail feature bits in use.
const NFEATURES uint = 4

// Context supplies ambient information to rule application, beyond the
// expression being rewritten.
type Context struct {
	// TargetVar identifies the variable an equation is being solved for.
	// Rules which rearrange equations only fire when this is set.
	TargetVar util.Option[expr.Symbol]
}

// Application is a single rewrite produced by a rule, together with a
// human-readable justification of the step taken.
type Application struct {
	// Result of rewriting the matched expression.
	Result expr.Expr
	// Justification explains the rewrite (e.g. "x + 0 = x").
	Justification string
}

// Rule is a self-contained rewrite.  Matching and transformation are a single
// operation: Apply inspects the root of the given expression and returns all
// rewrites this rule can produce there, or nil when it does not match.
type Rule struct {
	// Id uniquely identifies this rule.
	Id RuleID
	// Name is a short identifier for logs and justifications.
	Name string
	// Category this rule belongs to.
	Category uint8
	// Description summarises the rewrite in one line.
	Description string
	// Domains gives the guardrail features required for this rule to be
	// worth attempting.  An empty set means the rule is always attempted.
	Domains *bitset.BitSet
	// Cost is a relative measure of how much work applying this rule
	// implies for downstream verification and search.
	Cost uint
	// Reversible indicates the rewrite is an equivalence usable in either
	// direction, rather than a one-way simplification.
	Reversible bool
	// Apply matches this rule at the root of an expression, returning one
	// application per distinct rewrite (nil if the rule does not match).
	Apply func(expr.Expr, Context) []Application
}

// Match pairs a rule with one rewrite it produced for a particular
// expression.
type Match struct {
	// Rule which produced this match.
	Rule *Rule
	// Result of the rewrite.
	Result expr.Expr
	// Justification explains the rewrite.
	Justification string
}

// domains constructs the guardrail feature set for a rule from the given
// feature bits.
func domains(features ...uint) *bitset.BitSet {
	set := bitset.New(NFEATURES)
	//
	for _, f := range features {
		set.Set(f)
	}
	//
	return set
}

// apply1 wraps a single rewrite as an application list.
func apply1(result expr.Expr, justification string) []Application {
	return []Application{{result, justification}}
}
