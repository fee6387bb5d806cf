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

// Package rules provides the rewrite rules which drive proof search, along
// with the guardrail prefilter which discards rules whose domain cannot match
// a given problem.  Rule application is a two-phase affair: first the cheap
// guardrail pass, then full matching of the surviving rules.
package rules

import (
	"fmt"
	"slices"

	"github.com/consensys/go-lemma/pkg/expr"
)

// RuleSet is an immutable collection of rewrite rules held in ascending
// identifier order, which fixes the enumeration order of matches.
type RuleSet struct {
	rules []*Rule
	// ledger receives cost events during application (nil disables
	// accounting).
	ledger Ledger
}

// NewRuleSet constructs a ruleset from the given rules.  Rule identifiers
// must be unique, since downstream search keys statistics by them.
func NewRuleSet(rules ...*Rule) *RuleSet {
	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(l *Rule, r *Rule) int {
		return int(l.Id) - int(r.Id)
	})
	//
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Id == sorted[i].Id {
			panic(fmt.Sprintf("duplicate rule identifier %d (%s / %s)",
				sorted[i].Id, sorted[i-1].Name, sorted[i].Name))
		}
	}
	//
	return &RuleSet{rules: sorted}
}

// WithLedger attaches a cost ledger which receives one event per rewrite
// produced by Applicable.
func (p *RuleSet) WithLedger(ledger Ledger) *RuleSet {
	return &RuleSet{p.rules, ledger}
}

// Rules returns the rules of this set in ascending identifier order.
func (p *RuleSet) Rules() []*Rule {
	return p.rules
}

// Len returns the number of rules in this set.
func (p *RuleSet) Len() uint {
	return uint(len(p.rules))
}

// Rule looks up a rule by its identifier.
func (p *RuleSet) Rule(id RuleID) *Rule {
	for _, r := range p.rules {
		if r.Id == id {
			return r
		}
	}
	//
	return nil
}

// Applicable determines every rewrite the rules of this set can produce at
// the root of the given expression.  The expression is profiled once, rules
// failing the guardrail are discarded without matching, and the remaining
// rules are matched in ascending identifier order.  Matches preserve that
// order, with multiple rewrites of one rule kept in the order the rule
// produced them.
func (p *RuleSet) Applicable(e expr.Expr, ctx Context) []Match {
	var matches []Match
	//
	profile := ProfileOf(e)
	//
	for _, rule := range p.rules {
		if !profile.Admits(rule) {
			continue
		}
		//
		for _, app := range rule.Apply(e, ctx) {
			matches = append(matches, Match{rule, app.Result, app.Justification})
			//
			if p.ledger != nil {
				p.ledger.RecordCost(rule.Id, rule.Cost)
			}
		}
	}
	//
	return matches
}

// StandardRules returns the full standard ruleset covering algebra, calculus,
// integration, trigonometry, logarithms and exponentials, equation
// rearrangement and combinatorics.
func StandardRules() *RuleSet {
	var rules []*Rule
	//
	rules = append(rules, AlgebraRules()...)
	rules = append(rules, CalculusRules()...)
	rules = append(rules, IntegrationRules()...)
	rules = append(rules, TrigRules()...)
	rules = append(rules, LogExpRules()...)
	rules = append(rules, EquationRules()...)
	rules = append(rules, CombinatoricsRules()...)
	//
	return NewRuleSet(rules...)
}
