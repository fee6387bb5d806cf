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
	"testing"

	"github.com/consensys/go-lemma/pkg/expr"
)

func Test_Guardrail_01(t *testing.T) {
	check_Profile(t, expr.NewAdd(x, expr.Const64(1)), false, false, false)
	check_Profile(t, expr.Sin(x), true, false, false)
	check_Profile(t, expr.Tan(x), true, false, false)
	check_Profile(t, expr.NewDerivative(expr.NewPow(x, expr.Const64(2)), 0), false, true, false)
	check_Profile(t, expr.NewIntegral(x, 0), false, true, false)
	check_Profile(t, expr.NewFactorial(expr.Const64(5)), false, false, true)
	check_Profile(t, expr.NewBinomial(expr.Const64(5), expr.Const64(2)), false, false, true)
	check_Profile(t, expr.NewSummation(2, expr.Const64(1), y, expr.NewVar(2)), false, false, true)
}

func Test_Guardrail_02(t *testing.T) {
	// Features are detected however deeply they are buried.
	check_Profile(t,
		expr.NewAdd(expr.Const64(1),
			expr.NewMul(expr.Const64(2), expr.NewDerivative(x, 0))),
		false, true, false)
	check_Profile(t,
		expr.NewForAll(0, expr.REALS,
			expr.NewEquation(expr.Sin(x), expr.Const64(0))),
		true, false, false)
	check_Profile(t,
		expr.NewDiv(expr.NewFactorial(x), expr.NewPow(y, x)),
		false, false, true)
}

func Test_Guardrail_03(t *testing.T) {
	plain := ProfileOf(expr.NewAdd(x, expr.Const64(1)))
	trig := ProfileOf(expr.Sin(x))
	diff := ProfileOf(expr.NewDerivative(expr.Sin(x), 0))
	//
	// Rules without domain requirements are admitted everywhere.
	check_Admits(t, &plain, constFold(), true)
	check_Admits(t, &trig, constFold(), true)
	// Trigonometric rules need a trigonometric function.
	check_Admits(t, &plain, sinZero(), false)
	check_Admits(t, &trig, sinZero(), true)
	// The sine derivative rule needs both features.
	check_Admits(t, &trig, sinRule(), false)
	check_Admits(t, &diff, sinRule(), true)
}

func Test_Guardrail_04(t *testing.T) {
	// The prefilter only ever discards rules which cannot match: for every
	// expression, running all rules unconditionally finds exactly the
	// matches the guarded application finds.
	corpus := []expr.Expr{
		expr.NewAdd(x, expr.Const64(0)),
		expr.NewAdd(expr.Const64(2), expr.Const64(3)),
		expr.Sin(expr.NewDiv(expr.NewPi(), expr.Const64(2))),
		expr.NewAdd(
			expr.NewPow(expr.Sin(x), expr.Const64(2)),
			expr.NewPow(expr.Cos(x), expr.Const64(2))),
		expr.NewDerivative(expr.NewMul(expr.Sin(x), x), 0),
		expr.NewIntegral(expr.NewAdd(x, expr.Const64(1)), 0),
		expr.NewAdd(
			expr.NewFactorial(expr.Const64(5)),
			expr.NewBinomial(expr.Const64(5), expr.Const64(2))),
		expr.NewSummation(2, expr.Const64(1), y, expr.NewVar(2)),
		expr.NewEquation(
			expr.NewAdd(expr.NewMul(expr.Const64(2), x), expr.Const64(1)),
			expr.Const64(7)),
		expr.Ln(expr.Exp(expr.NewPow(x, expr.Const64(0)))),
	}
	//
	rs := StandardRules()
	//
	for _, e := range corpus {
		guarded := rs.Applicable(e, Context{})
		unguarded := allMatches(rs, e, Context{})
		//
		if len(guarded) != len(unguarded) {
			t.Errorf("%s: guardrail dropped matches (%d vs %d)",
				e, len(guarded), len(unguarded))
			continue
		}
		//
		for i := range guarded {
			sameRule := guarded[i].Rule.Id == unguarded[i].Rule.Id
			//
			if !sameRule || !expr.Equal(guarded[i].Result, unguarded[i].Result) {
				t.Errorf("%s: match %d differs under guardrail", e, i)
			}
		}
	}
}

// ============================================================================
// Helpers
// ============================================================================

func check_Profile(t *testing.T, e expr.Expr, trig bool, calculus bool, combinatorics bool) {
	t.Helper()
	//
	profile := ProfileOf(e)
	//
	if profile.HasTrig() != trig {
		t.Errorf("%s: expected HasTrig=%t", e, trig)
	}
	//
	if profile.HasCalculus() != calculus {
		t.Errorf("%s: expected HasCalculus=%t", e, calculus)
	}
	//
	if profile.HasCombinatorics() != combinatorics {
		t.Errorf("%s: expected HasCombinatorics=%t", e, combinatorics)
	}
	//
	if profile.Complexity() != e.Complexity() {
		t.Errorf("%s: expected complexity %d, got %d",
			e, e.Complexity(), profile.Complexity())
	}
}

func check_Admits(t *testing.T, profile *ProblemProfile, rule *Rule, expected bool) {
	t.Helper()
	//
	if profile.Admits(rule) != expected {
		t.Errorf("rule %s: expected Admits=%t", rule.Name, expected)
	}
}

// allMatches applies every rule without the guardrail prefilter.
func allMatches(rs *RuleSet, e expr.Expr, ctx Context) []Match {
	var matches []Match
	//
	for _, rule := range rs.Rules() {
		for _, app := range rule.Apply(e, ctx) {
			matches = append(matches, Match{rule, app.Result, app.Justification})
		}
	}
	//
	return matches
}
