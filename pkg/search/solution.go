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

// Package search provides the schedulers which explore the rewrite space of
// an expression towards a goal: a sequential Monte Carlo tree search, a
// parallel variant for large node budgets, and a beam search which trades
// backtracking for simplicity.  States are expressions, actions are rule
// applications and the goal is an externally supplied predicate.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
	"github.com/consensys/go-lemma/pkg/verifier"
)

// Goal tests whether a state satisfies the search objective.
type Goal func(expr.Expr) bool

// Step is a single rewrite within a solution path.
type Step struct {
	// Before is the state this step transformed.
	Before expr.Expr
	// After is the state this step produced.
	After expr.Expr
	// RuleID identifies the rule applied.
	RuleID rules.RuleID
	// RuleName is the applied rule's name.
	RuleName string
	// Justification explains the rewrite in human-readable form.
	Justification string
}

func (p Step) String() string {
	return fmt.Sprintf("%s => %s [%s]", p.Before, p.After, p.Justification)
}

// Solution is a complete path from a problem to a goal state.
type Solution struct {
	// Problem is the original expression searched from.
	Problem expr.Expr
	// Result is the goal state reached.
	Result expr.Expr
	// Steps are the rewrites taken, in order.
	Steps []Step
	// Verified indicates the path passed verification.
	Verified bool
}

// NumSteps returns the number of rewrites in this solution.
func (p *Solution) NumSteps() uint {
	return uint(len(p.Steps))
}

// IsTrivial checks whether the problem was already a goal state.
func (p *Solution) IsTrivial() bool {
	return len(p.Steps) == 0
}

func (p *Solution) String() string {
	var r strings.Builder
	//
	fmt.Fprintf(&r, "%s", p.Problem)
	//
	for _, step := range p.Steps {
		fmt.Fprintf(&r, " => %s", step.After)
	}
	//
	return r.String()
}

// SearchStats summarizes the work one search call performed.
type SearchStats struct {
	// NodesExplored is the total number of node visits.
	NodesExplored uint64
	// ElapsedSeconds is the wall-clock duration of the call.
	ElapsedSeconds float64
	// NodesPerSecond is the exploration rate.
	NodesPerSecond float64
}

// newStats derives the statistics of a finished search.
func newStats(explored uint64, started time.Time) SearchStats {
	elapsed := time.Since(started).Seconds()
	//
	stats := SearchStats{NodesExplored: explored, ElapsedSeconds: elapsed}
	//
	if elapsed > 0 {
		stats.NodesPerSecond = float64(explored) / elapsed
	}
	//
	return stats
}

// trivialSolution wraps a problem which already satisfies the goal.
func trivialSolution(problem expr.Expr) *Solution {
	return &Solution{problem, problem, nil, true}
}

// verifyPath marks a found path.  Direct equivalence of problem and result
// decides where it can; a solved equation is accepted by substituting its
// value back into the problem; and when equivalence is undecidable the
// individual rewrites are re-verified instead.
func verifyPath(v *verifier.Verifier, ruleset *rules.RuleSet, ctx rules.Context, sol *Solution) bool {
	outcome := v.VerifyEquivalence(sol.Problem, sol.Result)
	//
	if outcome.Status == verifier.VALID {
		return true
	}
	// Rearranging an equation rescales its residual, so equivalence cannot
	// accept a solved form directly.
	if eq, ok := sol.Result.(*expr.Equation); ok {
		if lhs, ok := eq.Lhs.(*expr.Variable); ok &&
			v.VerifySolution(sol.Problem, lhs.Symbol, eq.Rhs).IsValid() {
			return true
		}
	}
	//
	if outcome.Status == verifier.INVALID || len(sol.Steps) == 0 {
		return false
	}
	//
	for i := range sol.Steps {
		var (
			step = &sol.Steps[i]
			rule = ruleset.Rule(step.RuleID)
		)
		//
		if rule == nil || !v.VerifyStep(step.Before, step.After, rule, ctx).IsValid() {
			return false
		}
	}
	//
	return true
}
