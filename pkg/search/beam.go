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
package search

import (
	"slices"
	"time"

	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
	"github.com/consensys/go-lemma/pkg/util"
	"github.com/consensys/go-lemma/pkg/verifier"
)

// BeamSearch is the breadth-first scheduler.  Each level rewrites every state
// of the current beam, ranks the results by complexity and keeps the best
// few, trading the backtracking of tree search for predictable cost.
type BeamSearch struct {
	rules    *rules.RuleSet
	verifier *verifier.Verifier
	ctx      rules.Context
	config   SearchConfig
}

// NewBeamSearch constructs a beam scheduler over the given rules, with the
// default configuration and a default verifier.
func NewBeamSearch(ruleset *rules.RuleSet) *BeamSearch {
	return &BeamSearch{
		rules:    ruleset,
		verifier: verifier.NewVerifier(),
		config:   DefaultSearchConfig(),
	}
}

// WithConfig returns a copy of this scheduler using the given configuration.
func (p *BeamSearch) WithConfig(config SearchConfig) *BeamSearch {
	q := *p
	q.config = config
	//
	return &q
}

// WithVerifier returns a copy of this scheduler marking solutions with the
// given verifier.
func (p *BeamSearch) WithVerifier(v *verifier.Verifier) *BeamSearch {
	q := *p
	q.verifier = v
	//
	return &q
}

// WithContext returns a copy of this scheduler applying rules under the given
// context.
func (p *BeamSearch) WithContext(ctx rules.Context) *BeamSearch {
	q := *p
	q.ctx = ctx
	//
	return &q
}

// candidate is one state of the beam, along with the path which reached it.
type candidate struct {
	state expr.Expr
	steps []Step
	score uint
}

// Search explores rewrites of the problem level by level until a goal state
// survives beam selection or the depth limit is reached, returning the
// solution path (or nil) along with statistics of the work done.
func (p *BeamSearch) Search(problem expr.Expr, goal Goal) (*Solution, SearchStats) {
	started := time.Now()
	//
	if goal(problem) {
		return trivialSolution(problem), newStats(0, started)
	}
	// Dedup states under canonicalization, which prunes rewrite cycles.
	visited := util.NewHashSet[expr.Key](256)
	visited.Insert(canonicalKey(problem))
	//
	var (
		beam     = []candidate{{state: problem, score: problem.Complexity()}}
		explored uint64
	)
	//
	for depth := uint(0); depth < p.config.MaxDepth; depth++ {
		var frontier []candidate
		//
		for _, c := range beam {
			for _, m := range p.rules.Applicable(c.state, p.ctx) {
				if visited.Insert(canonicalKey(m.Result)) {
					continue
				}
				//
				explored++
				//
				steps := append(slices.Clone(c.steps),
					Step{c.state, m.Result, m.Rule.Id, m.Rule.Name, m.Justification})
				frontier = append(frontier, candidate{m.Result, steps, m.Result.Complexity()})
			}
		}
		//
		if len(frontier) == 0 {
			break
		}
		// Rank ascending by complexity, keeping ties in discovery order.
		slices.SortStableFunc(frontier, func(l candidate, r candidate) int {
			return int(l.score) - int(r.score)
		})
		//
		if uint(len(frontier)) > p.config.BeamWidth {
			frontier = frontier[:p.config.BeamWidth]
		}
		//
		for _, c := range frontier {
			if goal(c.state) {
				solution := &Solution{Problem: problem, Result: c.state, Steps: c.steps}
				solution.Verified = verifyPath(p.verifier, p.rules, p.ctx, solution)
				//
				return solution, newStats(explored, started)
			}
		}
		//
		beam = frontier
	}
	//
	return nil, newStats(explored, started)
}

// Simplify reduces an expression to the simplest form reachable, preferring
// the canonicalizer's answer and falling back to a goal-directed search when
// canonicalization alone changes nothing.
func (p *BeamSearch) Simplify(e expr.Expr) (*Solution, SearchStats) {
	canonical, err := expr.Canonicalize(e)
	//
	if err == nil && !expr.Equal(canonical, e) {
		return &Solution{e, canonical, nil, true}, SearchStats{}
	}
	// Goal: nothing left to rewrite, or strictly simpler than the input.
	goal := func(state expr.Expr) bool {
		return len(p.rules.Applicable(state, p.ctx)) == 0 ||
			state.Complexity() < e.Complexity()
	}
	//
	solution, stats := p.Search(e, goal)
	//
	if solution != nil {
		if c, err := expr.Canonicalize(solution.Result); err == nil {
			solution.Result = c
		}
		//
		return solution, stats
	}
	//
	return &Solution{e, e, nil, true}, stats
}

// canonicalKey derives the dedup key of a state.  States which cannot be
// canonicalized are keyed on themselves.
func canonicalKey(e expr.Expr) expr.Key {
	if c, err := expr.Canonicalize(e); err == nil {
		return expr.NewKey(c)
	}
	//
	return expr.NewKey(e)
}
