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
	"math"
	"time"

	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
	"github.com/consensys/go-lemma/pkg/util"
	"github.com/consensys/go-lemma/pkg/verifier"
)

// MCTS is the sequential Monte Carlo tree search scheduler.  Each search call
// runs a configured number of simulations, each descending the tree by the
// UCB rule, expanding one node, evaluating it and backing the value up to the
// root.  The search stops early once any simulation reaches a goal state, and
// the path to that first-discovered goal is the returned solution.
type MCTS struct {
	rules    *rules.RuleSet
	verifier *verifier.Verifier
	oracle   Oracle
	ctx      rules.Context
	config   SearchConfig
}

// NewMCTS constructs a sequential scheduler over the given rules, with the
// default configuration, a uniform oracle and a default verifier.
func NewMCTS(ruleset *rules.RuleSet) *MCTS {
	return &MCTS{
		rules:    ruleset,
		verifier: verifier.NewVerifier(),
		oracle:   Uniform{},
		config:   DefaultSearchConfig(),
	}
}

// WithConfig returns a copy of this scheduler using the given configuration.
func (p *MCTS) WithConfig(config SearchConfig) *MCTS {
	q := *p
	q.config = config
	//
	return &q
}

// WithOracle returns a copy of this scheduler guided by the given oracle.
func (p *MCTS) WithOracle(oracle Oracle) *MCTS {
	q := *p
	q.oracle = oracle
	//
	return &q
}

// WithVerifier returns a copy of this scheduler marking solutions with the
// given verifier.
func (p *MCTS) WithVerifier(v *verifier.Verifier) *MCTS {
	q := *p
	q.verifier = v
	//
	return &q
}

// WithContext returns a copy of this scheduler applying rules under the given
// context.
func (p *MCTS) WithContext(ctx rules.Context) *MCTS {
	q := *p
	q.ctx = ctx
	//
	return &q
}

// Search explores rewrites of the problem until a goal state is found or the
// simulation budget runs out, returning the solution path (or nil) along
// with statistics of the work done.
func (p *MCTS) Search(problem expr.Expr, goal Goal) (*Solution, SearchStats) {
	started := time.Now()
	//
	if goal(problem) {
		return trivialSolution(problem), newStats(0, started)
	}
	//
	perf := util.NewPerfStats()
	r := &run{goal: goal, found: -1}
	r.tree.alloc(problem, -1, 0, 1.0)
	//
	for i := uint(0); i < p.config.Simulations && r.found < 0; i++ {
		p.simulate(r, 0)
	}
	//
	stats := newStats(r.visits, started)
	perf.Log("Sequential search")
	//
	if r.found < 0 {
		return nil, stats
	}
	//
	solution := &Solution{
		Problem: problem,
		Result:  r.tree.nodes[r.found].state,
		Steps:   r.tree.path(r.found),
	}
	solution.Verified = verifyPath(p.verifier, p.rules, p.ctx, solution)
	//
	return solution, stats
}

// simulate runs one iteration over the node at the given arena index,
// returning the value to back up.  Goal states score a win, dead ends a
// loss, and anything else the oracle's estimate.
func (p *MCTS) simulate(r *run, index int) float64 {
	r.visits++
	//
	if r.goal(r.tree.nodes[index].state) {
		// First goal discovered wins.
		if r.found < 0 {
			r.found = index
		}
		//
		return r.tree.backup(index, 1.0)
	}
	//
	if r.tree.nodes[index].depth >= p.config.MaxDepth {
		return r.tree.backup(index, p.evaluate(r.tree.nodes[index].state))
	}
	//
	if !r.tree.nodes[index].expanded {
		return r.tree.backup(index, p.expand(&r.tree, index))
	}
	//
	if len(r.tree.nodes[index].children) == 0 {
		// Dead end: no rule applies here.
		return r.tree.backup(index, -1.0)
	}
	//
	value := p.simulate(r, p.selectChild(&r.tree, index))
	//
	return r.tree.backup(index, value)
}

// expand materializes every legal child of a node, returning the oracle's
// value estimate for the node itself (or the loss signal when no rule
// applies).  Child priors come from the same oracle call.
func (p *MCTS) expand(t *arena, index int) float64 {
	t.nodes[index].expanded = true
	//
	matches := p.rules.Applicable(t.nodes[index].state, p.ctx)
	//
	if len(matches) == 0 {
		return -1.0
	}
	//
	candidates := make([]rules.RuleID, len(matches))
	for i, m := range matches {
		candidates[i] = m.Rule.Id
	}
	//
	priors, value := p.oracle.Predict(t.nodes[index].state, candidates)
	depth := t.nodes[index].depth
	//
	for i, m := range matches {
		// Tolerate an oracle returning fewer priors than candidates.
		prior := 0.01
		if i < len(priors) {
			prior = priors[i]
		}
		//
		child := t.alloc(m.Result, index, depth+1, prior)
		t.nodes[child].ruleID = m.Rule.Id
		t.nodes[child].ruleName = m.Rule.Name
		t.nodes[child].justification = m.Justification
		t.nodes[index].children = append(t.nodes[index].children, child)
	}
	//
	return value
}

// selectChild picks the child maximizing the UCB score.  Ties keep the first
// maximal child, which is the lowest rule id by construction.
func (p *MCTS) selectChild(t *arena, index int) int {
	var (
		parentVisits = t.nodes[index].visits
		best         = -1
		bestScore    = math.Inf(-1)
	)
	//
	for _, child := range t.nodes[index].children {
		score := p.ucb(&t.nodes[child], parentVisits)
		//
		if score > bestScore {
			best, bestScore = child, score
		}
	}
	//
	return best
}

// ucb scores a child for selection, with unvisited children scoring infinity
// so that every child is tried once before any is revisited.
func (p *MCTS) ucb(child *node, parentVisits uint64) float64 {
	if child.visits == 0 {
		return math.Inf(1)
	}
	//
	mean := child.valueSum / float64(child.visits)
	//
	return mean + p.config.ExplorationWeight*child.prior*
		math.Sqrt(math.Log(float64(parentVisits))/float64(child.visits))
}

// evaluate asks the oracle for a value estimate of a state.
func (p *MCTS) evaluate(state expr.Expr) float64 {
	_, value := p.oracle.Predict(state, nil)
	return value
}

// ============================================================================
// Search tree
// ============================================================================

// node is one entry of the arena-allocated search tree.  Parent and children
// are arena indices rather than pointers, so backing up along the path never
// forms ownership cycles.
type node struct {
	state expr.Expr
	// parent arena index (-1 for the root).
	parent int
	// children arena indices, in the order the rule engine produced them.
	children []int
	expanded bool
	visits   uint64
	valueSum float64
	prior    float64
	depth    uint
	// rule which produced this state (zero for the root).
	ruleID        rules.RuleID
	ruleName      string
	justification string
}

// arena holds the nodes of one search call, append-only for the run.
type arena struct {
	nodes []node
}

// alloc appends a fresh node, returning its index.
func (p *arena) alloc(state expr.Expr, parent int, depth uint, prior float64) int {
	p.nodes = append(p.nodes, node{state: state, parent: parent, depth: depth, prior: prior})
	return len(p.nodes) - 1
}

// backup records one visit of the given value at a node, passing the value
// through for the caller's own backup.
func (p *arena) backup(index int, value float64) float64 {
	p.nodes[index].visits++
	p.nodes[index].valueSum += value
	//
	return value
}

// path reconstructs the rewrite steps from the root to the given node.
func (p *arena) path(index int) []Step {
	var steps []Step
	//
	for p.nodes[index].parent >= 0 {
		var (
			n      = &p.nodes[index]
			parent = &p.nodes[n.parent]
		)
		//
		steps = util.Prepend(Step{parent.state, n.state, n.ruleID, n.ruleName, n.justification}, steps)
		index = n.parent
	}
	//
	return steps
}

// run carries the mutable state of one search call.
type run struct {
	tree arena
	goal Goal
	// found is the arena index of the first goal node discovered, or -1.
	found int
	// visits counts node visits across all simulations.
	visits uint64
}
