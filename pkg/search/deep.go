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
	"sync"
	"sync/atomic"
	"time"

	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
	"github.com/consensys/go-lemma/pkg/util"
	"github.com/consensys/go-lemma/pkg/verifier"
	log "github.com/sirupsen/logrus"
)

// valueScale converts backed-up values into fixed point, so that value sums
// can be accumulated with atomic integer addition.
const valueScale = 1_000_000.0

// Bounds on the branching factor of one expansion.
const (
	// maxRuleRewrites caps the rewrites taken per rule at the top level.
	maxRuleRewrites = 5
	// maxSubRewrites caps the sub-expression rewrites taken overall.
	maxSubRewrites = 10
	// maxSideRewrites caps the rewrites taken per rule on one side.
	maxSideRewrites = 2
)

// Priors assigned at expansion, favouring top-level rewrites over rewrites
// of a sub-expression.
const (
	topLevelPrior = 0.15
	subExprPrior  = 0.1
)

// DeepMCTS is the parallel scheduler for large node budgets.  Workers run
// simulations against one shared tree, with a virtual loss steering
// concurrent descents into distinct subtrees, and stop as soon as any worker
// reaches a goal state or the node budget or time limit is spent.
type DeepMCTS struct {
	rules    *rules.RuleSet
	verifier *verifier.Verifier
	oracle   Oracle
	ctx      rules.Context
	config   DeepConfig
}

// NewDeepMCTS constructs a parallel scheduler over the given rules, with the
// default configuration, a uniform oracle and a default verifier.
func NewDeepMCTS(ruleset *rules.RuleSet) *DeepMCTS {
	return &DeepMCTS{
		rules:    ruleset,
		verifier: verifier.NewVerifier(),
		oracle:   Uniform{},
		config:   DefaultDeepConfig(),
	}
}

// WithConfig returns a copy of this scheduler using the given configuration.
func (p *DeepMCTS) WithConfig(config DeepConfig) *DeepMCTS {
	q := *p
	q.config = config
	//
	return &q
}

// WithOracle returns a copy of this scheduler guided by the given oracle.
func (p *DeepMCTS) WithOracle(oracle Oracle) *DeepMCTS {
	q := *p
	q.oracle = oracle
	//
	return &q
}

// WithVerifier returns a copy of this scheduler marking solutions with the
// given verifier.
func (p *DeepMCTS) WithVerifier(v *verifier.Verifier) *DeepMCTS {
	q := *p
	q.verifier = v
	//
	return &q
}

// WithContext returns a copy of this scheduler applying rules under the given
// context.
func (p *DeepMCTS) WithContext(ctx rules.Context) *DeepMCTS {
	q := *p
	q.ctx = ctx
	//
	return &q
}

// Search explores rewrites of the problem across the configured number of
// workers, returning the shortest goal path recorded (or nil) along with
// statistics of the work done.
func (p *DeepMCTS) Search(problem expr.Expr, goal Goal) (*Solution, SearchStats) {
	started := time.Now()
	//
	if goal(problem) {
		return trivialSolution(problem), SearchStats{}
	}
	//
	perf := util.NewPerfStats()
	//
	var (
		root     = &deepNode{state: problem, prior: 1.0}
		shared   = &sharedState{problem: problem, goal: goal}
		deadline = started.Add(p.config.TimeLimit)
		wg       sync.WaitGroup
	)
	//
	for i := uint(0); i < p.config.NumWorkers; i++ {
		wg.Add(1)
		//
		go func() {
			defer wg.Done()
			p.worker(root, shared, started, deadline)
		}()
	}
	//
	wg.Wait()
	//
	stats := newStats(shared.explored.Load(), started)
	perf.Log("Parallel search")
	//
	if shared.solution == nil {
		return nil, stats
	}
	// Workers have joined, hence the solution is no longer contended.
	solution := shared.solution
	solution.Verified = verifyPath(p.verifier, p.rules, p.ctx, solution)
	//
	return solution, stats
}

// worker runs simulations until some worker signals a stop, or this one
// observes the deadline passing.
func (p *DeepMCTS) worker(root *deepNode, shared *sharedState, started time.Time, deadline time.Time) {
	for !shared.stop.Load() {
		if !time.Now().Before(deadline) {
			shared.stop.Store(true)
			return
		}
		//
		p.simulate(root, shared)
		p.logProgress(shared.explored.Load(), started)
	}
}

// simulate descends from the root by the selection score, reserving one unit
// of the node budget per node entered, until it reaches a goal, a leaf or an
// unexpanded node.  The resulting value is backed up along the path.
func (p *DeepMCTS) simulate(root *deepNode, shared *sharedState) {
	var (
		path []*deepNode
		node = root
	)
	//
	for {
		if !shared.reserve(p.config.MaxNodes) {
			shared.stop.Store(true)
			unwind(path)
			//
			return
		}
		//
		node.visits.Add(1)
		node.vloss.Add(1)
		path = append(path, node)
		//
		if shared.goal(node.state) {
			shared.record(node)
			backup(path, 1.0)
			//
			return
		}
		//
		if node.depth >= p.config.MaxDepth {
			backup(path, p.evaluate(node.state))
			//
			return
		}
		//
		if !node.expanded.Load() {
			if node.claimed.CompareAndSwap(false, true) {
				backup(path, p.expand(node))
			} else {
				// Another worker holds the expansion claim, so treat
				// the node as a leaf for this pass.
				backup(path, p.evaluate(node.state))
			}
			//
			return
		}
		//
		if node = p.selectChild(node); node == nil {
			// Dead end: no rule applies here.
			backup(path, -1.0)
			//
			return
		}
	}
}

// expand materializes the children of a node, applying rules both at the top
// level and one level down, then publishes them.  Returns the node's own
// value estimate, or the loss signal for a dead end.
func (p *DeepMCTS) expand(node *deepNode) float64 {
	var (
		children []*deepNode
		taken    = make(map[rules.RuleID]uint)
	)
	//
	for _, m := range p.rules.Applicable(node.state, p.ctx) {
		if taken[m.Rule.Id] < maxRuleRewrites {
			taken[m.Rule.Id]++
			children = append(children, newDeepChild(node, m, topLevelPrior))
		}
	}
	//
	for _, m := range p.subRewrites(node.state) {
		children = append(children, newDeepChild(node, m, subExprPrior))
	}
	//
	node.children = children
	node.expanded.Store(true)
	//
	if len(children) == 0 {
		return -1.0
	}
	//
	return p.evaluate(node.state)
}

// subRewrites determines the rewrites available one level down, rebuilding
// the enclosing operation around each rewritten side.
func (p *DeepMCTS) subRewrites(state expr.Expr) []rules.Match {
	var matches []rules.Match
	//
	switch t := state.(type) {
	case *expr.Add:
		matches = p.sideRewrites(matches, t.Lhs, func(e expr.Expr) expr.Expr { return expr.NewAdd(e, t.Rhs) })
		matches = p.sideRewrites(matches, t.Rhs, func(e expr.Expr) expr.Expr { return expr.NewAdd(t.Lhs, e) })
	case *expr.Sub:
		matches = p.sideRewrites(matches, t.Lhs, func(e expr.Expr) expr.Expr { return expr.NewSub(e, t.Rhs) })
		matches = p.sideRewrites(matches, t.Rhs, func(e expr.Expr) expr.Expr { return expr.NewSub(t.Lhs, e) })
	case *expr.Mul:
		matches = p.sideRewrites(matches, t.Lhs, func(e expr.Expr) expr.Expr { return expr.NewMul(e, t.Rhs) })
		matches = p.sideRewrites(matches, t.Rhs, func(e expr.Expr) expr.Expr { return expr.NewMul(t.Lhs, e) })
	case *expr.Div:
		matches = p.sideRewrites(matches, t.Lhs, func(e expr.Expr) expr.Expr { return expr.NewDiv(e, t.Rhs) })
		matches = p.sideRewrites(matches, t.Rhs, func(e expr.Expr) expr.Expr { return expr.NewDiv(t.Lhs, e) })
	case *expr.Pow:
		matches = p.sideRewrites(matches, t.Base, func(e expr.Expr) expr.Expr { return expr.NewPow(e, t.Exponent) })
	case *expr.Neg:
		matches = p.sideRewrites(matches, t.Arg, func(e expr.Expr) expr.Expr { return expr.NewNeg(e) })
	}
	//
	return matches
}

// sideRewrites accumulates the rewrites of one side, rebuilding the
// surrounding expression around each, up to the overall and per-rule bounds.
func (p *DeepMCTS) sideRewrites(matches []rules.Match, side expr.Expr,
	rebuild func(expr.Expr) expr.Expr) []rules.Match {
	//
	taken := make(map[rules.RuleID]uint)
	//
	for _, m := range p.rules.Applicable(side, p.ctx) {
		if uint(len(matches)) >= maxSubRewrites {
			break
		}
		//
		if taken[m.Rule.Id] < maxSideRewrites {
			taken[m.Rule.Id]++
			matches = append(matches, rules.Match{Rule: m.Rule, Result: rebuild(m.Result), Justification: m.Justification})
		}
	}
	//
	return matches
}

// selectChild picks the child maximizing the selection score.  Ties keep the
// first maximal child, which is the lowest rule id by construction.  Returns
// nil when the node has no children.
func (p *DeepMCTS) selectChild(node *deepNode) *deepNode {
	var (
		parentVisits = node.visits.Load()
		best         *deepNode
		bestScore    = math.Inf(-1)
	)
	//
	for _, child := range node.children {
		score := p.score(child, parentVisits)
		//
		if score > bestScore {
			best, bestScore = child, score
		}
	}
	//
	return best
}

// score ranks a child for selection, with unvisited children scoring
// infinity.  In-flight simulations count against the child's mean via the
// virtual loss, which steers concurrent workers apart.
func (p *DeepMCTS) score(child *deepNode, parentVisits uint64) float64 {
	visits := child.visits.Load()
	//
	if visits == 0 {
		return math.Inf(1)
	}
	//
	var (
		sum  = float64(child.valueSum.Load()) / valueScale
		loss = p.config.VirtualLoss * float64(child.vloss.Load())
		mean = (sum - loss) / float64(visits)
	)
	//
	return mean + p.config.ExplorationWeight*child.prior*
		math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
}

// evaluate asks the oracle for a value estimate of a state.
func (p *DeepMCTS) evaluate(state expr.Expr) float64 {
	_, value := p.oracle.Predict(state, nil)
	return value
}

// logProgress reports throughput at (roughly) every progress interval, since
// concurrent reservations can step the counter over a multiple.
func (p *DeepMCTS) logProgress(explored uint64, started time.Time) {
	interval := p.config.ProgressInterval
	//
	if interval == 0 || explored == 0 || explored%interval != 0 {
		return
	}
	//
	elapsed := time.Since(started).Seconds()
	//
	log.Debugf("explored %d nodes (%.0f nodes/sec, %.1fs elapsed)",
		explored, float64(explored)/elapsed, elapsed)
}

// ============================================================================
// Shared search tree
// ============================================================================

// deepNode is one node of the shared tree.  Search statistics are atomic,
// since concurrent simulations read them while others back values up.
type deepNode struct {
	state expr.Expr
	// parent of this node (nil for the root).
	parent *deepNode
	depth  uint
	prior  float64
	// rule which produced this state (zero for the root).
	ruleID        rules.RuleID
	ruleName      string
	justification string
	visits        atomic.Uint64
	// valueSum accumulates backed-up values in fixed point.
	valueSum atomic.Int64
	// vloss counts simulations currently descending through this node.
	vloss atomic.Int64
	// claimed marks the single worker which will expand this node.
	claimed  atomic.Bool
	expanded atomic.Bool
	// children are written once by the claiming worker before expanded is
	// set, which publishes them to every other worker.
	children []*deepNode
}

// newDeepChild constructs the child a rewrite leads to.
func newDeepChild(parent *deepNode, m rules.Match, prior float64) *deepNode {
	return &deepNode{
		state:         m.Result,
		parent:        parent,
		depth:         parent.depth + 1,
		prior:         prior,
		ruleID:        m.Rule.Id,
		ruleName:      m.Rule.Name,
		justification: m.Justification,
	}
}

// backup propagates a simulation value along the visited path, releasing the
// virtual loss taken during the descent.
func backup(path []*deepNode, value float64) {
	for _, node := range path {
		node.vloss.Add(-1)
		node.valueSum.Add(int64(value * valueScale))
	}
}

// unwind releases a path abandoned mid-descent, reverting both the virtual
// loss and the visit taken at each node.
func unwind(path []*deepNode) {
	for _, node := range path {
		node.vloss.Add(-1)
		node.visits.Add(^uint64(0))
	}
}

// sharedState carries the search state common to all workers of one call.
type sharedState struct {
	problem expr.Expr
	goal    Goal
	// explored counts reserved node visits, bounded by the node budget.
	explored atomic.Uint64
	// stop signals every worker to wind down.
	stop atomic.Bool
	// mu guards solution.
	mu       sync.Mutex
	solution *Solution
}

// reserve claims one unit of the node budget, failing once it is spent.
func (p *sharedState) reserve(budget uint64) bool {
	for {
		n := p.explored.Load()
		//
		if n >= budget {
			return false
		}
		//
		if p.explored.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// record offers a goal node's path as the solution, keeping the shortest
// across workers, and signals the stop.
func (p *sharedState) record(goal *deepNode) {
	var steps []Step
	//
	for n := goal; n.parent != nil; n = n.parent {
		steps = util.Prepend(Step{n.parent.state, n.state, n.ruleID, n.ruleName, n.justification}, steps)
	}
	//
	p.mu.Lock()
	//
	if p.solution == nil || len(steps) < len(p.solution.Steps) {
		p.solution = &Solution{Problem: p.problem, Result: goal.state, Steps: steps}
	}
	//
	p.mu.Unlock()
	p.stop.Store(true)
}
