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
	"testing"
	"time"

	"github.com/consensys/go-lemma/pkg/expr"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// Parallel MCTS
// ============================================================================

func Test_Deep_01(t *testing.T) {
	config := QuickSearchConfig()
	config.NumWorkers = 2
	//
	problem := expr.NewAdd(x, expr.Const64(0))
	solution, stats := NewDeepMCTS(standard).WithConfig(config).Search(problem, expr.IsAtom)
	//
	check_Solution(t, solution, x, 1)
	//
	if stats.NodesExplored > config.MaxNodes {
		t.Errorf("node budget exceeded: %d > %d", stats.NodesExplored, config.MaxNodes)
	}
}

func Test_Deep_02(t *testing.T) {
	config := DefaultDeepConfig()
	config.MaxNodes = 50
	config.NumWorkers = 4
	config.TimeLimit = time.Minute
	// x(y + 1) rewrites forever without reaching an unsatisfiable goal.
	problem := expr.NewMul(x, expr.NewAdd(y, expr.Const64(1)))
	solution, stats := NewDeepMCTS(standard).WithConfig(config).
		Search(problem, func(expr.Expr) bool { return false })
	//
	if solution != nil {
		t.Errorf("expected no solution, got %s", solution)
	}
	//
	if stats.NodesExplored > config.MaxNodes {
		t.Errorf("node budget exceeded: %d > %d", stats.NodesExplored, config.MaxNodes)
	}
}

func Test_Deep_03(t *testing.T) {
	// A single worker agrees with the sequential scheduler.
	config := QuickSearchConfig()
	config.NumWorkers = 1
	//
	problem := expr.NewMul(x, expr.Const64(0))
	//
	parallel, _ := NewDeepMCTS(standard).WithConfig(config).Search(problem, expr.IsZero)
	sequential, _ := NewMCTS(standard).Search(problem, expr.IsZero)
	//
	check_Solution(t, parallel, expr.Const64(0), 1)
	check_Solution(t, sequential, expr.Const64(0), 1)
}

func Test_Deep_04(t *testing.T) {
	config := QuickSearchConfig()
	config.NumWorkers = 2
	config.TimeLimit = 0
	//
	problem := expr.NewAdd(x, expr.Const64(0))
	solution, stats := NewDeepMCTS(standard).WithConfig(config).Search(problem, expr.IsAtom)
	//
	if solution != nil {
		t.Errorf("expected no solution under an expired deadline, got %s", solution)
	}
	//
	if stats.NodesExplored != 0 {
		t.Errorf("expected no nodes explored, got %d", stats.NodesExplored)
	}
}

func Test_Deep_05(t *testing.T) {
	// Problem already at the goal.
	solution, stats := NewDeepMCTS(standard).Search(x, expr.IsAtom)
	//
	check_Solution(t, solution, x, 0)
	//
	if solution != nil && !solution.IsTrivial() {
		t.Errorf("expected a trivial solution")
	}
	//
	if stats.NodesExplored != 0 {
		t.Errorf("expected no nodes explored, got %d", stats.NodesExplored)
	}
}

func Test_Deep_06(t *testing.T) {
	config := QuickSearchConfig()
	config.MaxNodes = 5000
	config.NumWorkers = 2
	// sin(0) + sin(0) only reaches zero through a sub-expression rewrite.
	problem := expr.NewAdd(expr.Sin(expr.Const64(0)), expr.Sin(expr.Const64(0)))
	solution, _ := NewDeepMCTS(standard).WithConfig(config).Search(problem, expr.IsZero)
	//
	check_Solution(t, solution, expr.Const64(0), 3)
}
