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

	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
	"github.com/consensys/go-lemma/pkg/verifier"
)

var x = expr.NewVar(0)
var y = expr.NewVar(1)

var standard = rules.StandardRules()

// ============================================================================
// Sequential MCTS
// ============================================================================

func Test_MCTS_01(t *testing.T) {
	problem := expr.NewAdd(x, expr.Const64(0))
	//
	solution, stats := NewMCTS(standard).Search(problem, expr.IsAtom)
	//
	check_Solution(t, solution, x, 1)
	//
	if solution != nil && solution.Steps[0].RuleName != "add_zero" {
		t.Errorf("expected add_zero, got %s", solution.Steps[0].RuleName)
	}
	//
	if stats.NodesExplored == 0 {
		t.Errorf("expected a non-zero node count")
	}
}

func Test_MCTS_02(t *testing.T) {
	problem := expr.NewMul(x, expr.Const64(0))
	//
	solution, _ := NewMCTS(standard).Search(problem, expr.IsZero)
	//
	check_Solution(t, solution, expr.Const64(0), 1)
}

func Test_MCTS_03(t *testing.T) {
	// Problem already at the goal.
	solution, stats := NewMCTS(standard).Search(x, expr.IsAtom)
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

func Test_MCTS_04(t *testing.T) {
	// d/dx(x^2)
	problem := expr.NewDerivative(expr.NewPow(x, expr.Const64(2)), 0)
	expected := expr.NewMul(expr.Const64(2), expr.NewPow(x, expr.Const64(1)))
	//
	solution, _ := NewMCTS(standard).Search(problem, verifier.Evaluable)
	//
	check_Solution(t, solution, expected, 1)
	//
	if solution != nil && !verifier.SymbolicEquivalent(solution.Result, expr.NewMul(expr.Const64(2), x)) {
		t.Errorf("expected a result equivalent to 2x, got %s", solution.Result)
	}
}

func Test_MCTS_05(t *testing.T) {
	config := DefaultSearchConfig()
	config.Simulations = 50
	// No rule rewrites sin(x), so the search can only spend its budget.
	solution, stats := NewMCTS(standard).WithConfig(config).
		Search(expr.Sin(x), func(expr.Expr) bool { return false })
	//
	if solution != nil {
		t.Errorf("expected no solution, got %s", solution)
	}
	//
	if stats.NodesExplored != 50 {
		t.Errorf("expected 50 nodes explored, got %d", stats.NodesExplored)
	}
}

func Test_MCTS_06(t *testing.T) {
	// 2x + 1 = 7
	problem := expr.NewEquation(
		expr.NewAdd(expr.NewMul(expr.Const64(2), x), expr.Const64(1)),
		expr.Const64(7))
	//
	solution, _ := NewMCTS(standard).Search(problem, isSolved)
	//
	check_Solution(t, solution, expr.NewEquation(x, expr.Const64(3)), 1)
}

func Test_MCTS_07(t *testing.T) {
	problem := expr.NewAdd(x, expr.Const64(0))
	config := DefaultSearchConfig()
	// A single simulation expands the root without descending.
	config.Simulations = 1
	//
	if solution, _ := NewMCTS(standard).WithConfig(config).Search(problem, expr.IsAtom); solution != nil {
		t.Errorf("expected no solution after one simulation, got %s", solution)
	}
	//
	config.Simulations = 2
	//
	solution, _ := NewMCTS(standard).WithConfig(config).Search(problem, expr.IsAtom)
	check_Solution(t, solution, x, 1)
}

// ============================================================================
// Oracle
// ============================================================================

func Test_Oracle_01(t *testing.T) {
	priors, value := Uniform{}.Predict(x, []rules.RuleID{1, 2, 3, 4})
	//
	if len(priors) != 4 {
		t.Errorf("expected 4 priors, got %d", len(priors))
	}
	//
	for _, prior := range priors {
		if prior != 0.25 {
			t.Errorf("expected uniform prior 0.25, got %f", prior)
		}
	}
	//
	if value != 0.0 {
		t.Errorf("expected a neutral value, got %f", value)
	}
	//
	if priors, _ := (Uniform{}).Predict(x, nil); len(priors) != 0 {
		t.Errorf("expected no priors without candidates")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func check_Solution(t *testing.T, solution *Solution, result expr.Expr, steps uint) {
	t.Helper()
	//
	if solution == nil {
		t.Errorf("expected a solution, got none")
	} else if !expr.Equal(solution.Result, result) {
		t.Errorf("expected result %s, got %s", result, solution.Result)
	} else if solution.NumSteps() != steps {
		t.Errorf("expected %d steps, got %d (%s)", steps, solution.NumSteps(), solution)
	} else if !solution.Verified {
		t.Errorf("solution failed verification: %s", solution)
	}
}

// isSolved holds for an equation whose left-hand side is a bare variable.
func isSolved(e expr.Expr) bool {
	if eq, ok := e.(*expr.Equation); ok {
		_, ok := eq.Lhs.(*expr.Variable)
		return ok
	}
	//
	return false
}
