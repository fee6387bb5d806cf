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
)

// ============================================================================
// Beam search
// ============================================================================

func Test_Beam_01(t *testing.T) {
	solution, stats := NewBeamSearch(standard).Search(expr.Sin(expr.Const64(0)), expr.IsZero)
	//
	check_Solution(t, solution, expr.Const64(0), 1)
	//
	if solution != nil && solution.Steps[0].RuleName != "sin_zero" {
		t.Errorf("expected sin_zero, got %s", solution.Steps[0].RuleName)
	}
	//
	if stats.NodesExplored == 0 {
		t.Errorf("expected a non-zero node count")
	}
}

func Test_Beam_02(t *testing.T) {
	// Simplifications within the canonicalizer's reach take no steps.
	solution, _ := NewBeamSearch(standard).Simplify(expr.NewAdd(expr.Const64(2), expr.Const64(3)))
	check_Solution(t, solution, expr.Const64(5), 0)
	//
	solution, _ = NewBeamSearch(standard).Simplify(expr.NewAdd(x, expr.Const64(0)))
	check_Solution(t, solution, x, 0)
}

func Test_Beam_03(t *testing.T) {
	// sin(0) survives canonicalization, so simplifying it takes a rewrite.
	solution, _ := NewBeamSearch(standard).Simplify(expr.Sin(expr.Const64(0)))
	check_Solution(t, solution, expr.Const64(0), 1)
}

func Test_Beam_04(t *testing.T) {
	// x(y + 1) distributes, but factoring straight back is pruned as a
	// revisit, leaving nothing to expand.
	problem := expr.NewMul(x, expr.NewAdd(y, expr.Const64(1)))
	solution, stats := NewBeamSearch(standard).Search(problem, func(expr.Expr) bool { return false })
	//
	if solution != nil {
		t.Errorf("expected no solution, got %s", solution)
	}
	//
	if stats.NodesExplored != 1 {
		t.Errorf("expected 1 node explored, got %d", stats.NodesExplored)
	}
}

func Test_Beam_05(t *testing.T) {
	config := DefaultSearchConfig()
	// A beam of one keeps only the simplest rewrite, which here is the
	// directly solved form.
	config.BeamWidth = 1
	// 2x + 1 = 7
	problem := expr.NewEquation(
		expr.NewAdd(expr.NewMul(expr.Const64(2), x), expr.Const64(1)),
		expr.Const64(7))
	//
	solution, _ := NewBeamSearch(standard).WithConfig(config).Search(problem, isSolved)
	//
	check_Solution(t, solution, expr.NewEquation(x, expr.Const64(3)), 1)
	//
	if solution != nil && solution.Steps[0].RuleName != "linear_solve" {
		t.Errorf("expected linear_solve, got %s", solution.Steps[0].RuleName)
	}
}

func Test_Beam_06(t *testing.T) {
	// Problem already at the goal.
	solution, stats := NewBeamSearch(standard).Search(x, expr.IsAtom)
	//
	check_Solution(t, solution, x, 0)
	//
	if stats.NodesExplored != 0 {
		t.Errorf("expected no nodes explored, got %d", stats.NodesExplored)
	}
	// No rule rewrites sin(x), so the search exhausts immediately.
	solution, stats = NewBeamSearch(standard).Search(expr.Sin(x), expr.IsZero)
	//
	if solution != nil || stats.NodesExplored != 0 {
		t.Errorf("expected an empty search, got %s after %d nodes", solution, stats.NodesExplored)
	}
}
