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
package expr

import (
	"sort"
)

// Expr is an immutable node in an expression tree.  The set of variants is
// closed (sealed by the unexported methods): constants and variables, unary
// and binary arithmetic, transcendental functions, flattened n-ary sums and
// products, calculus operators, relations and quantified formulae.  Every
// transformation allocates a new tree; subtrees are never shared between
// distinct expressions and never mutated in place.
type Expr interface {
	// Complexity returns the number of nodes in this expression tree.  It
	// doubles as the heuristic score used to rank candidate states, where
	// lower means simpler.
	Complexity() uint
	// Eval computes the numeric value of this expression under the given
	// variable environment.  Evaluation failures (unbound variables, domain
	// violations, non-numeric forms) are reported as error values.
	Eval(env Environment) (float64, error)
	// Substitute returns a copy of this expression in which every free
	// occurrence of the given variable has been replaced.  Occurrences bound
	// by a quantifier, summation or calculus operator are left untouched.
	Substitute(sym Symbol, with Expr) Expr
	// String returns a human-readable rendering of this expression.
	String() string
	// canon rewrites this node into canonical form, assuming its children
	// have not yet been canonicalized.  Domain failures are recorded in the
	// given state and leave the offending node unreduced.
	canon(depth uint, st *canonState) Expr
	// vars accumulates the free variables of this expression into out, given
	// the set of variables currently bound by enclosing binders.
	vars(bound map[Symbol]bool, out map[Symbol]bool)
}

// Environment binds variables to the numeric values used during evaluation.
type Environment map[Symbol]float64

// FreeVars returns the free variables of an expression, sorted by symbol so
// that callers iterating over them behave deterministically.
func FreeVars(e Expr) []Symbol {
	out := make(map[Symbol]bool)
	e.vars(make(map[Symbol]bool), out)
	//
	syms := make([]Symbol, 0, len(out))
	for sym := range out {
		syms = append(syms, sym)
	}
	//
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	//
	return syms
}

// ContainsVar checks whether a given variable occurs free in an expression.
func ContainsVar(e Expr, sym Symbol) bool {
	out := make(map[Symbol]bool)
	e.vars(make(map[Symbol]bool), out)
	//
	return out[sym]
}

// Key adapts an expression for use as a key of util.HashSet / util.HashMap,
// comparing by structural equality.  Keys should be built from canonical
// forms when used to deduplicate search states.
type Key struct {
	Expr Expr
}

// NewKey wraps an expression as a key.
func NewKey(e Expr) Key {
	return Key{e}
}

// Equals implementation for util.Hasher interface.
func (p Key) Equals(other Key) bool {
	return Equal(p.Expr, other.Expr)
}

// Hash implementation for util.Hasher interface.
func (p Key) Hash() uint64 {
	return Hash(p.Expr)
}

func (p Key) String() string {
	return p.Expr.String()
}
