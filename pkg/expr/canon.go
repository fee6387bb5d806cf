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

// maxCanonDepth bounds recursion during canonicalisation.  Subtrees at or
// below this depth are returned unreduced rather than risking stack overflow
// on pathological inputs.
const maxCanonDepth = 100

// maxFoldExponent bounds the integer exponents which constant folding and
// power distribution will expand, since larger exponents produce enormous
// numerators.
const maxFoldExponent = 10

// canonState threads domain failures encountered during canonicalisation,
// such as a literal division by zero.  Only the first failure is retained.
type canonState struct {
	err error
}

// record retains the first domain failure encountered.
func (p *canonState) record(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Canonicalize reduces an expression to a canonical form, such that any two
// expressions which are algebraically identical under the ring axioms (along
// with a handful of simple identities) canonicalise to structurally identical
// forms.  Specifically, sums and products are flattened and sorted, like terms
// and like factors are collected, constants are folded and the additive and
// multiplicative identities are eliminated.  For example, "x + 0" and "x"
// canonicalise identically, as do "x*x" and "x^2".
//
// Canonical forms are built from sums, products, powers and atoms, meaning
// the raw binary operators never survive canonicalisation (except beneath the
// recursion bound).  An error is returned for expressions whose reduction
// encounters an undefined operation, such as a literal division by zero; the
// offending subtree is left unreduced in that case.
func Canonicalize(e Expr) (Expr, error) {
	var state canonState
	//
	result := e.canon(0, &state)
	//
	return result, state.err
}
