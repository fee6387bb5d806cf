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
package verifier

import (
	"github.com/consensys/go-lemma/pkg/expr"
)

// SymbolicEquivalent checks whether two expressions are equivalent by
// canonicalizing both sides and comparing for structural equality.  This is
// sound but incomplete: identities beyond the reach of canonicalization are
// reported as non-equivalent.
func SymbolicEquivalent(a expr.Expr, b expr.Expr) bool {
	ca, err1 := expr.Canonicalize(a)
	cb, err2 := expr.Canonicalize(b)
	// Domain failures leave subtrees unreduced, so equality of the results
	// would not be meaningful.
	if err1 != nil || err2 != nil {
		return false
	}
	//
	return expr.Equal(ca, cb)
}

// SymbolicZero checks whether an expression canonicalizes to the constant
// zero.
func SymbolicZero(e expr.Expr) bool {
	c, err := expr.Canonicalize(e)
	return err == nil && expr.IsZero(c)
}

// SymbolicOne checks whether an expression canonicalizes to the constant one.
func SymbolicOne(e expr.Expr) bool {
	c, err := expr.Canonicalize(e)
	return err == nil && expr.IsOne(c)
}
