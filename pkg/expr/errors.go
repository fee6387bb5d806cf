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
	"errors"
	"fmt"
)

// DomainError indicates an operation was applied outside its domain of
// definition (e.g. dividing by zero, or taking the logarithm of a
// non-positive value).  Domain errors are recoverable values: the offending
// subtree is left unreduced and the condition is reported to the caller,
// never raised as a panic.
type DomainError struct {
	// Op identifies the operation which failed (e.g. "div", "ln", "sqrt").
	Op string
	// Reason describes why the operation is undefined here.
	Reason string
}

func (p *DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", p.Op, p.Reason)
}

// UndefinedVariableError indicates numeric evaluation encountered a variable
// with no binding in the environment.
type UndefinedVariableError struct {
	// Symbol is the unbound variable.
	Symbol Symbol
}

func (p *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable v%d", p.Symbol)
}

// ErrNotEvaluable indicates an expression has no numeric interpretation (for
// example an unapplied derivative, or a quantified formula).
var ErrNotEvaluable = errors.New("expression is not numerically evaluable")

func divisionByZero() *DomainError {
	return &DomainError{Op: "div", Reason: "division by zero"}
}

func logNonPositive() *DomainError {
	return &DomainError{Op: "ln", Reason: "argument must be positive"}
}

func sqrtNegative() *DomainError {
	return &DomainError{Op: "sqrt", Reason: "argument must be non-negative"}
}

func factorialOutOfRange() *DomainError {
	return &DomainError{Op: "factorial", Reason: "argument must be an integer in 0..20"}
}

func binomialOutOfRange() *DomainError {
	return &DomainError{Op: "binomial", Reason: "arguments must be small non-negative integers"}
}

func summationTooLarge() *DomainError {
	return &DomainError{Op: "summation", Reason: "bound range exceeds 1000 iterations"}
}

func powUndefined() *DomainError {
	return &DomainError{Op: "pow", Reason: "result is not a real number"}
}
