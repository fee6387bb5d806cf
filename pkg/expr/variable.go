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

import "fmt"

// Variable represents a reference to an interned variable.
type Variable struct {
	Symbol Symbol
}

// NewVar constructs a variable expression for a given symbol.
func NewVar(sym Symbol) Expr {
	return &Variable{sym}
}

// Complexity implementation for Expr interface.
func (p *Variable) Complexity() uint { return 1 }

// Eval implementation for Expr interface.
func (p *Variable) Eval(env Environment) (float64, error) {
	if val, ok := env[p.Symbol]; ok {
		return val, nil
	}
	//
	return 0, &UndefinedVariableError{p.Symbol}
}

// Substitute implementation for Expr interface.
func (p *Variable) Substitute(sym Symbol, with Expr) Expr {
	if p.Symbol == sym {
		return with
	}
	//
	return p
}

func (p *Variable) String() string {
	return fmt.Sprintf("v%d", p.Symbol)
}

func (p *Variable) canon(depth uint, st *canonState) Expr { return p }

func (p *Variable) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	if !bound[p.Symbol] {
		out[p.Symbol] = true
	}
}
