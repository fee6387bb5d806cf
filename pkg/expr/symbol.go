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

// Symbol is an interned variable identifier.  Two symbols are equal exactly
// when their underlying identifiers are equal, which is only meaningful for
// symbols interned by the same SymbolTable.
type Symbol uint32

// SymbolTable interns variable names, assigning each distinct name a unique
// symbol.  Tables are append-only and expected to live for the duration of one
// reasoning session.
type SymbolTable struct {
	// names of all interned symbols, indexed by symbol.
	names []string
	// index maps names back to their symbols.
	index map[string]Symbol
}

// NewSymbolTable constructs an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		names: nil,
		index: make(map[string]Symbol),
	}
}

// Intern returns the symbol for a given name, assigning a fresh symbol if the
// name has not been seen before.
func (p *SymbolTable) Intern(name string) Symbol {
	if sym, ok := p.index[name]; ok {
		return sym
	}
	// Assign fresh symbol
	sym := Symbol(len(p.names))
	p.names = append(p.names, name)
	p.index[name] = sym
	// Done
	return sym
}

// Name resolves a symbol back to the name it was interned under.  This panics
// if the symbol was not interned by this table, since that indicates symbols
// from different sessions have been mixed up.
func (p *SymbolTable) Name(sym Symbol) string {
	if uint(sym) >= uint(len(p.names)) {
		panic(fmt.Sprintf("unknown symbol %d", sym))
	}
	//
	return p.names[sym]
}

// Len returns the number of symbols interned so far.
func (p *SymbolTable) Len() uint {
	return uint(len(p.names))
}
