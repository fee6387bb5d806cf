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
	"encoding/binary"
	"hash"
	"hash/fnv"
	"io"
)

// Ranks determining the relative order of expressions of differing kinds.
// Atoms order before compound expressions, hence constants sort first within
// sums and products.
const (
	rankConstant uint = iota
	rankPi
	rankE
	rankVariable
	rankFunc
	rankPow
	rankSum
	rankProduct
	rankAdd
	rankSub
	rankNeg
	rankMul
	rankDiv
	rankFactorial
	rankBinomial
	rankDerivative
	rankIntegral
	rankSummation
	rankEquation
	rankInequality
	rankQuantifier
)

func rankOf(e Expr) uint {
	switch e.(type) {
	case *Constant:
		return rankConstant
	case *Pi:
		return rankPi
	case *E:
		return rankE
	case *Variable:
		return rankVariable
	case *Func:
		return rankFunc
	case *Pow:
		return rankPow
	case *Sum:
		return rankSum
	case *Product:
		return rankProduct
	case *Add:
		return rankAdd
	case *Sub:
		return rankSub
	case *Neg:
		return rankNeg
	case *Mul:
		return rankMul
	case *Div:
		return rankDiv
	case *Factorial:
		return rankFactorial
	case *Binomial:
		return rankBinomial
	case *Derivative:
		return rankDerivative
	case *Integral:
		return rankIntegral
	case *Summation:
		return rankSummation
	case *Equation:
		return rankEquation
	case *Inequality:
		return rankInequality
	case *Quantifier:
		return rankQuantifier
	default:
		panic("unreachable")
	}
}

// Compare imposes a total order on expressions, returning a negative value if
// a orders before b, zero if they are structurally identical, and a positive
// value otherwise.  Expressions of differing kinds are ordered by rank, whilst
// expressions of the same kind are ordered by their payloads.
func Compare(a Expr, b Expr) int {
	var (
		ra = rankOf(a)
		rb = rankOf(b)
	)
	//
	if ra != rb {
		return int(ra) - int(rb)
	}
	//
	switch x := a.(type) {
	case *Constant:
		return x.Value.Cmp(b.(*Constant).Value)
	case *Pi, *E:
		return 0
	case *Variable:
		return cmpSymbol(x.Symbol, b.(*Variable).Symbol)
	case *Func:
		y := b.(*Func)
		//
		if c := int(x.Op) - int(y.Op); c != 0 {
			return c
		}
		//
		return Compare(x.Arg, y.Arg)
	case *Pow:
		y := b.(*Pow)
		//
		if c := Compare(x.Base, y.Base); c != 0 {
			return c
		}
		//
		return Compare(x.Exponent, y.Exponent)
	case *Sum:
		return compareTerms(x.Terms, b.(*Sum).Terms)
	case *Product:
		return compareFactors(x.Factors, b.(*Product).Factors)
	case *Add:
		y := b.(*Add)
		return comparePairwise(x.Lhs, x.Rhs, y.Lhs, y.Rhs)
	case *Sub:
		y := b.(*Sub)
		return comparePairwise(x.Lhs, x.Rhs, y.Lhs, y.Rhs)
	case *Neg:
		return Compare(x.Arg, b.(*Neg).Arg)
	case *Mul:
		y := b.(*Mul)
		return comparePairwise(x.Lhs, x.Rhs, y.Lhs, y.Rhs)
	case *Div:
		y := b.(*Div)
		return comparePairwise(x.Lhs, x.Rhs, y.Lhs, y.Rhs)
	case *Factorial:
		return Compare(x.Arg, b.(*Factorial).Arg)
	case *Binomial:
		y := b.(*Binomial)
		return comparePairwise(x.N, x.K, y.N, y.K)
	case *Derivative:
		y := b.(*Derivative)
		//
		if c := cmpSymbol(x.Var, y.Var); c != 0 {
			return c
		}
		//
		return Compare(x.Body, y.Body)
	case *Integral:
		y := b.(*Integral)
		//
		if c := cmpSymbol(x.Var, y.Var); c != 0 {
			return c
		}
		//
		return Compare(x.Body, y.Body)
	case *Summation:
		y := b.(*Summation)
		//
		if c := cmpSymbol(x.Var, y.Var); c != 0 {
			return c
		}
		//
		if c := Compare(x.From, y.From); c != 0 {
			return c
		}
		//
		if c := Compare(x.To, y.To); c != 0 {
			return c
		}
		//
		return Compare(x.Body, y.Body)
	case *Equation:
		y := b.(*Equation)
		return comparePairwise(x.Lhs, x.Rhs, y.Lhs, y.Rhs)
	case *Inequality:
		y := b.(*Inequality)
		//
		if c := int(x.Kind) - int(y.Kind); c != 0 {
			return c
		}
		//
		return comparePairwise(x.Lhs, x.Rhs, y.Lhs, y.Rhs)
	case *Quantifier:
		y := b.(*Quantifier)
		//
		if x.Exists != y.Exists {
			if x.Exists {
				return 1
			}
			//
			return -1
		}
		//
		if c := cmpSymbol(x.Var, y.Var); c != 0 {
			return c
		}
		//
		if c := int(x.Domain) - int(y.Domain); c != 0 {
			return c
		}
		//
		return Compare(x.Body, y.Body)
	default:
		panic("unreachable")
	}
}

// Equal determines whether two expressions are structurally identical.
func Equal(a Expr, b Expr) bool {
	return Compare(a, b) == 0
}

// Hash computes a structural hash of an expression, such that structurally
// identical expressions always hash identically.
func Hash(e Expr) uint64 {
	hasher := fnv.New64a()
	hashWrite(hasher, e)
	//
	return hasher.Sum64()
}

func comparePairwise(xl Expr, xr Expr, yl Expr, yr Expr) int {
	if c := Compare(xl, yl); c != 0 {
		return c
	}
	//
	return Compare(xr, yr)
}

func compareTerms(xs []Term, ys []Term) int {
	if c := len(xs) - len(ys); c != 0 {
		return c
	}
	//
	for i := range xs {
		if c := Compare(xs[i].Expr, ys[i].Expr); c != 0 {
			return c
		}
		//
		if c := xs[i].Coeff.Cmp(ys[i].Coeff); c != 0 {
			return c
		}
	}
	//
	return 0
}

func compareFactors(xs []Factor, ys []Factor) int {
	if c := len(xs) - len(ys); c != 0 {
		return c
	}
	//
	for i := range xs {
		if c := Compare(xs[i].Base, ys[i].Base); c != 0 {
			return c
		}
		//
		if c := xs[i].Power.Cmp(ys[i].Power); c != 0 {
			return c
		}
	}
	//
	return 0
}

func cmpSymbol(a Symbol, b Symbol) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

//nolint:errcheck
func hashWrite(hasher hash.Hash64, e Expr) {
	hashTag(hasher, rankOf(e))
	//
	switch x := e.(type) {
	case *Constant:
		io.WriteString(hasher, x.Value.String())
	case *Pi, *E:
		// Rank alone identifies the atom.
	case *Variable:
		hashSymbol(hasher, x.Symbol)
	case *Func:
		hasher.Write([]byte{x.Op})
		hashWrite(hasher, x.Arg)
	case *Pow:
		hashWrite(hasher, x.Base)
		hashWrite(hasher, x.Exponent)
	case *Sum:
		hashTag(hasher, uint(len(x.Terms)))
		//
		for _, term := range x.Terms {
			io.WriteString(hasher, term.Coeff.String())
			hashWrite(hasher, term.Expr)
		}
	case *Product:
		hashTag(hasher, uint(len(x.Factors)))
		//
		for _, factor := range x.Factors {
			io.WriteString(hasher, factor.Power.String())
			hashWrite(hasher, factor.Base)
		}
	case *Add:
		hashWrite(hasher, x.Lhs)
		hashWrite(hasher, x.Rhs)
	case *Sub:
		hashWrite(hasher, x.Lhs)
		hashWrite(hasher, x.Rhs)
	case *Neg:
		hashWrite(hasher, x.Arg)
	case *Mul:
		hashWrite(hasher, x.Lhs)
		hashWrite(hasher, x.Rhs)
	case *Div:
		hashWrite(hasher, x.Lhs)
		hashWrite(hasher, x.Rhs)
	case *Factorial:
		hashWrite(hasher, x.Arg)
	case *Binomial:
		hashWrite(hasher, x.N)
		hashWrite(hasher, x.K)
	case *Derivative:
		hashSymbol(hasher, x.Var)
		hashWrite(hasher, x.Body)
	case *Integral:
		hashSymbol(hasher, x.Var)
		hashWrite(hasher, x.Body)
	case *Summation:
		hashSymbol(hasher, x.Var)
		hashWrite(hasher, x.From)
		hashWrite(hasher, x.To)
		hashWrite(hasher, x.Body)
	case *Equation:
		hashWrite(hasher, x.Lhs)
		hashWrite(hasher, x.Rhs)
	case *Inequality:
		hasher.Write([]byte{x.Kind})
		hashWrite(hasher, x.Lhs)
		hashWrite(hasher, x.Rhs)
	case *Quantifier:
		if x.Exists {
			hasher.Write([]byte{1})
		} else {
			hasher.Write([]byte{0})
		}
		//
		hasher.Write([]byte{x.Domain})
		hashSymbol(hasher, x.Var)
		hashWrite(hasher, x.Body)
	default:
		panic("unreachable")
	}
}

//nolint:errcheck
func hashTag(hasher hash.Hash64, tag uint) {
	var bytes [4]byte
	//
	binary.BigEndian.PutUint32(bytes[:], uint32(tag))
	hasher.Write(bytes[:])
}

//nolint:errcheck
func hashSymbol(hasher hash.Hash64, sym Symbol) {
	var bytes [4]byte
	//
	binary.BigEndian.PutUint32(bytes[:], uint32(sym))
	hasher.Write(bytes[:])
}
