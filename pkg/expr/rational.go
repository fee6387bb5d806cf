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
	"math/big"
)

// Rational is an exact fraction in lowest terms with a positive denominator.
// All operations are exact and allocate a fresh result, so values can be
// shared freely.  Always construct rationals through NewRational or
// NewRationalFromInt; the zero value is not usable.
type Rational struct {
	rat *big.Rat
}

// NewRational constructs the exact fraction num/den, reduced to lowest terms.
// A zero denominator panics, since it signals a caller bug rather than a
// runtime condition.
func NewRational(num int64, den int64) Rational {
	if den == 0 {
		panic("denominator cannot be zero")
	}
	//
	return Rational{big.NewRat(num, den)}
}

// NewRationalFromInt constructs a rational holding an integer value.
func NewRationalFromInt(val int64) Rational {
	return Rational{big.NewRat(val, 1)}
}

func ratFromBig(r *big.Rat) Rational {
	return Rational{new(big.Rat).Set(r)}
}

// Add returns the exact sum of two rationals.
func (p Rational) Add(other Rational) Rational {
	return Rational{new(big.Rat).Add(p.rat, other.rat)}
}

// Sub returns the exact difference of two rationals.
func (p Rational) Sub(other Rational) Rational {
	return Rational{new(big.Rat).Sub(p.rat, other.rat)}
}

// Mul returns the exact product of two rationals.
func (p Rational) Mul(other Rational) Rational {
	return Rational{new(big.Rat).Mul(p.rat, other.rat)}
}

// Div returns the exact quotient of two rationals.  Dividing by zero panics.
func (p Rational) Div(other Rational) Rational {
	if other.IsZero() {
		panic("division by zero")
	}
	//
	return Rational{new(big.Rat).Quo(p.rat, other.rat)}
}

// Neg returns the negation of this rational.
func (p Rational) Neg() Rational {
	return Rational{new(big.Rat).Neg(p.rat)}
}

// Abs returns the absolute value of this rational.
func (p Rational) Abs() Rational {
	return Rational{new(big.Rat).Abs(p.rat)}
}

// Recip returns the reciprocal of this rational.  The reciprocal of zero
// panics.
func (p Rational) Recip() Rational {
	if p.IsZero() {
		panic("division by zero")
	}
	//
	return Rational{new(big.Rat).Inv(p.rat)}
}

// Pow raises this rational to an integer power.  Raising zero to a negative
// power panics.
func (p Rational) Pow(n int) Rational {
	if n < 0 {
		return p.Recip().Pow(-n)
	}
	//
	var (
		num = new(big.Int).Exp(p.rat.Num(), big.NewInt(int64(n)), nil)
		den = new(big.Int).Exp(p.rat.Denom(), big.NewInt(int64(n)), nil)
	)
	//
	return Rational{new(big.Rat).SetFrac(num, den)}
}

// IsZero checks whether this rational is zero.
func (p Rational) IsZero() bool {
	return p.rat.Sign() == 0
}

// IsOne checks whether this rational is one.
func (p Rational) IsOne() bool {
	return p.rat.Cmp(ratOne) == 0
}

// IsNegative checks whether this rational is strictly negative.
func (p Rational) IsNegative() bool {
	return p.rat.Sign() < 0
}

// IsPositive checks whether this rational is strictly positive.
func (p Rational) IsPositive() bool {
	return p.rat.Sign() > 0
}

// IsInteger checks whether this rational has denominator one.
func (p Rational) IsInteger() bool {
	return p.rat.IsInt()
}

// Int64 returns the value of this rational as an int64, along with a flag
// indicating whether the conversion was exact.
func (p Rational) Int64() (int64, bool) {
	if !p.rat.IsInt() || !p.rat.Num().IsInt64() {
		return 0, false
	}
	//
	return p.rat.Num().Int64(), true
}

// Cmp compares two rationals exactly, returning a negative value if p < other,
// zero if they are equal, and a positive value otherwise.
func (p Rational) Cmp(other Rational) int {
	return p.rat.Cmp(other.rat)
}

// Equals checks whether two rationals represent the same exact value.
func (p Rational) Equals(other Rational) bool {
	return p.rat.Cmp(other.rat) == 0
}

// Float64 returns the nearest float64 approximation of this rational.
func (p Rational) Float64() float64 {
	f, _ := p.rat.Float64()
	return f
}

// String returns this rational as "num" for integers and "num/den" otherwise.
func (p Rational) String() string {
	return p.rat.RatString()
}

var ratOne = big.NewRat(1, 1)
