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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRationalArithmetic(t *testing.T) {
	var (
		third    = NewRational(1, 3)
		twothird = NewRational(2, 3)
		half     = NewRational(1, 2)
	)
	// Exact arithmetic where floats would round
	assert.True(t, third.Add(twothird).IsOne(), "1/3 + 2/3 should be exactly 1")
	assert.True(t, third.Mul(NewRationalFromInt(3)).IsOne(), "1/3 * 3 should be exactly 1")
	assert.Equal(t, 0, third.Sub(twothird).Cmp(NewRational(-1, 3)))
	assert.Equal(t, 0, half.Div(third).Cmp(NewRational(3, 2)))
	assert.Equal(t, 0, half.Neg().Cmp(NewRational(-1, 2)))
	assert.Equal(t, 0, half.Neg().Abs().Cmp(half))
	assert.Equal(t, 0, third.Recip().Cmp(NewRationalFromInt(3)))
}

func TestRationalNormalisation(t *testing.T) {
	// Always reduced to lowest terms with positive denominator
	assert.True(t, NewRational(2, 4).Equals(NewRational(1, 2)))
	assert.True(t, NewRational(1, -2).Equals(NewRational(-1, 2)))
	assert.Equal(t, "1/2", NewRational(2, 4).String())
	assert.Equal(t, "-1/2", NewRational(1, -2).String())
	assert.Equal(t, "7", NewRationalFromInt(7).String())
}

func TestRationalPredicates(t *testing.T) {
	assert.True(t, NewRationalFromInt(0).IsZero())
	assert.True(t, NewRationalFromInt(1).IsOne())
	assert.True(t, NewRational(-1, 3).IsNegative())
	assert.True(t, NewRational(1, 3).IsPositive())
	assert.True(t, NewRational(6, 3).IsInteger())
	assert.False(t, NewRational(1, 3).IsInteger())
	//
	n, ok := NewRational(6, 3).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)
	//
	_, ok = NewRational(1, 3).Int64()
	assert.False(t, ok)
}

func TestRationalPow(t *testing.T) {
	var half = NewRational(1, 2)
	//
	assert.Equal(t, 0, half.Pow(3).Cmp(NewRational(1, 8)))
	assert.Equal(t, 0, half.Pow(-2).Cmp(NewRationalFromInt(4)))
	assert.True(t, half.Pow(0).IsOne())
	assert.Equal(t, 0, NewRational(-2, 3).Pow(2).Cmp(NewRational(4, 9)))
}

func TestRationalPanics(t *testing.T) {
	assert.Panics(t, func() { NewRational(1, 0) }, "zero denominator should panic")
	assert.Panics(t, func() { NewRationalFromInt(1).Div(NewRationalFromInt(0)) })
	assert.Panics(t, func() { NewRationalFromInt(0).Recip() })
}
