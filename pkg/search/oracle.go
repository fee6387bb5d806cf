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
	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
)

// Oracle supplies rule-selection priors and state-value estimates to the
// search, typically backed by a learned policy/value model.  Search
// correctness never depends on the oracle's quality, only its shape: priors
// align index-wise with the candidate rules, and values lie in [-1, 1].
type Oracle interface {
	// Predict returns one prior per candidate rule, plus a value estimate for
	// the state itself.
	Predict(state expr.Expr, candidates []rules.RuleID) ([]float64, float64)
}

// Uniform is the default oracle: equal priors, neutral value.
type Uniform struct{}

// Predict implementation for Oracle interface.
func (p Uniform) Predict(state expr.Expr, candidates []rules.RuleID) ([]float64, float64) {
	priors := make([]float64, len(candidates))
	//
	for i := range priors {
		priors[i] = 1.0 / float64(len(candidates))
	}
	//
	return priors, 0.0
}
