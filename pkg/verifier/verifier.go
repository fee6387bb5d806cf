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

// Package verifier checks the mathematical validity of rewrites and
// solutions.  Two independent strategies are provided: symbolic comparison of
// canonical forms (sound but incomplete) and numerical spot-checking at
// random points (probabilistic but broadly applicable).  A formal strategy is
// reserved for SMT-backed proofs.
package verifier

import (
	"fmt"
	"math/rand/v2"

	"github.com/consensys/go-lemma/pkg/expr"
	"github.com/consensys/go-lemma/pkg/rules"
	"github.com/consensys/go-lemma/pkg/util"
)

// Verification levels, in increasing order of assurance.
const (
	// NUMERICAL verification spot-checks at random points.
	NUMERICAL uint8 = iota
	// SYMBOLIC verification compares canonical forms, falling back to
	// numerical spot-checking when canonicalization cannot decide.
	SYMBOLIC
	// FORMAL verification constructs a machine-checkable proof.
	FORMAL
)

// Verification statuses.
const (
	// VALID indicates verification succeeded.
	VALID uint8 = iota
	// INVALID indicates verification refuted the claim.
	INVALID
	// UNKNOWN indicates verification could not decide either way.
	UNKNOWN
)

// Outcome is the result of one verification, carrying a confidence for valid
// claims and a reason otherwise.
type Outcome struct {
	// Status of the verification.
	Status uint8
	// Confidence in a valid outcome, in (0, 1].
	Confidence float64
	// Reason verification failed or could not decide.
	Reason string
}

// Valid constructs a successful outcome with the given confidence.
func Valid(confidence float64) Outcome {
	return Outcome{VALID, confidence, ""}
}

// Invalid constructs a refuted outcome with the given reason.
func Invalid(reason string) Outcome {
	return Outcome{INVALID, 0, reason}
}

// Unknown constructs an undecided outcome with the given reason.
func Unknown(reason string) Outcome {
	return Outcome{UNKNOWN, 0, reason}
}

// IsValid checks whether this outcome indicates success.
func (p Outcome) IsValid() bool {
	return p.Status == VALID
}

func (p Outcome) String() string {
	switch p.Status {
	case VALID:
		return fmt.Sprintf("valid (confidence %.3f)", p.Confidence)
	case INVALID:
		return fmt.Sprintf("invalid (%s)", p.Reason)
	default:
		return fmt.Sprintf("unknown (%s)", p.Reason)
	}
}

// Verifier checks equivalences, rewrite steps and equation solutions at a
// configurable level of assurance.  Its random sampler is seeded per call,
// making outcomes reproducible for a fixed seed.
type Verifier struct {
	level     uint8
	samples   uint
	tolerance float64
	seed      uint64
}

// NewVerifier constructs a verifier with default settings: symbolic level,
// ten samples and a relative tolerance of 1e-10.
func NewVerifier() *Verifier {
	return &Verifier{
		level:     SYMBOLIC,
		samples:   10,
		tolerance: 1e-10,
		seed:      0,
	}
}

// WithLevel returns a copy of this verifier at the given level.
func (p *Verifier) WithLevel(level uint8) *Verifier {
	q := *p
	q.level = level
	//
	return &q
}

// WithSamples returns a copy of this verifier drawing the given number of
// numerical samples.
func (p *Verifier) WithSamples(samples uint) *Verifier {
	q := *p
	q.samples = samples
	//
	return &q
}

// WithTolerance returns a copy of this verifier using the given relative
// tolerance for numerical comparison.
func (p *Verifier) WithTolerance(tolerance float64) *Verifier {
	q := *p
	q.tolerance = tolerance
	//
	return &q
}

// WithSeed returns a copy of this verifier whose sampler is seeded with the
// given value.
func (p *Verifier) WithSeed(seed uint64) *Verifier {
	q := *p
	q.seed = seed
	//
	return &q
}

// VerifyEquivalence checks that two expressions denote the same value
// everywhere, at this verifier's level of assurance.
func (p *Verifier) VerifyEquivalence(a expr.Expr, b expr.Expr) Outcome {
	switch p.level {
	case NUMERICAL:
		if !Evaluable(a) || !Evaluable(b) {
			return Unknown("expression cannot be numerically evaluated")
		} else if NumericalEquivalent(a, b, p.samples, p.tolerance, p.rng()) {
			return Valid(0.999)
		}
		//
		return Invalid("numerical verification failed")
	case SYMBOLIC:
		if SymbolicEquivalent(a, b) {
			return Valid(1.0)
		}
		// Canonicalization could not decide, so fall back to sampling.
		if !Evaluable(a) || !Evaluable(b) {
			return Unknown("not symbolically equal, and cannot be numerically evaluated")
		} else if NumericalEquivalent(a, b, p.samples, p.tolerance, p.rng()) {
			return Valid(0.999)
		}
		//
		return Invalid("symbolic verification failed")
	case FORMAL:
		return Unknown("formal verification not implemented")
	}
	//
	panic("unreachable")
}

// VerifyStep checks that a rewrite step is valid: the rule must match the
// before state, the after state must be among the rewrites it produces there,
// and the two states must be equivalent at this verifier's level.
func (p *Verifier) VerifyStep(before expr.Expr, after expr.Expr, rule *rules.Rule,
	ctx rules.Context) Outcome {
	apps := rule.Apply(before, ctx)
	//
	if len(apps) == 0 {
		return Invalid(fmt.Sprintf("rule %s is not applicable", rule.Name))
	}
	//
	matched := util.ContainsMatching(apps, func(app rules.Application) bool {
		return p.equal(app.Result, after)
	})
	//
	if !matched {
		return Invalid(fmt.Sprintf("rule %s does not produce the claimed result", rule.Name))
	}
	// Calculus nodes cannot be sampled, so trust the matched application.
	if !Evaluable(before) || !Evaluable(after) {
		return Valid(0.95)
	}
	//
	return p.VerifyEquivalence(before, after)
}

// VerifySolution checks that a value satisfies an equation when substituted
// for the given variable.
func (p *Verifier) VerifySolution(equation expr.Expr, v expr.Symbol, value expr.Expr) Outcome {
	eq, ok := equation.(*expr.Equation)
	//
	if !ok {
		return Invalid("expected an equation")
	}
	//
	lhs := eq.Lhs.Substitute(v, value)
	rhs := eq.Rhs.Substitute(v, value)
	//
	if p.equal(lhs, rhs) {
		return Valid(1.0)
	}
	//
	residual := expr.NewSub(lhs, rhs)
	//
	if Evaluable(residual) && NumericalZero(residual, p.samples, p.tolerance, p.rng()) {
		return Valid(0.999)
	}
	//
	return Invalid("solution does not satisfy the equation")
}

// equal checks two expressions for equality, trying structural equality
// first, then canonical forms, then numerical sampling.
func (p *Verifier) equal(a expr.Expr, b expr.Expr) bool {
	if expr.Equal(a, b) || SymbolicEquivalent(a, b) {
		return true
	}
	//
	if Evaluable(a) && Evaluable(b) {
		return NumericalEquivalent(a, b, p.samples, p.tolerance, p.rng())
	}
	//
	return false
}

// rng constructs the call-local sampler for this verifier.
func (p *Verifier) rng() *rand.Rand {
	return rand.New(rand.NewPCG(p.seed, 0x9e3779b97f4a7c15))
}
