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
package rules

// Ledger receives one cost event per rewrite produced during rule
// application, allowing callers to account for how search effort is spent
// across the ruleset.
type Ledger interface {
	// RecordCost registers that the given rule produced a rewrite of the
	// given cost.
	RecordCost(id RuleID, cost uint)
}

// Recorder is an in-memory cost ledger which accumulates per-rule counts and
// total spend.  It is not safe for concurrent use.
type Recorder struct {
	counts map[RuleID]uint
	total  uint
}

// NewRecorder constructs an empty cost recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[RuleID]uint)}
}

// RecordCost implementation for Ledger interface.
func (p *Recorder) RecordCost(id RuleID, cost uint) {
	p.counts[id] = p.counts[id] + 1
	p.total += cost
}

// CountOf returns how many rewrites the given rule has produced so far.
func (p *Recorder) CountOf(id RuleID) uint {
	return p.counts[id]
}

// Total returns the accumulated cost of all rewrites recorded so far.
func (p *Recorder) Total() uint {
	return p.total
}
