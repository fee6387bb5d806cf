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
	"runtime"
	"time"
)

// SearchConfig configures the sequential schedulers (MCTS and beam search).
type SearchConfig struct {
	// MaxDepth bounds how many rewrites deep a search may go.
	MaxDepth uint
	// BeamWidth is the number of frontier states beam search keeps per level.
	BeamWidth uint
	// Simulations is the number of MCTS iterations per search.
	Simulations uint
	// ExplorationWeight balances exploitation against exploration in the UCB
	// formula.
	ExplorationWeight float64
}

// DefaultSearchConfig returns the standard sequential configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxDepth:          20,
		BeamWidth:         10,
		Simulations:       1000,
		ExplorationWeight: 1.41,
	}
}

// DeepConfig configures the parallel scheduler, whose budgets are node counts
// and wall-clock time rather than iteration counts.
type DeepConfig struct {
	// MaxNodes caps the total number of node visits across all workers.
	MaxNodes uint64
	// TimeLimit bounds the wall-clock duration of one search call, checked
	// cooperatively by each worker.
	TimeLimit time.Duration
	// NumWorkers fixes the goroutine pool size for the call.
	NumWorkers uint
	// MaxDepth bounds how many rewrites deep a single simulation may go.
	MaxDepth uint
	// ExplorationWeight balances exploitation against exploration.
	ExplorationWeight float64
	// VirtualLoss is the per-selection penalty discouraging workers from
	// converging on the same path.
	VirtualLoss float64
	// ProgressInterval is the node count between progress log lines.
	ProgressInterval uint64
}

// DefaultDeepConfig returns the standard parallel configuration: ten million
// nodes, one hour, one worker per CPU.
func DefaultDeepConfig() DeepConfig {
	return DeepConfig{
		MaxNodes:          10_000_000,
		TimeLimit:         time.Hour,
		NumWorkers:        uint(runtime.NumCPU()),
		MaxDepth:          100,
		ExplorationWeight: 1.41,
		VirtualLoss:       3.0,
		ProgressInterval:  100_000,
	}
}

// QuickSearchConfig budgets one hundred thousand nodes and one minute.
func QuickSearchConfig() DeepConfig {
	config := DefaultDeepConfig()
	config.MaxNodes = 100_000
	config.TimeLimit = time.Minute
	//
	return config
}

// MediumSearchConfig budgets one million nodes and ten minutes.
func MediumSearchConfig() DeepConfig {
	config := DefaultDeepConfig()
	config.MaxNodes = 1_000_000
	config.TimeLimit = 10 * time.Minute
	//
	return config
}

// DeepSearchConfig budgets one hundred million nodes and one hour.
func DeepSearchConfig() DeepConfig {
	config := DefaultDeepConfig()
	config.MaxNodes = 100_000_000
	config.TimeLimit = time.Hour
	//
	return config
}

// MaximumSearchConfig budgets one billion nodes and a full day.
func MaximumSearchConfig() DeepConfig {
	config := DefaultDeepConfig()
	config.MaxNodes = 1_000_000_000
	config.TimeLimit = 24 * time.Hour
	//
	return config
}
