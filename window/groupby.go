/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package window rewrites a raw sample stream into a windowed one by
// injecting step-aligned barriers. It is the only producer of barriers
// into an operator chain.
package window

import (
	"github.com/rulego/streampipe/types"
)

// GroupByTime drives barrier emission on a fixed time step. The current
// window is the half-open interval [lowerbound, upperbound) with
// upperbound-lowerbound == step and lowerbound aligned to a step multiple.
// A zero step makes the driver a pass-through.
type GroupByTime struct {
	step       uint64
	firstHit   bool
	lowerbound uint64
	upperbound uint64
}

// NewGroupByTime creates a driver emitting barriers every step time units.
func NewGroupByTime(step uint64) *GroupByTime {
	return &GroupByTime{
		step:     step,
		firstHit: true,
	}
}

// Step returns the configured window step.
func (g *GroupByTime) Step() uint64 {
	return g.step
}

// Bounds returns the current [lowerbound, upperbound) window. Both are
// zero until the first sample arrives.
func (g *GroupByTime) Bounds() (uint64, uint64) {
	return g.lowerbound, g.upperbound
}

// Put feeds one sample into next, preceded by as many barriers as the
// sample's timestamp requires. Gaps wider than one step emit one barrier
// per crossed window so every boundary is stamped with its own upperbound.
// Returns false as soon as next does.
func (g *GroupByTime) Put(sample types.Sample, next types.Node) bool {
	if g.step == 0 {
		return next.Put(sample)
	}
	ts := sample.Timestamp
	if g.firstHit {
		g.firstHit = false
		aligned := ts / g.step * g.step
		g.lowerbound = aligned
		g.upperbound = aligned + g.step
	}
	if ts >= g.upperbound {
		// Forward scan.
		for ts >= g.upperbound {
			if !next.Put(types.NewBarrier(g.upperbound)) {
				return false
			}
			g.lowerbound += g.step
			g.upperbound += g.step
		}
	} else {
		// Backward scan.
		for ts < g.lowerbound {
			if !next.Put(types.NewBarrier(g.upperbound)) {
				return false
			}
			g.lowerbound -= g.step
			g.upperbound -= g.step
		}
	}
	return next.Put(sample)
}
