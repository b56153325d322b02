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

package operator

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/rulego/streampipe/types"
)

type ssCounter struct {
	count float64
	error float64
}

// SpaceSaverOp is the Space-Saving sketch over series ids. The counter
// table never exceeds M = ceil(1/error) entries; when a new id arrives at
// a full table the entry with the smallest count is evicted and its count
// becomes the newcomer's error. The unweighted form counts occurrences,
// the weighted form sums float values and drops non-float samples.
//
// A barrier triggers count-and-emit: every entry whose count-error exceeds
// N*portion is emitted as a float sample valued at its count, sorted by
// count descending, stamped with the flush timestamp. The consuming
// barrier is then forwarded so downstream windowed operators stay aligned.
type SpaceSaverOp struct {
	BaseOp
	weighted bool
	portion  float64
	m        int
	n        float64
	counters map[uint64]ssCounter
	lastTS   uint64
}

func newSpaceSaver(errRate, portion float64, weighted bool, next types.Node) (*SpaceSaverOp, error) {
	if errRate <= 0 || errRate > 1 {
		return nil, errors.Wrapf(types.ErrInvalidSamplerSpec, "error %v out of (0,1]", errRate)
	}
	if portion < 0 || portion > 1 {
		return nil, errors.Wrapf(types.ErrInvalidSamplerSpec, "portion %v out of [0,1]", portion)
	}
	return &SpaceSaverOp{
		BaseOp:   BaseOp{next: next},
		weighted: weighted,
		portion:  portion,
		m:        int(math.Ceil(1.0 / errRate)),
		counters: make(map[uint64]ssCounter),
	}, nil
}

// NewFrequentItems creates the unweighted variant: one occurrence, one
// unit of weight.
func NewFrequentItems(errRate, portion float64, next types.Node) (*SpaceSaverOp, error) {
	return newSpaceSaver(errRate, portion, false, next)
}

// NewHeavyHitters creates the weighted variant: the sample's float value
// is the weight.
func NewHeavyHitters(errRate, portion float64, next types.Node) (*SpaceSaverOp, error) {
	return newSpaceSaver(errRate, portion, true, next)
}

// Capacity returns M, the counter table bound.
func (o *SpaceSaverOp) Capacity() int {
	return o.m
}

// evict removes the weakest entry and returns its count. Ties on count
// break toward the smaller estimate, then the smaller id, so eviction is
// deterministic.
func (o *SpaceSaverOp) evict() float64 {
	var victim uint64
	minCount := math.Inf(1)
	minEstimate := math.Inf(1)
	for id, c := range o.counters {
		estimate := c.count - c.error
		if c.count < minCount ||
			(c.count == minCount && estimate < minEstimate) ||
			(c.count == minCount && estimate == minEstimate && id < victim) {
			victim = id
			minCount = c.count
			minEstimate = estimate
		}
	}
	delete(o.counters, victim)
	return minCount
}

func (o *SpaceSaverOp) flush(ts uint64) bool {
	support := o.n * o.portion
	samples := make([]types.Sample, 0, len(o.counters))
	for id, c := range o.counters {
		if c.count-c.error > support {
			s := types.NewFloatSample(id, ts, c.count)
			samples = append(samples, s)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Payload.Float64 != samples[j].Payload.Float64 {
			return samples[i].Payload.Float64 > samples[j].Payload.Float64
		}
		return samples[i].ParamID < samples[j].ParamID
	})
	o.counters = make(map[uint64]ssCounter)
	o.n = 0
	for _, s := range samples {
		if !o.next.Put(s) {
			return false
		}
	}
	return true
}

func (o *SpaceSaverOp) Put(sample types.Sample) bool {
	if sample.IsBarrier() {
		if !o.flush(sample.Timestamp) {
			return false
		}
		return o.next.Put(sample)
	}
	o.lastTS = sample.Timestamp
	weight := 1.0
	if o.weighted {
		if !sample.HasFloat() {
			return true
		}
		weight = sample.Payload.Float64
	}
	id := sample.ParamID
	if c, ok := o.counters[id]; ok {
		c.count += weight
		o.counters[id] = c
	} else {
		count := weight
		errEstimate := 0.0
		if len(o.counters) == o.m {
			min := o.evict()
			count += min
			errEstimate = min
		}
		o.counters[id] = ssCounter{count: count, error: errEstimate}
	}
	o.n += weight
	return true
}

func (o *SpaceSaverOp) Complete() {
	o.flush(o.lastTS)
	o.next.Complete()
}

func (o *SpaceSaverOp) Kind() types.NodeKind {
	return types.KindSpaceSaver
}
