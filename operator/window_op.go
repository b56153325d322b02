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
	"github.com/rulego/streampipe/types"
)

// accumulator is the per-series state of a sliding-window operator.
type accumulator interface {
	add(value float64)
	ready() bool
	value() float64
	reset()
}

// SlidingWindowOp aggregates float samples per series between barriers.
// On a barrier stamped t every ready series emits one float sample at t
// and resets; then the barrier is forwarded. The emission order across
// series is unspecified. Completion flushes the pending window at the
// last observed timestamp before forwarding the signal.
type SlidingWindowOp struct {
	BaseOp
	kind     types.NodeKind
	newAcc   func() accumulator
	counters map[uint64]accumulator
	lastTS   uint64
}

// NewMovingAverage wraps next with a per-series windowed mean.
func NewMovingAverage(next types.Node) *SlidingWindowOp {
	return &SlidingWindowOp{
		BaseOp:   BaseOp{next: next},
		kind:     types.KindMovingAverage,
		newAcc:   func() accumulator { return &meanAccumulator{} },
		counters: make(map[uint64]accumulator),
	}
}

// NewMovingMedian wraps next with a per-series windowed median.
func NewMovingMedian(next types.Node) *SlidingWindowOp {
	return &SlidingWindowOp{
		BaseOp:   BaseOp{next: next},
		kind:     types.KindMovingMedian,
		newAcc:   func() accumulator { return &medianAccumulator{} },
		counters: make(map[uint64]accumulator),
	}
}

func (o *SlidingWindowOp) emit(ts uint64) bool {
	for id, acc := range o.counters {
		if !acc.ready() {
			continue
		}
		sample := types.NewFloatSample(id, ts, acc.value())
		acc.reset()
		if !o.next.Put(sample) {
			return false
		}
	}
	return true
}

func (o *SlidingWindowOp) Put(sample types.Sample) bool {
	o.lastTS = sample.Timestamp
	if sample.IsBarrier() {
		if !o.emit(sample.Timestamp) {
			return false
		}
		return o.next.Put(sample)
	}
	// Blobs never reach the accumulators.
	if !sample.HasFloat() {
		return true
	}
	acc, ok := o.counters[sample.ParamID]
	if !ok {
		acc = o.newAcc()
		o.counters[sample.ParamID] = acc
	}
	acc.add(sample.Payload.Float64)
	return true
}

func (o *SlidingWindowOp) Complete() {
	o.emit(o.lastTS)
	o.next.Complete()
}

func (o *SlidingWindowOp) Kind() types.NodeKind {
	return o.kind
}

// meanAccumulator tracks (sum, count).
type meanAccumulator struct {
	sum   float64
	count uint64
}

func (a *meanAccumulator) add(value float64) {
	a.sum += value
	a.count++
}

func (a *meanAccumulator) ready() bool {
	return a.count > 0
}

func (a *meanAccumulator) value() float64 {
	return a.sum / float64(a.count)
}

func (a *meanAccumulator) reset() {
	a.sum = 0
	a.count = 0
}

// medianAccumulator buffers the window's values unsorted and selects the
// middle element (0-based index n/2) on demand. Ties resolve by position.
type medianAccumulator struct {
	buf []float64
}

func (a *medianAccumulator) add(value float64) {
	a.buf = append(a.buf, value)
}

func (a *medianAccumulator) ready() bool {
	return len(a.buf) > 0
}

func (a *medianAccumulator) value() float64 {
	if len(a.buf) < 2 {
		return a.buf[0]
	}
	return nthElement(a.buf, len(a.buf)/2)
}

func (a *medianAccumulator) reset() {
	a.buf = nil
}

// nthElement partially selects buf so that buf[n] is the value that would
// land at index n in sorted order, with everything left of n no larger
// than it. Average linear time.
func nthElement(buf []float64, n int) float64 {
	lo, hi := 0, len(buf)-1
	for lo < hi {
		pivot := buf[(lo+hi)/2]
		i, j := lo, hi
		for i <= j {
			for buf[i] < pivot {
				i++
			}
			for buf[j] > pivot {
				j--
			}
			if i <= j {
				buf[i], buf[j] = buf[j], buf[i]
				i++
				j--
			}
		}
		if n <= j {
			hi = j
		} else if n >= i {
			lo = i
		} else {
			break
		}
	}
	return buf[n]
}
