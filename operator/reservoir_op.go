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
	"math/rand"
	"sort"

	"github.com/rulego/streampipe/types"
)

// Rand is the source of randomness for the reservoir. Injecting it keeps
// sampling decisions reproducible in tests.
type Rand interface {
	Uint32() uint32
}

type defaultRand struct {
	r *rand.Rand
}

func (d *defaultRand) Uint32() uint32 {
	return d.r.Uint32()
}

// NewDefaultRand returns a Rand seeded with the given value.
func NewDefaultRand(seed int64) Rand {
	return &defaultRand{r: rand.New(rand.NewSource(seed))}
}

// ReservoirOp keeps a uniform random sample of at most capacity elements
// between barriers (algorithm R: the n-th sample replaces a uniformly
// chosen slot with probability capacity/n). On barrier the buffer is
// stable-sorted by (timestamp, paramid), forwarded and cleared; the
// barrier itself is consumed, the flushed samples stand in its place.
type ReservoirOp struct {
	BaseOp
	capacity uint32
	seen     uint64
	buf      []types.Sample
	random   Rand
}

// NewReservoir wraps next with a reservoir of the given capacity.
func NewReservoir(capacity uint32, random Rand, next types.Node) *ReservoirOp {
	if random == nil {
		random = NewDefaultRand(int64(capacity) + 1)
	}
	return &ReservoirOp{
		BaseOp:   BaseOp{next: next},
		capacity: capacity,
		buf:      make([]types.Sample, 0, capacity),
		random:   random,
	}
}

func (o *ReservoirOp) flush() bool {
	sort.SliceStable(o.buf, func(i, j int) bool {
		if o.buf[i].Timestamp != o.buf[j].Timestamp {
			return o.buf[i].Timestamp < o.buf[j].Timestamp
		}
		return o.buf[i].ParamID < o.buf[j].ParamID
	})
	for _, sample := range o.buf {
		if !o.next.Put(sample) {
			o.buf = o.buf[:0]
			o.seen = 0
			return false
		}
	}
	o.buf = o.buf[:0]
	o.seen = 0
	return true
}

func (o *ReservoirOp) Put(sample types.Sample) bool {
	if sample.IsBarrier() {
		return o.flush()
	}
	o.seen++
	if uint64(len(o.buf)) < uint64(o.capacity) {
		o.buf = append(o.buf, sample)
	} else if o.capacity > 0 {
		ix := uint64(o.random.Uint32()) % o.seen
		if ix < uint64(o.capacity) {
			o.buf[ix] = sample
		}
	}
	return true
}

func (o *ReservoirOp) Complete() {
	o.flush()
	o.next.Complete()
}

func (o *ReservoirOp) Kind() types.NodeKind {
	return types.KindReservoir
}
