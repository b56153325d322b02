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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/streampipe/collector"
	"github.com/rulego/streampipe/types"
)

func TestFilterByIDDenyList(t *testing.T) {
	sink := collector.NewCollector()
	deny := map[uint64]bool{7: true}
	op := NewFilterByID(func(id uint64) bool { return !deny[id] }, sink)

	for i, id := range []uint64{1, 7, 7, 2} {
		ok := op.Put(types.NewFloatSample(id, uint64(i), 1.0))
		assert.True(t, ok)
	}
	assert.True(t, op.Put(types.NewBarrier(100)))
	assert.True(t, op.Put(types.NewFloatSample(7, 5, 1.0)))

	var ids []uint64
	for _, s := range sink.Samples() {
		ids = append(ids, s.ParamID)
	}
	assert.Equal(t, []uint64{1, 2}, ids)
	require.Len(t, sink.Barriers(), 1)
	assert.Equal(t, uint64(100), sink.Barriers()[0].Timestamp)
}

func TestFilterByIDPassesAllBarriers(t *testing.T) {
	sink := collector.NewCollector()
	op := NewFilterByID(func(id uint64) bool { return false }, sink)

	for ts := uint64(10); ts <= 30; ts += 10 {
		assert.True(t, op.Put(types.NewBarrier(ts)))
	}
	assert.Empty(t, sink.Samples())
	assert.Len(t, sink.Barriers(), 3)
}

// Applying the same predicate twice must match applying it once.
func TestFilterByIDIdempotent(t *testing.T) {
	pred := func(id uint64) bool { return id%2 == 0 }
	input := []types.Sample{
		types.NewFloatSample(1, 1, 1.0),
		types.NewFloatSample(2, 2, 2.0),
		types.NewBarrier(10),
		types.NewFloatSample(4, 11, 4.0),
		types.NewFloatSample(5, 12, 5.0),
	}

	single := collector.NewCollector()
	one := NewFilterByID(pred, single)
	double := collector.NewCollector()
	two := NewFilterByID(pred, NewFilterByID(pred, double))

	for _, s := range input {
		one.Put(s)
		two.Put(s)
	}
	assert.Equal(t, single.Trace(), double.Trace())
}

func TestFilterByIDRoundTrip(t *testing.T) {
	allowed := map[uint64]bool{2: true, 3: true}
	sink := collector.NewCollector()
	op := NewFilterByID(func(id uint64) bool { return allowed[id] }, sink)

	input := []types.Sample{
		types.NewFloatSample(1, 1, 1.0),
		types.NewFloatSample(2, 2, 2.0),
		types.NewBarrier(10),
		types.NewFloatSample(3, 11, 3.0),
		types.NewFloatSample(2, 12, 4.0),
	}
	for _, s := range input {
		assert.True(t, op.Put(s))
	}

	// Exactly the allowed samples in input order, plus every barrier.
	want := []types.Sample{input[1], input[2], input[3], input[4]}
	assert.Equal(t, want, sink.Trace())
}

func TestFilterForwardsCompleteAndError(t *testing.T) {
	sink := collector.NewCollector()
	op := NewFilterByID(func(id uint64) bool { return true }, sink)
	op.Complete()
	assert.True(t, sink.Completed())

	sink2 := collector.NewCollector()
	op2 := NewFilterByID(func(id uint64) bool { return true }, sink2)
	op2.SetError(types.ErrNegativeAnomalyInput)
	assert.ErrorIs(t, sink2.Err(), types.ErrNegativeAnomalyInput)
}
