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

// fakeDetector classifies by a fixed value threshold and counts window
// moves.
type fakeDetector struct {
	last      map[uint64]float64
	threshold float64
	moves     int
}

func newFakeDetector(threshold float64) *fakeDetector {
	return &fakeDetector{last: map[uint64]float64{}, threshold: threshold}
}

func (d *fakeDetector) Add(id uint64, value float64) {
	d.last[id] = value
}

func (d *fakeDetector) IsAnomalyCandidate(id uint64) bool {
	return d.last[id] > d.threshold
}

func (d *fakeDetector) MoveSlidingWindow() {
	d.moves++
}

func TestAnomalyForwardsCandidatesUrgent(t *testing.T) {
	sink := collector.NewCollector()
	op := NewAnomalyDetector(newFakeDetector(10.0), sink)

	assert.True(t, op.Put(types.NewFloatSample(1, 1, 5.0)))
	assert.True(t, op.Put(types.NewFloatSample(1, 2, 50.0)))

	samples := sink.Samples()
	require.Len(t, samples, 1)
	assert.Equal(t, 50.0, samples[0].Payload.Float64)
	assert.True(t, samples[0].IsUrgent())
	assert.True(t, samples[0].HasFloat())
}

func TestAnomalyBarrierMovesWindowAndForwards(t *testing.T) {
	sink := collector.NewCollector()
	detector := newFakeDetector(10.0)
	op := NewAnomalyDetector(detector, sink)

	assert.True(t, op.Put(types.NewBarrier(10)))
	assert.True(t, op.Put(types.NewBarrier(20)))
	assert.Equal(t, 2, detector.moves)
	assert.Len(t, sink.Barriers(), 2)
}

func TestAnomalyIgnoresNonFloat(t *testing.T) {
	sink := collector.NewCollector()
	detector := newFakeDetector(0.0)
	op := NewAnomalyDetector(detector, sink)

	blob := types.Sample{
		ParamID:   1,
		Timestamp: 1,
		Payload:   types.Payload{Type: types.ParamIDBit | types.BlobBit, Blob: []byte("x")},
	}
	assert.True(t, op.Put(blob))
	assert.Empty(t, detector.last)
	assert.Empty(t, sink.Trace())
}

func TestAnomalyNegativeInputFails(t *testing.T) {
	sink := collector.NewCollector()
	op := NewAnomalyDetector(newFakeDetector(10.0), sink)

	assert.False(t, op.Put(types.NewFloatSample(1, 1, -1.0)))
	assert.ErrorIs(t, sink.Err(), types.ErrNegativeAnomalyInput)

	// The operator stays stopped.
	assert.False(t, op.Put(types.NewFloatSample(1, 2, 1.0)))
	assert.False(t, op.Put(types.NewBarrier(10)))
	assert.Empty(t, sink.Samples())
}
