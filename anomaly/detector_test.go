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

package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// closeWindows records value once per window for id, n times.
func closeWindows(d Detector, id uint64, value float64, n int) {
	for i := 0; i < n; i++ {
		d.Add(id, value)
		d.MoveSlidingWindow()
	}
}

func TestPreciseSMAFlatHistory(t *testing.T) {
	d := NewPreciseSMA(3.0, 4)
	closeWindows(d, 7, 10.0, 4)

	// Flat history: the threshold acts as an absolute deviation bound.
	d.Add(7, 10.5)
	assert.False(t, d.IsAnomalyCandidate(7))
	d.Add(7, 4.0) // running window now 14.5, deviation 4.5 > 3
	assert.True(t, d.IsAnomalyCandidate(7))
}

func TestPreciseSMANoHistoryNeverFlags(t *testing.T) {
	d := NewPreciseSMA(0.0, 4)
	d.Add(1, 1e9)
	assert.False(t, d.IsAnomalyCandidate(1))
}

func TestPreciseSMASeriesAreIndependent(t *testing.T) {
	d := NewPreciseSMA(3.0, 4)
	closeWindows(d, 1, 10.0, 4)
	closeWindows(d, 2, 1000.0, 4)

	d.Add(1, 20.0)
	d.Add(2, 1000.5)
	assert.True(t, d.IsAnomalyCandidate(1))
	assert.False(t, d.IsAnomalyCandidate(2))
}

func TestPreciseSMAHistoryDepthBounded(t *testing.T) {
	d := NewPreciseSMA(3.0, 2).(*preciseDetector)
	closeWindows(d, 1, 5.0, 10)
	assert.Len(t, d.history[1], 2)
}

func TestPreciseSMASilentWindowCountsAsZero(t *testing.T) {
	d := NewPreciseSMA(0.5, 4).(*preciseDetector)
	d.Add(1, 10.0)
	d.MoveSlidingWindow()
	// No adds for id 1 this window.
	d.MoveSlidingWindow()
	assert.Equal(t, []float64{10.0, 0.0}, d.history[1])
}

func TestPreciseEWMAWeighsRecentWindows(t *testing.T) {
	d := NewPreciseEWMA(1.0, 3)
	// Rising history 1, 2, 3: the EWMA forecast sits above the plain
	// mean, so a value tracking the trend stays quiet.
	d.Add(1, 1.0)
	d.MoveSlidingWindow()
	d.Add(1, 2.0)
	d.MoveSlidingWindow()
	d.Add(1, 3.0)
	d.MoveSlidingWindow()

	d.Add(1, 2.5)
	assert.False(t, d.IsAnomalyCandidate(1))
	d.Add(1, 5.0) // running window 7.5, far off any forecast of 1..3
	assert.True(t, d.IsAnomalyCandidate(1))
}

func TestSketchEstimateNeverUndercounts(t *testing.T) {
	s := newCountMinSketch(3, 1024)
	s.add(1, 5.0)
	s.add(2, 7.0)
	s.add(1, 5.0)

	assert.GreaterOrEqual(t, s.estimate(1), 10.0)
	assert.GreaterOrEqual(t, s.estimate(2), 7.0)
	assert.Equal(t, 0.0, s.estimate(99999))
}

func TestApproxSMAMatchesPreciseOnSparseIds(t *testing.T) {
	precise := NewPreciseSMA(3.0, 4)
	approx := NewApproxSMA(3, 1<<10, 3.0, 4)

	for _, d := range []Detector{precise, approx} {
		closeWindows(d, 42, 10.0, 4)
		d.Add(42, 10.5)
		assert.False(t, d.IsAnomalyCandidate(42))
		d.Add(42, 4.0)
		assert.True(t, d.IsAnomalyCandidate(42))
	}
}

func TestApproxDetectorWindowDepthBounded(t *testing.T) {
	d := NewApproxEWMA(2, 1<<4, 1.0, 3).(*sketchDetector)
	for i := 0; i < 10; i++ {
		d.Add(1, 1.0)
		d.MoveSlidingWindow()
	}
	assert.Len(t, d.history, 3)
}
