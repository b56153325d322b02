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

// Package anomaly implements the forecasting detectors behind the anomaly
// operator. A detector accumulates per-series values for the current
// window, keeps a depth-bounded history of closed windows, and classifies
// the running window against a forecast over that history. The precise
// detectors track every series exactly; the approximate ones store each
// window in a count-min sketch so memory stays bounded by the sketch
// dimensions instead of the series cardinality.
package anomaly

import (
	"github.com/montanaflynn/stats"
)

// Detector records values and classifies the most recent addition.
type Detector interface {
	// Add records a value for the series' current window.
	Add(id uint64, value float64)
	// IsAnomalyCandidate classifies the series' running window against
	// the forecast built from closed windows.
	IsAnomalyCandidate(id uint64) bool
	// MoveSlidingWindow closes the current window on a barrier.
	MoveSlidingWindow()
}

// forecastFunc folds a window history (oldest first) into an expected value.
type forecastFunc func(history []float64) float64

func smaForecast(history []float64) float64 {
	mean, err := stats.Mean(stats.Float64Data(history))
	if err != nil {
		return 0
	}
	return mean
}

// ewmaForecast weights newer windows heavier, alpha = 2/(n+1) where n is
// the observed history length (at most the detector depth).
func ewmaForecast(history []float64) float64 {
	alpha := 2.0 / (float64(len(history)) + 1.0)
	forecast := history[0]
	for _, v := range history[1:] {
		forecast = alpha*v + (1-alpha)*forecast
	}
	return forecast
}

// classify applies the threshold rule shared by all detectors: a running
// value is a candidate when it deviates from the forecast by more than
// threshold times the history's spread. A flat history falls back to a
// unit spread so the threshold acts as an absolute deviation bound.
func classify(actual float64, history []float64, forecast forecastFunc, threshold float64) bool {
	if len(history) == 0 {
		return false
	}
	predicted := forecast(history)
	spread, err := stats.StandardDeviation(stats.Float64Data(history))
	if err != nil || spread == 0 {
		spread = 1
	}
	deviation := actual - predicted
	if deviation < 0 {
		deviation = -deviation
	}
	return deviation > threshold*spread
}

// preciseDetector tracks exact per-series window sums.
type preciseDetector struct {
	threshold float64
	depth     uint32
	forecast  forecastFunc
	current   map[uint64]float64
	history   map[uint64][]float64
}

// NewPreciseSMA creates an exact detector forecasting with a simple
// moving average over depth windows.
func NewPreciseSMA(threshold float64, depth uint32) Detector {
	return newPrecise(threshold, depth, smaForecast)
}

// NewPreciseEWMA creates an exact detector forecasting with an
// exponentially weighted moving average over depth windows.
func NewPreciseEWMA(threshold float64, depth uint32) Detector {
	return newPrecise(threshold, depth, ewmaForecast)
}

func newPrecise(threshold float64, depth uint32, forecast forecastFunc) Detector {
	return &preciseDetector{
		threshold: threshold,
		depth:     depth,
		forecast:  forecast,
		current:   make(map[uint64]float64),
		history:   make(map[uint64][]float64),
	}
}

func (d *preciseDetector) Add(id uint64, value float64) {
	d.current[id] += value
}

func (d *preciseDetector) IsAnomalyCandidate(id uint64) bool {
	return classify(d.current[id], d.history[id], d.forecast, d.threshold)
}

func (d *preciseDetector) MoveSlidingWindow() {
	// Every known series closes its window; series silent in this window
	// contribute a zero so gaps count against the forecast.
	for id := range d.current {
		if _, ok := d.history[id]; !ok {
			d.history[id] = nil
		}
	}
	for id, h := range d.history {
		h = append(h, d.current[id])
		if uint32(len(h)) > d.depth {
			h = h[1:]
		}
		d.history[id] = h
	}
	d.current = make(map[uint64]float64)
}
