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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// countMinSketch is a hashes x width table of float counters; width must
// be a power of two. Estimates never undercount.
type countMinSketch struct {
	width uint32
	rows  [][]float64
}

func newCountMinSketch(hashes, width uint32) *countMinSketch {
	rows := make([][]float64, hashes)
	for i := range rows {
		rows[i] = make([]float64, width)
	}
	return &countMinSketch{width: width, rows: rows}
}

// cell hashes id into row's bucket. Each row gets its own hash stream by
// mixing the row index into the hashed bytes.
func (s *countMinSketch) cell(row int, id uint64) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(row)+1)
	binary.LittleEndian.PutUint64(buf[8:], id)
	return uint32(xxhash.Sum64(buf[:])) & (s.width - 1)
}

func (s *countMinSketch) add(id uint64, value float64) {
	for i := range s.rows {
		s.rows[i][s.cell(i, id)] += value
	}
}

func (s *countMinSketch) estimate(id uint64) float64 {
	min := s.rows[0][s.cell(0, id)]
	for i := 1; i < len(s.rows); i++ {
		if v := s.rows[i][s.cell(i, id)]; v < min {
			min = v
		}
	}
	return min
}

// sketchDetector stores each window in a count-min sketch, trading exact
// per-series state for memory bounded by hashes x width.
type sketchDetector struct {
	threshold float64
	depth     uint32
	hashes    uint32
	width     uint32
	forecast  forecastFunc
	current   *countMinSketch
	history   []*countMinSketch
}

// NewApproxSMA creates a sketch-backed detector with a simple moving
// average forecast. width must be a power of two.
func NewApproxSMA(hashes, width uint32, threshold float64, depth uint32) Detector {
	return newSketch(hashes, width, threshold, depth, smaForecast)
}

// NewApproxEWMA creates a sketch-backed detector with an exponentially
// weighted moving average forecast. width must be a power of two.
func NewApproxEWMA(hashes, width uint32, threshold float64, depth uint32) Detector {
	return newSketch(hashes, width, threshold, depth, ewmaForecast)
}

func newSketch(hashes, width uint32, threshold float64, depth uint32, forecast forecastFunc) Detector {
	return &sketchDetector{
		threshold: threshold,
		depth:     depth,
		hashes:    hashes,
		width:     width,
		forecast:  forecast,
		current:   newCountMinSketch(hashes, width),
	}
}

func (d *sketchDetector) Add(id uint64, value float64) {
	d.current.add(id, value)
}

func (d *sketchDetector) IsAnomalyCandidate(id uint64) bool {
	history := make([]float64, 0, len(d.history))
	for _, sk := range d.history {
		history = append(history, sk.estimate(id))
	}
	return classify(d.current.estimate(id), history, d.forecast, d.threshold)
}

func (d *sketchDetector) MoveSlidingWindow() {
	d.history = append(d.history, d.current)
	if uint32(len(d.history)) > d.depth {
		d.history = d.history[1:]
	}
	d.current = newCountMinSketch(d.hashes, d.width)
}
