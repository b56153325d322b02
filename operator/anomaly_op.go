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
	"github.com/rulego/streampipe/anomaly"
	"github.com/rulego/streampipe/types"
)

// AnomalyOp feeds non-negative float samples into a detector and forwards
// only the ones classified as candidates, flagged urgent. Barriers advance
// the detector's window and pass through. A negative float is a terminal
// failure: the error propagates downstream and every later Put returns
// false.
type AnomalyOp struct {
	BaseOp
	detector anomaly.Detector
	stopped  bool
}

// NewAnomalyDetector wraps next with the given detector.
func NewAnomalyDetector(detector anomaly.Detector, next types.Node) *AnomalyOp {
	return &AnomalyOp{BaseOp: BaseOp{next: next}, detector: detector}
}

func (o *AnomalyOp) Put(sample types.Sample) bool {
	if o.stopped {
		return false
	}
	if sample.IsBarrier() {
		o.detector.MoveSlidingWindow()
		return o.next.Put(sample)
	}
	if !sample.HasFloat() {
		// Blobs and id-only samples are ignored.
		return true
	}
	if sample.Payload.Float64 < 0 {
		o.stopped = true
		o.SetError(types.ErrNegativeAnomalyInput)
		return false
	}
	o.detector.Add(sample.ParamID, sample.Payload.Float64)
	if o.detector.IsAnomalyCandidate(sample.ParamID) {
		urgent := sample
		urgent.Payload.Type |= types.UrgentBit
		return o.next.Put(urgent)
	}
	return true
}

func (o *AnomalyOp) Complete() {
	o.next.Complete()
}

func (o *AnomalyOp) Kind() types.NodeKind {
	return types.KindAnomalyDetector
}
