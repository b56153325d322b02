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

package types

// PayloadType is a bitset describing what a sample payload carries.
type PayloadType uint8

const (
	// Empty marks a barrier: the sample carries no value, only a timestamp.
	Empty PayloadType = 0
	// ParamIDBit is set when the series id is meaningful.
	ParamIDBit PayloadType = 1
	// FloatBit is set when Float64 holds a value.
	FloatBit PayloadType = 2
	// BlobBit is set when Blob holds opaque data.
	BlobBit PayloadType = 4
	// UrgentBit flags a sample as an anomaly candidate.
	UrgentBit PayloadType = 8
)

// Payload is the value part of a sample.
type Payload struct {
	Type    PayloadType
	Float64 float64
	Blob    []byte
}

// Sample is one record flowing through an operator chain. A sample whose
// payload type is Empty is a barrier: it signals a window boundary and
// carries only a timestamp.
type Sample struct {
	ParamID   uint64
	Timestamp uint64
	Payload   Payload
}

// NewBarrier builds a barrier stamped with ts.
func NewBarrier(ts uint64) Sample {
	return Sample{Timestamp: ts}
}

// NewFloatSample builds a float-valued sample for the given series.
func NewFloatSample(id, ts uint64, value float64) Sample {
	return Sample{
		ParamID:   id,
		Timestamp: ts,
		Payload:   Payload{Type: ParamIDBit | FloatBit, Float64: value},
	}
}

// IsBarrier reports whether the sample is a window boundary marker.
// An empty payload means barrier regardless of any other field.
func (s Sample) IsBarrier() bool {
	return s.Payload.Type == Empty
}

// HasFloat reports whether the payload carries a float value.
func (s Sample) HasFloat() bool {
	return s.Payload.Type&FloatBit != 0
}

// IsUrgent reports whether the sample was flagged as an anomaly candidate.
func (s Sample) IsUrgent() bool {
	return s.Payload.Type&UrgentBit != 0
}
