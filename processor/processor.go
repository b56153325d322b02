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

// Package processor exposes the query facades driven by the storage scan:
// a scan query pushing samples through the window driver into an operator
// chain, and a metadata query replaying a list of series ids.
package processor

import (
	"math"

	"github.com/rulego/streampipe/types"
	"github.com/rulego/streampipe/window"
)

// Direction tells the scan layer which way to iterate.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Processor is the contract between the storage scan and a query.
type Processor interface {
	// Start prepares the query; a false return aborts the scan.
	Start() bool
	// Put feeds one sample; a false return stops the scan promptly, after
	// which the driver must call Stop or SetError to release state.
	Put(sample types.Sample) bool
	// Stop completes the chain. Called exactly once at end of scan.
	Stop()
	// SetError aborts the chain with a terminal failure.
	SetError(err error)
	// Lowerbound is the inclusive scan start.
	Lowerbound() uint64
	// Upperbound is the scan end.
	Upperbound() uint64
	// Direction reports scan order.
	Direction() Direction
}

// ScanProcessor drives a time-range scan through the group-by-time window
// driver into the chain head.
type ScanProcessor struct {
	lowerbound uint64
	upperbound uint64
	direction  Direction
	metrics    []string
	groupBy    *window.GroupByTime
	head       types.Node
}

// NewScanProcessor builds a scan query over [begin, end]. begin > end
// requests backward iteration. The metric names ride along for metadata
// purposes only. groupBy may be nil for an unwindowed scan.
func NewScanProcessor(head types.Node, metrics []string, begin, end uint64, groupBy *window.GroupByTime) *ScanProcessor {
	direction := Forward
	if begin > end {
		direction = Backward
	}
	if groupBy == nil {
		groupBy = window.NewGroupByTime(0)
	}
	return &ScanProcessor{
		lowerbound: min(begin, end),
		upperbound: max(begin, end),
		direction:  direction,
		metrics:    metrics,
		groupBy:    groupBy,
		head:       head,
	}
}

func (p *ScanProcessor) Start() bool {
	return true
}

func (p *ScanProcessor) Put(sample types.Sample) bool {
	return p.groupBy.Put(sample, p.head)
}

func (p *ScanProcessor) Stop() {
	p.head.Complete()
}

func (p *ScanProcessor) SetError(err error) {
	p.head.SetError(err)
}

func (p *ScanProcessor) Lowerbound() uint64 {
	return p.lowerbound
}

func (p *ScanProcessor) Upperbound() uint64 {
	return p.upperbound
}

func (p *ScanProcessor) Direction() Direction {
	return p.direction
}

// Metrics returns the metric names carried by the query.
func (p *ScanProcessor) Metrics() []string {
	return p.metrics
}

// MetadataProcessor replays a fixed list of series ids into the chain.
type MetadataProcessor struct {
	ids  []uint64
	head types.Node
}

// NewMetadataProcessor builds a metadata query over the given ids.
func NewMetadataProcessor(ids []uint64, head types.Node) *MetadataProcessor {
	return &MetadataProcessor{ids: ids, head: head}
}

// Start emits one id-only sample per series, stopping early if the chain
// declines one.
func (p *MetadataProcessor) Start() bool {
	for _, id := range p.ids {
		s := types.Sample{
			ParamID: id,
			Payload: types.Payload{Type: types.ParamIDBit},
		}
		if !p.head.Put(s) {
			return false
		}
	}
	return true
}

// Put is inert: all samples are produced by Start.
func (p *MetadataProcessor) Put(sample types.Sample) bool {
	return false
}

func (p *MetadataProcessor) Stop() {
	p.head.Complete()
}

func (p *MetadataProcessor) SetError(err error) {
	p.head.SetError(err)
}

func (p *MetadataProcessor) Lowerbound() uint64 {
	return math.MaxUint64
}

func (p *MetadataProcessor) Upperbound() uint64 {
	return math.MaxUint64
}

func (p *MetadataProcessor) Direction() Direction {
	return Forward
}
