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

// Package collector provides terminal sinks for query chains.
package collector

import (
	"github.com/rulego/streampipe/types"
)

// Collector is a recording sink. It keeps every sample and barrier in
// arrival order and remembers completion and error signals, which makes it
// the natural terminal node for embedders that want the full result set
// and for tests that assert on chain traces.
type Collector struct {
	trace     []types.Sample
	completed bool
	err       error
}

// NewCollector creates an empty recording sink.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Put(sample types.Sample) bool {
	if c.err != nil || c.completed {
		return false
	}
	c.trace = append(c.trace, sample)
	return true
}

func (c *Collector) Complete() {
	c.completed = true
}

func (c *Collector) SetError(err error) {
	c.err = err
}

func (c *Collector) Kind() types.NodeKind {
	return types.KindSink
}

// Trace returns everything received so far, barriers included, in order.
func (c *Collector) Trace() []types.Sample {
	return c.trace
}

// Samples returns the received non-barrier samples in order.
func (c *Collector) Samples() []types.Sample {
	var out []types.Sample
	for _, s := range c.trace {
		if !s.IsBarrier() {
			out = append(out, s)
		}
	}
	return out
}

// Barriers returns the received barriers in order.
func (c *Collector) Barriers() []types.Sample {
	var out []types.Sample
	for _, s := range c.trace {
		if s.IsBarrier() {
			out = append(out, s)
		}
	}
	return out
}

// Completed reports whether Complete has been called.
func (c *Collector) Completed() bool {
	return c.completed
}

// Err returns the error delivered by SetError, if any.
func (c *Collector) Err() error {
	return c.err
}

// Reset clears the recorded state so the sink can be reused.
func (c *Collector) Reset() {
	c.trace = nil
	c.completed = false
	c.err = nil
}

// SinkFunc adapts a function to a terminal Node. Completion and errors are
// recorded on the wrapper rather than delivered through the callback.
type SinkFunc struct {
	fn        func(types.Sample) bool
	completed bool
	err       error
}

// NewSinkFunc wraps fn as a terminal node. fn's return value is the
// back-pressure signal.
func NewSinkFunc(fn func(types.Sample) bool) *SinkFunc {
	return &SinkFunc{fn: fn}
}

func (s *SinkFunc) Put(sample types.Sample) bool {
	if s.err != nil || s.completed {
		return false
	}
	return s.fn(sample)
}

func (s *SinkFunc) Complete() {
	s.completed = true
}

func (s *SinkFunc) SetError(err error) {
	s.err = err
}

func (s *SinkFunc) Kind() types.NodeKind {
	return types.KindSink
}

// Err returns the error delivered by SetError, if any.
func (s *SinkFunc) Err() error {
	return s.err
}

// Completed reports whether Complete has been called.
func (s *SinkFunc) Completed() bool {
	return s.completed
}
