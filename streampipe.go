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

package streampipe

import (
	"github.com/rulego/streampipe/builder"
	"github.com/rulego/streampipe/logger"
	"github.com/rulego/streampipe/processor"
	"github.com/rulego/streampipe/types"
	"github.com/rulego/streampipe/window"
)

// Streampipe assembles query chains and processors.
type Streampipe struct {
	logger logger.Logger
}

// New creates a facade with the given options applied.
func New(opts ...Option) *Streampipe {
	s := &Streampipe{
		logger: logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanQueryConfig describes a time-range query: the sampler stages applied
// head to tail, an optional series filter in front of them, the scan
// range, and the window step (0 disables barrier injection).
type ScanQueryConfig struct {
	Samplers []types.SamplerConfig
	// FilterIDs keeps only the listed series; empty means no filter.
	FilterIDs []uint64
	// FilterPredicate keeps series matching the expression, e.g.
	// "id % 2 == 0". Ignored when FilterIDs is set.
	FilterPredicate string
	Metrics         []string
	Begin           uint64
	End             uint64
	Step            uint64
}

// buildChain wraps sink with the sampler stages; the first config ends up
// as the head seen by the scan.
func (s *Streampipe) buildChain(samplers []types.SamplerConfig, sink types.Node) (types.Node, error) {
	head := sink
	for i := len(samplers) - 1; i >= 0; i-- {
		var err error
		head, err = builder.MakeSampler(samplers[i], head, s.logger)
		if err != nil {
			return nil, err
		}
	}
	return head, nil
}

// BuildScanQuery builds the operator chain ending in sink and returns the
// scan processor driving it.
func (s *Streampipe) BuildScanQuery(cfg ScanQueryConfig, sink types.Node) (*processor.ScanProcessor, error) {
	head, err := s.buildChain(cfg.Samplers, sink)
	if err != nil {
		return nil, err
	}
	if len(cfg.FilterIDs) > 0 {
		head = builder.MakeFilterByIDList(cfg.FilterIDs, head, s.logger)
	} else if cfg.FilterPredicate != "" {
		head, err = builder.MakeFilterByExpr(cfg.FilterPredicate, head, s.logger)
		if err != nil {
			return nil, err
		}
	}
	groupBy := window.NewGroupByTime(cfg.Step)
	return processor.NewScanProcessor(head, cfg.Metrics, cfg.Begin, cfg.End, groupBy), nil
}

// BuildMetadataQuery builds a chain ending in sink and returns the
// metadata processor replaying ids into it.
func (s *Streampipe) BuildMetadataQuery(ids []uint64, samplers []types.SamplerConfig, sink types.Node) (*processor.MetadataProcessor, error) {
	head, err := s.buildChain(samplers, sink)
	if err != nil {
		return nil, err
	}
	return processor.NewMetadataProcessor(ids, head), nil
}
