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

// Package builder constructs operator chains from sampler configuration
// trees. Construction errors are raised to the caller and never enter the
// chain.
package builder

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/rulego/streampipe/anomaly"
	"github.com/rulego/streampipe/condition"
	"github.com/rulego/streampipe/logger"
	"github.com/rulego/streampipe/operator"
	"github.com/rulego/streampipe/types"
)

// Sampler names recognized by MakeSampler.
const (
	NameReservoir       = "reservoir"
	NameMovingAverage   = "moving-average"
	NameMovingMedian    = "moving-median"
	NameFrequentItems   = "frequent-items"
	NameHeavyHitters    = "heavy-hitters"
	NameAnomalyDetector = "anomaly-detector"
	NameFilter          = "filter"
)

const (
	defaultSketchBits   = uint32(10)
	defaultSketchHashes = uint32(3)
)

func field(cfg types.SamplerConfig, key string) (any, error) {
	v, ok := cfg.Field(key)
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidSamplerSpec, "missing %q", key)
	}
	return v, nil
}

func floatField(cfg types.SamplerConfig, key string) (float64, error) {
	v, err := field(cfg, key)
	if err != nil {
		return 0, err
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Wrapf(types.ErrInvalidSamplerSpec, "%q: valid number expected, got %v", key, v)
	}
	return f, nil
}

func uint32Field(cfg types.SamplerConfig, key string) (uint32, error) {
	v, err := field(cfg, key)
	if err != nil {
		return 0, err
	}
	u, err := cast.ToUint32E(v)
	if err != nil {
		return 0, errors.Wrapf(types.ErrInvalidSamplerSpec, "%q: valid integer expected, got %v", key, v)
	}
	return u, nil
}

func uint32FieldDefault(cfg types.SamplerConfig, key string, def uint32) (uint32, error) {
	if _, ok := cfg.Field(key); !ok {
		return def, nil
	}
	return uint32Field(cfg, key)
}

func stringField(cfg types.SamplerConfig, key string) (string, error) {
	v, err := field(cfg, key)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(types.ErrInvalidSamplerSpec, "%q: string expected, got %v", key, v)
	}
	return s, nil
}

func boolField(cfg types.SamplerConfig, key string) (bool, error) {
	v, err := field(cfg, key)
	if err != nil {
		return false, err
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, errors.Wrapf(types.ErrInvalidSamplerSpec, "%q: boolean expected, got %v", key, v)
	}
	return b, nil
}

func makeAnomalyDetector(cfg types.SamplerConfig, next types.Node, log logger.Logger) (types.Node, error) {
	threshold, err := floatField(cfg, "threshold")
	if err != nil {
		return nil, err
	}
	method, err := stringField(cfg, "method")
	if err != nil {
		return nil, err
	}
	approx, err := boolField(cfg, "approx")
	if err != nil {
		return nil, err
	}
	switch method {
	case "sma", "ewma":
	case "double-hw":
		return nil, errors.Wrap(types.ErrUnimplementedMethod, "double-hw")
	default:
		return nil, errors.Wrapf(types.ErrInvalidSamplerSpec, "unknown forecasting method %q", method)
	}
	depth, err := uint32Field(cfg, "window")
	if err != nil {
		return nil, err
	}

	var detector anomaly.Detector
	if approx {
		bits, err := uint32FieldDefault(cfg, "bits", defaultSketchBits)
		if err != nil {
			return nil, err
		}
		hashes, err := uint32FieldDefault(cfg, "hashes", defaultSketchHashes)
		if err != nil {
			return nil, err
		}
		width := uint32(1) << bits
		if method == "sma" {
			detector = anomaly.NewApproxSMA(hashes, width, threshold, depth)
		} else {
			detector = anomaly.NewApproxEWMA(hashes, width, threshold, depth)
		}
		log.Debug("creating approx %s anomaly detector node, %d x %d sketch", method, hashes, width)
	} else {
		if method == "sma" {
			detector = anomaly.NewPreciseSMA(threshold, depth)
		} else {
			detector = anomaly.NewPreciseEWMA(threshold, depth)
		}
		log.Debug("creating precise %s anomaly detector node", method)
	}
	return operator.NewAnomalyDetector(detector, next), nil
}

// MakeSampler builds one operator from its configuration tree, wrapping
// next. Dispatch is on the "name" key; unknown names and malformed
// parameters fail construction.
func MakeSampler(cfg types.SamplerConfig, next types.Node, log logger.Logger) (types.Node, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	name, err := stringField(cfg, "name")
	if err != nil {
		return nil, err
	}
	switch name {
	case NameReservoir:
		size, err := uint32Field(cfg, "size")
		if err != nil {
			return nil, err
		}
		log.Debug("creating reservoir node, capacity %d", size)
		return operator.NewReservoir(size, nil, next), nil
	case NameMovingAverage:
		log.Debug("creating moving average node")
		return operator.NewMovingAverage(next), nil
	case NameMovingMedian:
		log.Debug("creating moving median node")
		return operator.NewMovingMedian(next), nil
	case NameFrequentItems, NameHeavyHitters:
		errRate, err := floatField(cfg, "error")
		if err != nil {
			return nil, err
		}
		portion, err := floatField(cfg, "portion")
		if err != nil {
			return nil, err
		}
		log.Debug("creating %s node, error %v portion %v", name, errRate, portion)
		if name == NameFrequentItems {
			return operator.NewFrequentItems(errRate, portion, next)
		}
		return operator.NewHeavyHitters(errRate, portion, next)
	case NameAnomalyDetector:
		return makeAnomalyDetector(cfg, next, log)
	case NameFilter:
		predicate, err := stringField(cfg, "predicate")
		if err != nil {
			return nil, err
		}
		return MakeFilterByExpr(predicate, next, log)
	default:
		return nil, errors.Wrapf(types.ErrInvalidSamplerSpec, "unknown algorithm %q", name)
	}
}

// MakeFilterByID builds a filter passing a single series.
func MakeFilterByID(id uint64, next types.Node, log logger.Logger) types.Node {
	if log == nil {
		log = logger.GetDefault()
	}
	log.Debug("creating id filter node for id %d", id)
	return operator.NewFilterByID(func(paramID uint64) bool {
		return paramID == id
	}, next)
}

// MakeFilterByIDList builds a filter passing only the listed series.
func MakeFilterByIDList(ids []uint64, next types.Node, log logger.Logger) types.Node {
	if log == nil {
		log = logger.GetDefault()
	}
	set := hashset.New()
	for _, id := range ids {
		set.Add(id)
	}
	log.Debug("creating id-list filter node (%d ids in a list)", len(ids))
	return operator.NewFilterByID(func(paramID uint64) bool {
		return set.Contains(paramID)
	}, next)
}

// MakeFilterOutByIDList builds a filter dropping the listed series.
func MakeFilterOutByIDList(ids []uint64, next types.Node, log logger.Logger) types.Node {
	if log == nil {
		log = logger.GetDefault()
	}
	set := hashset.New()
	for _, id := range ids {
		set.Add(id)
	}
	log.Debug("creating id-list filter out node (%d ids in a list)", len(ids))
	return operator.NewFilterByID(func(paramID uint64) bool {
		return !set.Contains(paramID)
	}, next)
}

// MakeFilterByExpr builds a filter from a boolean expression over the
// series id, e.g. "id % 2 == 0". The environment exposes "id".
func MakeFilterByExpr(expression string, next types.Node, log logger.Logger) (types.Node, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	cond, err := condition.NewExprCondition(expression)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidSamplerSpec, "predicate %q: %v", expression, err)
	}
	log.Debug("creating expression filter node: %s", expression)
	return operator.NewFilterByID(func(paramID uint64) bool {
		return cond.Evaluate(map[string]interface{}{"id": paramID})
	}, next), nil
}
