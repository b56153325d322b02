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

// Package streampipe is a streaming query-processing pipeline for a
// time-series store. A storage scan pushes time-ordered samples
// (series id, timestamp, value) into a linear chain of operators that
// transform or summarize the stream and deliver results to a terminal
// sink. A group-by-time driver injects step-aligned window boundaries
// (barriers) that the windowed operators flush on.
//
// Available operators: id filtering, reservoir sampling, sliding-window
// mean and median, Space-Saving frequent-items and heavy-hitters sketches,
// and forecasting-based anomaly detection. All of them honour one
// protocol: Put returns false to stop the scan, Complete flushes and ends
// the stream, SetError aborts it.
//
// The facade in this package assembles chains from sampler configuration
// trees and returns the query processors the scan layer drives:
//
//	sp := streampipe.New()
//	sink := collector.NewCollector()
//	proc, err := sp.BuildScanQuery(streampipe.ScanQueryConfig{
//		Samplers: []types.SamplerConfig{{"name": "moving-average"}},
//		Begin:    0,
//		End:      1000,
//		Step:     100,
//	}, sink)
package streampipe
