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

import "github.com/pkg/errors"

var (
	// ErrInvalidSamplerSpec reports a malformed builder configuration:
	// unknown algorithm name, out-of-range parameter, or a non-numeric
	// value where a numeric one is expected.
	ErrInvalidSamplerSpec = errors.New("invalid sampler spec")

	// ErrUnimplementedMethod reports a well-formed but unsupported
	// forecasting method.
	ErrUnimplementedMethod = errors.New("forecasting method not implemented")

	// ErrNegativeAnomalyInput reports a negative float reaching the
	// anomaly detector at runtime.
	ErrNegativeAnomalyInput = errors.New("negative value in anomaly detector")
)
