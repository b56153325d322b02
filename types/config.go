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

// SamplerConfig is one node of the hierarchical, string-keyed configuration
// tree the builder consumes. The "name" key selects the algorithm; the
// remaining keys are algorithm specific. Values are converted lexically, so
// numeric parameters may arrive as strings, ints or floats.
type SamplerConfig map[string]any

// Field returns the raw value stored under key.
func (c SamplerConfig) Field(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}
