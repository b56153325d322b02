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

// Package operator implements the single-input/single-output nodes a query
// chain is composed of: id filtering, reservoir sampling, sliding-window
// aggregation, Space-Saving sketches and anomaly detection. Every operator
// owns its own state and exactly one downstream node.
package operator

import (
	"github.com/rulego/streampipe/types"
)

// BaseOp carries the downstream reference shared by all operators.
type BaseOp struct {
	next types.Node
}

// Next returns the downstream node.
func (o *BaseOp) Next() types.Node {
	return o.next
}

// SetError forwards a terminal failure downstream verbatim.
func (o *BaseOp) SetError(err error) {
	o.next.SetError(err)
}
