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
	"github.com/rulego/streampipe/types"
)

// FilterByIDOp drops samples whose series id fails a predicate. Barriers
// are always forwarded. Dropping is silent: Put still returns true so the
// scan keeps running.
type FilterByIDOp struct {
	BaseOp
	pred func(uint64) bool
}

// NewFilterByID wraps next with a series-id predicate.
func NewFilterByID(pred func(uint64) bool, next types.Node) *FilterByIDOp {
	return &FilterByIDOp{BaseOp: BaseOp{next: next}, pred: pred}
}

func (o *FilterByIDOp) Put(sample types.Sample) bool {
	if sample.IsBarrier() {
		return o.next.Put(sample)
	}
	if o.pred(sample.ParamID) {
		return o.next.Put(sample)
	}
	return true
}

func (o *FilterByIDOp) Complete() {
	o.next.Complete()
}

func (o *FilterByIDOp) Kind() types.NodeKind {
	return types.KindFilterByID
}
