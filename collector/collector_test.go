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

package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulego/streampipe/types"
)

func TestCollectorRecordsInOrder(t *testing.T) {
	c := NewCollector()
	assert.True(t, c.Put(types.NewFloatSample(1, 1, 1.0)))
	assert.True(t, c.Put(types.NewBarrier(10)))
	assert.True(t, c.Put(types.NewFloatSample(2, 11, 2.0)))

	assert.Len(t, c.Trace(), 3)
	assert.Len(t, c.Samples(), 2)
	assert.Len(t, c.Barriers(), 1)
}

func TestCollectorDeclinesAfterComplete(t *testing.T) {
	c := NewCollector()
	c.Complete()
	assert.True(t, c.Completed())
	assert.False(t, c.Put(types.NewFloatSample(1, 1, 1.0)))
	assert.Empty(t, c.Trace())
}

func TestCollectorDeclinesAfterError(t *testing.T) {
	c := NewCollector()
	c.SetError(types.ErrNegativeAnomalyInput)
	assert.ErrorIs(t, c.Err(), types.ErrNegativeAnomalyInput)
	assert.False(t, c.Put(types.NewBarrier(10)))
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector()
	c.Put(types.NewFloatSample(1, 1, 1.0))
	c.Complete()
	c.Reset()
	assert.Empty(t, c.Trace())
	assert.False(t, c.Completed())
	assert.NoError(t, c.Err())
}

func TestSinkFuncBackPressure(t *testing.T) {
	n := 0
	s := NewSinkFunc(func(sample types.Sample) bool {
		n++
		return n < 3
	})
	assert.True(t, s.Put(types.NewFloatSample(1, 1, 1.0)))
	assert.True(t, s.Put(types.NewFloatSample(1, 2, 1.0)))
	assert.False(t, s.Put(types.NewFloatSample(1, 3, 1.0)))
	s.Complete()
	assert.True(t, s.Completed())
	assert.False(t, s.Put(types.NewFloatSample(1, 4, 1.0)))
}
