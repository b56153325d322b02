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

package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprCondition(t *testing.T) {
	cond, err := NewExprCondition("id % 2 == 0")
	require.NoError(t, err)

	assert.True(t, cond.Evaluate(map[string]interface{}{"id": uint64(4)}))
	assert.False(t, cond.Evaluate(map[string]interface{}{"id": uint64(5)}))
}

func TestExprConditionCompileError(t *testing.T) {
	_, err := NewExprCondition("id >")
	assert.Error(t, err)
}

func TestExprConditionUndefinedVariableIsFalse(t *testing.T) {
	cond, err := NewExprCondition("missing == 1")
	require.NoError(t, err)
	assert.False(t, cond.Evaluate(map[string]interface{}{"id": uint64(1)}))
}
