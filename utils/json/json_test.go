/*
 * Copyright 2024 The RuleGo Authors.
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

package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label struct {
	Label string `json:"label"`
}

func TestMarshal(t *testing.T) {
	v, err := Marshal(label{Label: "+sharpness_3&!~poison,<a>"})
	require.NoError(t, err)
	assert.Equal(t, `{"label":"+sharpness_3&!~poison,<a>"}`, string(v))

	_, err = Marshal(make(chan int))
	assert.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	var l label
	require.NoError(t, Unmarshal([]byte(`{"label":"a&b"}`), &l))
	assert.Equal(t, "a&b", l.Label)
	assert.Error(t, Unmarshal([]byte(`{`), &l))
}
