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

package test

import (
	"testing"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/components/catalog"
)

// Catalog returns the built-in catalog, failing the test if it cannot load.
func Catalog(tb testing.TB) *catalog.Catalog {
	tb.Helper()
	c, err := catalog.Default()
	if err != nil {
		tb.Fatalf("load default catalog: %v", err)
	}
	return c
}

// Stack is a single item of the given type.
func Stack(id string) types.ItemStack {
	return types.ItemStack{Type: id, Amount: 1}
}
