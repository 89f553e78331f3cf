// Copyright 2026 The svpp Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdl-tools/svpp/internal/sv/macros"
)

type memFS map[string]string

func (m memFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(content), nil
}

func (m memFS) Exists(_ context.Context, path string) bool {
	_, ok := m[path]
	return ok
}

func TestMatch_FiltersByGlob(t *testing.T) {
	candidates := []string{"a/top.sv", "a/top.svh", "b/other.sv", "README.md"}
	matched := Match(candidates, []string{"**/*.sv"})
	assert.ElementsMatch(t, []string{"a/top.sv", "b/other.sv"}, matched)
}

func TestRun_PreprocessesEachRootIndependently(t *testing.T) {
	fs := memFS{
		"a.sv": "`define A\nvalue a\n",
		"b.sv": "value b\n",
	}
	results := Run(context.Background(), fs, []string{"a.sv", "b.sv"}, macros.New(), nil, 0)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "value a\n", results[0].Text.Text())
	assert.Equal(t, "value b\n", results[1].Text.Text())
}

func TestRun_OneFailureDoesNotCancelSiblings(t *testing.T) {
	fs := memFS{"b.sv": "value b\n"}
	results := Run(context.Background(), fs, []string{"missing.sv", "b.sv"}, macros.New(), nil, 1)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "value b\n", results[1].Text.Text())

	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, "missing.sv", failed[0].Path)
}

func TestSortedByPath(t *testing.T) {
	results := []Result{{Path: "b.sv"}, {Path: "a.sv"}}
	sorted := SortedByPath(results)
	assert.Equal(t, "a.sv", sorted[0].Path)
	assert.Equal(t, "b.sv", sorted[1].Path)
}
