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

package sourcemap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdl-tools/svpp/internal/sv/source"
)

func TestEncodeVLQ_KnownValues(t *testing.T) {
	// Values taken from the Source Map v3 spec's own worked examples.
	assert.Equal(t, "A", encodeVLQ(0))
	assert.Equal(t, "C", encodeVLQ(1))
	assert.Equal(t, "D", encodeVLQ(-1))
	assert.Equal(t, "gqjG", encodeVLQ(100000))
}

func TestLineIndex_Position(t *testing.T) {
	idx := newLineIndex("abc\ndef\nghi")
	line, col := idx.position(0)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)

	line, col = idx.position(4)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)

	line, col = idx.position(9)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

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

func TestExport_ThenLoad_RoundTripsPositions(t *testing.T) {
	var text source.PreprocessedText
	text.Push("line one\n", "a.sv", source.NewRange(0, 9))
	text.Push("line two\n", "b.sv", source.NewRange(20, 29))

	fs := memFS{
		"a.sv": "line one\nignored\n",
		"b.sv": "ignored\nignored\nline two\n",
	}

	doc, err := Export(context.Background(), fs, "out.sv", &text)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Version)
	assert.Equal(t, []string{"a.sv", "b.sv"}, doc.Sources)
	require.NotEmpty(t, doc.Mappings)

	data, err := doc.Marshal()
	require.NoError(t, err)

	consumer, err := Load(data)
	require.NoError(t, err)

	file, _, line, col, ok := consumer.Source(0, 0)
	require.True(t, ok)
	assert.Equal(t, "a.sv", file)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)

	file, _, line, _, ok = consumer.Source(1, 0)
	require.True(t, ok)
	assert.Equal(t, "b.sv", file)
	assert.Equal(t, 2, line)
}

func TestExport_PropagatesReadErrors(t *testing.T) {
	var text source.PreprocessedText
	text.Push("x", "missing.sv", source.NewRange(0, 1))

	_, err := Export(context.Background(), memFS{}, "out.sv", &text)
	assert.Error(t, err)
}
