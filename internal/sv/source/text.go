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

package source

import (
	"fmt"
	"strings"
)

// Origin identifies where a span of flattened output bytes came from: the
// range in the output buffer, the source file it was copied from, and the
// matching range within that file.
type Origin struct {
	Range       Range
	OriginPath  string
	OriginRange Range
}

// PreprocessedText is the flattened output of a preprocessing run: a single
// contiguous byte stream plus an ordered interval map recording, for every
// surviving span, the file and byte range it was copied from.
//
// The zero value is an empty, ready-to-use buffer.
type PreprocessedText struct {
	text    strings.Builder
	origins IntervalMap[Origin]
}

// Push appends slice to the buffer and records that the resulting span came
// from originPath at originRange. len(slice) must equal originRange.Len().
func (t *PreprocessedText) Push(slice string, originPath string, originRange Range) {
	if uint64(len(slice)) != originRange.Len() {
		panic(fmt.Sprintf("source: push length mismatch: %d bytes vs origin range %s", len(slice), originRange))
	}
	base := uint64(t.text.Len())
	t.text.WriteString(slice)
	r := NewRange(base, base+uint64(len(slice)))
	t.origins.Insert(r, Origin{Range: r, OriginPath: originPath, OriginRange: originRange})
}

// Merge appends other's text to t and rebases every one of other's origin
// entries by t's current length before inserting them. other is consumed: it
// must not be used after Merge returns.
func (t *PreprocessedText) Merge(other *PreprocessedText) {
	base := uint64(t.text.Len())
	t.text.WriteString(other.text.String())
	other.origins.All(func(r Range, o Origin) bool {
		shifted := r.Offset(base)
		o.Range = o.Range.Offset(base)
		t.origins.Insert(shifted, o)
		return true
	})
}

// Text returns the flattened output bytes.
func (t *PreprocessedText) Text() string {
	return t.text.String()
}

// Len reports the current length of the output buffer in bytes.
func (t *PreprocessedText) Len() int {
	return t.text.Len()
}

// Origin returns the file and offset that output position pos was copied
// from, or false if pos falls in a gap with no recorded origin.
func (t *PreprocessedText) Origin(pos uint64) (path string, originPos uint64, ok bool) {
	o, found := t.origins.GetContaining(pos)
	if !found {
		return "", 0, false
	}
	return o.OriginPath, pos-o.Range.Begin+o.OriginRange.Begin, true
}

// AllOrigins iterates every recorded origin span in ascending output-range
// order. Unlike Origin, which answers a single point query, this is for
// consumers that need the whole map at once (internal/sv/sourcemap).
func (t *PreprocessedText) AllOrigins(yield func(Range, Origin) bool) {
	t.origins.All(yield)
}
