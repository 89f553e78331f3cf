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

// Package source holds the byte-range primitives the preprocessor uses to
// track where every surviving byte of the flattened output came from: a
// half-open Range, an ordered interval map from output range to origin, and
// the PreprocessedText buffer that ties the two together.
package source

import (
	"cmp"
	"fmt"
)

// Range is a half-open interval of byte offsets [Begin, End).
type Range struct {
	Begin uint64
	End   uint64
}

// NewRange constructs a Range, panicking if begin > end: callers only ever
// build ranges from offsets they've already computed, so a violation here is
// a programming error, not user input.
func NewRange(begin, end uint64) Range {
	if begin > end {
		panic(fmt.Sprintf("source: invalid range [%d, %d)", begin, end))
	}
	return Range{Begin: begin, End: end}
}

// Len reports the number of bytes spanned by the range.
func (r Range) Len() uint64 { return r.End - r.Begin }

// Offset returns a copy of r shifted by n bytes.
func (r Range) Offset(n uint64) Range {
	return Range{Begin: r.Begin + n, End: r.End + n}
}

// Contains reports whether p falls within [Begin, End).
func (r Range) Contains(p uint64) bool {
	return r.Begin <= p && p < r.End
}

// Compare orders ranges by Begin then End, the order the interval map keeps
// its entries in.
func Compare(a, b Range) int {
	if d := cmp.Compare(a.Begin, b.Begin); d != 0 {
		return d
	}
	return cmp.Compare(a.End, b.End)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Begin, r.End)
}
