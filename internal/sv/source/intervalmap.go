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

import "slices"

// IntervalMap is an ordered map from a disjoint, ascending set of Ranges to
// values of type V, supporting O(log n) point containment lookup. A sorted
// slice searched with a binary cut rather than a tree: the map only ever
// grows in ascending key order during preprocessing, so inserts are
// effectively appends and a tree buys nothing.
type IntervalMap[V any] struct {
	entries []entry[V]
}

type entry[V any] struct {
	r Range
	v V
}

// Insert records value for key, keeping entries in ascending Range order.
// Insert does not itself enforce disjointness; callers (PreprocessedText) are
// responsible for only ever inserting ranges that don't overlap an existing
// entry, per the data model's invariant.
func (m *IntervalMap[V]) Insert(key Range, value V) {
	i, found := slices.BinarySearchFunc(m.entries, key, func(e entry[V], k Range) int {
		return Compare(e.r, k)
	})
	if found {
		m.entries[i].v = value
		return
	}
	m.entries = slices.Insert(m.entries, i, entry[V]{r: key, v: value})
}

// GetContaining returns the value whose range contains p, if any.
//
// Entries are disjoint and sorted by Begin, so the entry that could contain p
// is the last one whose Begin is <= p; GetContaining finds that entry with a
// single binary search and then checks End.
func (m *IntervalMap[V]) GetContaining(p uint64) (V, bool) {
	i, found := slices.BinarySearchFunc(m.entries, p, func(e entry[V], p uint64) int {
		if e.r.Begin == p {
			return 0
		}
		if e.r.Begin < p {
			return -1
		}
		return 1
	})
	if !found {
		// i is the insertion point: the first entry with Begin > p. The only
		// candidate entry is the one immediately before it.
		i--
	}
	if i < 0 || i >= len(m.entries) {
		var zero V
		return zero, false
	}
	if m.entries[i].r.Contains(p) {
		return m.entries[i].v, true
	}
	var zero V
	return zero, false
}

// Len reports the number of entries in the map.
func (m *IntervalMap[V]) Len() int { return len(m.entries) }

// All iterates entries in ascending Range order.
func (m *IntervalMap[V]) All(yield func(Range, V) bool) {
	for _, e := range m.entries {
		if !yield(e.r, e.v) {
			return
		}
	}
}
