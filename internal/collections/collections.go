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

// Package collections provides the small generic containers and sequence
// helpers shared across the preprocessor: a Set for membership testing
// (skip-node tracking, include-cycle detection) and filter operations over
// sequences and slices. Each filter comes in two variants, one for
// iter.Seq sequences (Seq suffix) and one for slices (Slice suffix).
package collections

import (
	"iter"
	"slices"
)

// FilterSeq returns a new sequence containing only the elements of `seq` for
// which the `predicate` function returns true.
//
// Example:
//
//	FilterSeq(slices.Values(
//		[]int{1, 2, 3, 4}),
//		func(x int) bool { return x%2 == 0 }
//	)
//	=> sequence of []int{2, 4}
func FilterSeq[T any](seq iter.Seq[T], predicate func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for elem := range seq {
			if predicate(elem) && !yield(elem) {
				return
			}
		}
	}
}

// FilterSlice returns a new slice containing only the elements of `s` for which
// the `predicate` function returns true.
//
// Example:
//
//	FilterSlice([]int{1, 2, 3, 4}, func(x int) bool { return x%2 == 0 })
//	=> []int{2, 4}
func FilterSlice[TSlice ~[]T, T any](s TSlice, predicate func(T) bool) TSlice {
	return slices.AppendSeq(make(TSlice, 0, len(s)), FilterSeq(slices.Values(s), predicate))
}
