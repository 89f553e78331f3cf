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

// Package batch runs many independent top-level compilation units through
// internal/sv/preprocess concurrently. Each unit gets its own Preprocess
// call with no shared mutable state; only the result slot it writes back to
// is shared, and each worker owns exactly one slot.
package batch

import (
	"context"
	"slices"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/hdl-tools/svpp/internal/collections"
	"github.com/hdl-tools/svpp/internal/sv/macros"
	"github.com/hdl-tools/svpp/internal/sv/preprocess"
	"github.com/hdl-tools/svpp/internal/sv/resolve"
	"github.com/hdl-tools/svpp/internal/sv/source"
)

// DefaultConcurrency bounds the number of compilation units preprocessed at
// once when a caller doesn't specify one.
const DefaultConcurrency = 8

// Result is the outcome of preprocessing one root file.
type Result struct {
	Path string
	Text *source.PreprocessedText
	Err  error
}

// Match filters candidates (paths the caller already knows about, e.g. from
// a directory walk) down to the ones matching any of globs. Patterns are
// matched against paths directly rather than through doublestar's
// filesystem-walking Glob, which would require direct OS filesystem access
// that the Filesystem abstraction deliberately avoids.
func Match(candidates []string, globs []string) []string {
	return collections.FilterSlice(candidates, func(path string) bool {
		return slices.ContainsFunc(globs, func(pattern string) bool {
			return doublestar.MatchUnvalidated(pattern, path)
		})
	})
}

// Run preprocesses every root in roots concurrently, at most concurrency at
// a time (DefaultConcurrency if concurrency <= 0), and returns one Result
// per root in the same order roots was given. A failure in one unit does
// not cancel the others; it is reported in that unit's Result.Err.
func Run(ctx context.Context, fs resolve.Filesystem, roots []string, predefines macros.Table, searchPaths []string, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	results := make([]Result, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, root := range roots {
		g.Go(func() error {
			text, err := preprocess.Preprocess(gctx, fs, root, predefines, searchPaths)
			results[i] = Result{Path: root, Text: text, Err: err}
			return nil
		})
	}
	// Run's worker func never returns a non-nil error: per-unit failures are
	// carried in Result.Err so one bad file doesn't cancel its siblings via
	// errgroup's context cancellation.
	_ = g.Wait()
	return results
}

// Failed returns the subset of results that failed, in the order they
// appear in results.
func Failed(results []Result) []Result {
	return collections.FilterSlice(results, func(r Result) bool { return r.Err != nil })
}

// SortedByPath returns a copy of results sorted by Path, useful for
// deterministic output in tests and CLI printing since Run's concurrent
// completion order is otherwise irrelevant (the returned slice is already
// index-aligned with roots, but callers that built roots from an unordered
// source may still want this).
func SortedByPath(results []Result) []Result {
	out := append([]Result(nil), results...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
