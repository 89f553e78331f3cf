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

// Package preprocess is the preprocessor driver: it walks a directive tree,
// maintains the macro table and the conditional skip state, emits surviving
// source bytes into a PreprocessedText, and recurses into included files.
package preprocess

import (
	"context"
	"errors"
	"fmt"

	"github.com/hdl-tools/svpp/internal/collections"
	"github.com/hdl-tools/svpp/internal/sv/ast"
	"github.com/hdl-tools/svpp/internal/sv/macros"
	"github.com/hdl-tools/svpp/internal/sv/resolve"
	"github.com/hdl-tools/svpp/internal/sv/source"
)

// DefaultMaxIncludeDepth bounds include recursion. Exceeding it is reported
// the same way as a detected cycle, since both indicate the traversal will
// never terminate cleanly.
const DefaultMaxIncludeDepth = 256

// Options configures a Preprocess call beyond its required arguments.
type Options struct {
	// MaxIncludeDepth overrides DefaultMaxIncludeDepth. Zero means use the
	// default.
	MaxIncludeDepth int
}

// Preprocess reads path, drives the directive tree it parses into, and
// returns the flattened output with its origin map. predefines seeds the
// macro table before traversal begins and is not mutated.
func Preprocess(ctx context.Context, fs resolve.Filesystem, path string, predefines macros.Table, searchPaths []string) (*source.PreprocessedText, error) {
	return PreprocessWithOptions(ctx, fs, path, predefines, searchPaths, Options{})
}

// PreprocessWithOptions is Preprocess with an explicit Options value.
func PreprocessWithOptions(ctx context.Context, fs resolve.Filesystem, path string, predefines macros.Table, searchPaths []string, opts Options) (*source.PreprocessedText, error) {
	maxDepth := opts.MaxIncludeDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxIncludeDepth
	}
	d := &driver{fs: fs, searchPaths: searchPaths, maxDepth: maxDepth}
	return d.run(ctx, path, predefines.Clone(), nil)
}

type driver struct {
	fs          resolve.Filesystem
	searchPaths []string
	maxDepth    int
}

// run preprocesses one compilation unit. chain holds the ancestor paths
// currently being processed, used for cycle detection; it does not include
// path itself yet.
func (d *driver) run(ctx context.Context, path string, defines macros.Table, chain []string) (*source.PreprocessedText, error) {
	ancestors := collections.SetOf(chain...)
	if ancestors.Contains(path) || len(chain) >= d.maxDepth {
		return nil, &IncludeCycleError{Chain: append(append([]string{}, chain...), path)}
	}

	raw, err := d.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, &IOError{Path: path, Cause: err}
	}
	src := string(raw)

	directives, err := ast.Parse(src)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	out := &source.PreprocessedText{}
	skip := false
	skipNodes := collections.Set[ast.Node]{}
	childChain := append(append([]string{}, chain...), path)

	for ev := range ast.Walk(directives) {
		if ev.Kind == ast.Leave {
			if skipNodes.Contains(ev.Node) {
				skip = false
			}
			continue
		}

		// Enter.
		if skipNodes.Contains(ev.Node) {
			skip = true
		}
		if skip {
			continue
		}

		switch node := ev.Node.(type) {
		case *ast.ResetAll:
			defines.Reset()

		case *ast.UndefineAll:
			defines.Reset()

		case *ast.Undefine:
			id, ok := ast.FirstIdentifier(node.Name)
			if !ok {
				return nil, &ParseError{Path: path, Cause: fmt.Errorf("`undef: %w", ast.ErrMalformedDirective)}
			}
			defines.Undefine(id.Name(src))

		case *ast.SourceText:
			out.Push(src[node.Locate.Begin:node.Locate.End], path, node.Locate)

		case *ast.MacroDefinition:
			id, ok := ast.FirstIdentifier(node.Name)
			if !ok {
				return nil, &ParseError{Path: path, Cause: fmt.Errorf("`define: %w", ast.ErrMalformedDirective)}
			}
			defines.Define(id.Name(src), src[node.Body.Begin:node.Body.End])

		case *ast.Ifdef:
			if err := scheduleConditional(src, defines, skipNodes, node.ID, node.IfBody, node.Elsifs, node.Else, false); err != nil {
				return nil, &ParseError{Path: path, Cause: err}
			}

		case *ast.Ifndef:
			if err := scheduleConditional(src, defines, skipNodes, node.ID, node.IfBody, node.Elsifs, node.Else, true); err != nil {
				return nil, &ParseError{Path: path, Cause: err}
			}

		case *ast.Include:
			resolved := resolve.Resolve(ctx, d.fs, node.Spec, d.searchPaths)
			child, err := d.run(ctx, resolved, defines.Clone(), childChain)
			if err != nil {
				// Failures deeper in the include chain propagate unchanged so
				// the innermost file stays identifiable; only a failure to
				// open the resolved target itself gains include-site context.
				var ioErr *IOError
				if errors.As(err, &ioErr) && ioErr.Path == resolved {
					return nil, &IncludeNotFoundError{Filename: node.Spec.Literal, Tried: d.searchPaths, Cause: err}
				}
				return nil, err
			}
			out.Merge(child)
		}
	}
	return out, nil
}

// scheduleConditional evaluates an `ifdef/`ifndef chain: at most one branch
// is taken, and the bodies of every branch that was not are marked for
// skipping by adding their *ast.Block identity to skipNodes.
func scheduleConditional(
	src string,
	defines macros.Table,
	skipNodes collections.Set[ast.Node],
	guard ast.IdentifierSubtree,
	ifBody *ast.Block,
	elsifs []ast.ElsifBranch,
	elseBody *ast.Block,
	negate bool,
) error {
	id, ok := ast.FirstIdentifier(guard)
	if !ok {
		return fmt.Errorf("conditional guard: %w", ast.ErrMalformedDirective)
	}
	taken := defines.IsDefined(id.Name(src))
	if negate {
		taken = !taken
	}
	hit := taken
	if !taken {
		skipNodes.Add(ifBody)
	}

	for _, branch := range elsifs {
		if hit {
			skipNodes.Add(branch.Body)
			continue
		}
		bid, ok := ast.FirstIdentifier(branch.ID)
		if !ok {
			return fmt.Errorf("`elsif guard: %w", ast.ErrMalformedDirective)
		}
		if defines.IsDefined(bid.Name(src)) {
			hit = true
		} else {
			skipNodes.Add(branch.Body)
		}
	}

	if elseBody != nil && hit {
		skipNodes.Add(elseBody)
	}
	return nil
}
