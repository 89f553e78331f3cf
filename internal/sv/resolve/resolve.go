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

// Package resolve turns an `include directive's filename into a concrete
// path to open, against an injected Filesystem collaborator so the
// resolution policy can be tested without touching disk.
package resolve

import (
	"context"
	"path/filepath"

	"github.com/hdl-tools/svpp/internal/sv/ast"
)

// Filesystem is the collaborator the resolver and the preprocessing driver
// read source files through. Production code backs it with
// internal/sv/fsadapter; tests back it with an in-memory map.
type Filesystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
}

// Resolve implements the include search policy:
//
//  1. An absolute literal is used as-is.
//  2. Else, if the literal exists relative to the process's current working
//     directory, it is used as-is.
//  3. Else, each searchPaths root is probed in order; the first one under
//     which join(root, literal) exists wins.
//  4. Else, the original relative literal is returned unchanged — the
//     subsequent file read will fail and surface as an I/O error.
//
// Resolve deliberately does not distinguish DoubleQuote from AngleBracket
// include specs: both probe the same roots. See the design notes on this
// for why that asymmetry with C-like preprocessors is intentional, not an
// oversight.
func Resolve(ctx context.Context, fs Filesystem, spec ast.IncludeSpec, searchPaths []string) string {
	literal := spec.Literal
	if filepath.IsAbs(literal) {
		return literal
	}
	if fs.Exists(ctx, literal) {
		return literal
	}
	for _, root := range searchPaths {
		candidate := filepath.Join(root, literal)
		if fs.Exists(ctx, candidate) {
			return candidate
		}
	}
	return literal
}
