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

package preprocess

import (
	"fmt"
	"strings"
)

// IOError wraps a failure to read a source file, annotated with the
// offending path.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("sv/preprocess: %s: %v", e.Path, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

// ParseError wraps a directive-parse failure, annotated with the file it
// occurred in.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sv/preprocess: parse error in %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// IncludeNotFoundError wraps the failure to read a resolved include target,
// carrying the include-site context: the literal filename and the search
// paths that were tried.
type IncludeNotFoundError struct {
	Filename string
	Tried    []string
	Cause    error
}

func (e *IncludeNotFoundError) Error() string {
	return fmt.Sprintf("sv/preprocess: include %q not found (tried: %s): %v", e.Filename, strings.Join(e.Tried, ", "), e.Cause)
}

func (e *IncludeNotFoundError) Unwrap() error { return e.Cause }

// IncludeCycleError is returned when an include chain revisits a path
// already on the stack, or when include nesting exceeds MaxIncludeDepth.
type IncludeCycleError struct {
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return fmt.Sprintf("sv/preprocess: include cycle or depth limit exceeded: %s", strings.Join(e.Chain, " -> "))
}
