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

// Package macros holds the preprocessor's macro table: a presence-only set
// of names, each carrying an opaque definition body that this module never
// interprets. Unlike a C preprocessor's macro table, there is no integer
// value to evaluate — `ifdef and `ifndef only ever test whether a name is
// present.
package macros

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Table maps a defined macro name to its opaque, untokenized definition
// body. The body is carried only so that a caller inspecting the table
// (diagnostics, a future macro-expanding pass) has it available; this
// module's own conditional-compilation logic only ever tests presence.
type Table map[string]string

// New returns an empty macro table.
func New() Table {
	return Table{}
}

// Define records name as defined with the given opaque body, overwriting any
// prior definition.
func (t Table) Define(name, body string) {
	t[name] = body
}

// Undefine removes name from the table. Undefining a name that isn't defined
// is not an error.
func (t Table) Undefine(name string) {
	delete(t, name)
}

// Reset clears every entry from the table in place, used by both `resetall
// and `undefineall.
func (t Table) Reset() {
	for name := range t {
		delete(t, name)
	}
}

// IsDefined reports whether name is currently defined.
func (t Table) IsDefined(name string) bool {
	_, ok := t[name]
	return ok
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// A valid macro identifier must start with '_' or a letter; subsequent
// characters may be '_', '$', letters, or decimal digits.
var MacroIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// Predefine is one `-D NAME[=body]`-style command-line macro definition.
type Predefine struct {
	Name string
	Body string
}

// ParsePredefine parses a single `-D`-style definition, tolerating the
// `-D` prefix itself so callers can pass either `flag.Args()` entries or raw
// "NAME=body" strings.
func ParsePredefine(definition string) (Predefine, error) {
	definition = strings.TrimPrefix(definition, "-D")
	name, body := definition, ""
	if eqIdx := strings.Index(definition, "="); eqIdx >= 0 {
		name, body = definition[:eqIdx], definition[eqIdx+1:]
	}
	if !MacroIdentifierRegex.MatchString(name) {
		return Predefine{}, fmt.Errorf("invalid macro name %q", name)
	}
	return Predefine{Name: name, Body: body}, nil
}

// ParsePredefines parses a slice of `-D`-style definitions into a Table,
// collecting every parse failure via errors.Join rather than stopping at the
// first one.
func ParsePredefines(definitions []string) (Table, error) {
	out := New()
	var parseErrors []error
	for _, d := range definitions {
		p, err := ParsePredefine(d)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("failed to parse %q: %w", d, err))
			continue
		}
		out.Define(p.Name, p.Body)
	}
	return out, errors.Join(parseErrors...)
}
