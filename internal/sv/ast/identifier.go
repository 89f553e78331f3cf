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

// Package ast defines the closed set of directive node variants the
// preprocessor driver operates on, the lexer that turns a raw source buffer
// into a tree of them, and the two small traversal helpers the driver needs:
// an Enter/Leave event walker over the tree, and an identifier extractor
// over the name-subtrees `undef`, `define`, `ifdef`/`ifndef`/`elsif` carry.
package ast

import "github.com/hdl-tools/svpp/internal/sv/source"

// IdentifierKind distinguishes a plain identifier from an escaped one
// (SystemVerilog `\name `, terminated by whitespace that is not itself part
// of the name).
type IdentifierKind int

const (
	KindSimple IdentifierKind = iota
	KindEscaped
)

// Identifier is a leaf node: the raw byte range of one identifier token in
// the source.
type Identifier struct {
	Kind   IdentifierKind
	Locate source.Range
}

// Name slices the original source text to recover the identifier's text.
func (id Identifier) Name(src string) string {
	return src[id.Locate.Begin:id.Locate.End]
}

// IdentifierSubtree is what the lexer hands the driver at any directive
// position documented to contain exactly one identifier. It is a subtree,
// not a bare string, so that FirstIdentifier below is a real traversal
// rather than a field access: a malformed directive yields a subtree with
// no candidates at all, and the driver surfaces that as a parse error
// instead of panicking on a missing field.
type IdentifierSubtree struct {
	Candidates []Identifier
}

// FirstIdentifier walks sub in document order and returns its first
// SimpleIdentifier or EscapedIdentifier leaf. Returns false if none exists,
// which callers treat as a malformed directive.
func FirstIdentifier(sub IdentifierSubtree) (Identifier, bool) {
	if len(sub.Candidates) == 0 {
		return Identifier{}, false
	}
	return sub.Candidates[0], true
}

func oneIdentifier(id Identifier) IdentifierSubtree {
	return IdentifierSubtree{Candidates: []Identifier{id}}
}
