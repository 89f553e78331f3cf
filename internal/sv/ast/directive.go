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

package ast

import "github.com/hdl-tools/svpp/internal/sv/source"

// Directive is the closed set of directive node variants a source file
// parses into: plain source text, a macro table mutation, an include, or a
// conditional block. Each variant is implemented by a pointer type so that
// two occurrences of the same directive are never equal, and so that Walk
// below can hand out stable node identities for the driver's skip-node
// bookkeeping.
type Directive interface {
	isDirective()
}

// ResetAll is the `resetall directive: it clears the macro table entirely.
type ResetAll struct{}

func (*ResetAll) isDirective() {}

// UndefineAll is the `undefineall directive: same effect as ResetAll in this
// module's macro model, kept distinct because the two are separate tokens in
// the source language.
type UndefineAll struct{}

func (*UndefineAll) isDirective() {}

// Undefine is the `undef directive: removes one macro by name.
type Undefine struct {
	Name IdentifierSubtree
}

func (*Undefine) isDirective() {}

// SourceText is a run of bytes that is not part of any directive and is
// copied verbatim to the output.
type SourceText struct {
	Locate source.Range
}

func (*SourceText) isDirective() {}

// MacroDefinition is the `define directive. Body is the raw, untokenized
// remainder of the directive after the name: this module never expands
// macros, so the body is carried as an opaque range and never read.
type MacroDefinition struct {
	Name IdentifierSubtree
	Body source.Range
}

func (*MacroDefinition) isDirective() {}

// IncludeSpec is the argument to an `include directive: either a
// double-quoted literal path or an angle-bracketed one. The distinction is
// preserved even though internal/sv/resolve currently probes the same
// search roots for both forms.
type IncludeSpec struct {
	Quoted  bool
	Literal string
}

// Include is the `include directive.
type Include struct {
	Spec IncludeSpec
}

func (*Include) isDirective() {}

// Block is a body of directives guarded by one branch of a conditional. It
// is not itself a Directive: it only ever appears as a field of Ifdef or
// Ifndef. Its pointer identity is what the driver's skip-node set tracks
// when a branch is not taken.
type Block struct {
	Directives []Directive
}

// ElsifBranch is one `elsif arm of a conditional chain.
type ElsifBranch struct {
	ID   IdentifierSubtree
	Body *Block
}

// Ifdef is the `ifdef ... `elsif ... `else ... `endif chain. Else is nil
// when the chain has no `else arm.
type Ifdef struct {
	ID     IdentifierSubtree
	IfBody *Block
	Elsifs []ElsifBranch
	Else   *Block
}

func (*Ifdef) isDirective() {}

// Ifndef is the `ifndef counterpart of Ifdef; identical shape, inverted
// sense on the first branch.
type Ifndef struct {
	ID     IdentifierSubtree
	IfBody *Block
	Elsifs []ElsifBranch
	Else   *Block
}

func (*Ifndef) isDirective() {}
