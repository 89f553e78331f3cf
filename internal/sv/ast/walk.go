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

import "iter"

// EventKind distinguishes entering a node from leaving it.
type EventKind int

const (
	Enter EventKind = iota
	Leave
)

// Node is any value Walk hands back an Enter/Leave pair for: a Directive, or
// a *Block guarding one branch of a conditional. Node values are always
// pointers, so == compares identity, not structure; that is exactly the
// property the driver's skip-node set relies on.
type Node = any

// Event is one step of a depth-first Enter/Leave walk over a directive tree.
type Event struct {
	Kind EventKind
	Node Node
}

// Walk returns an iterator over directives in document order. Every
// directive is visited as an Enter/Leave pair. A conditional's branches are
// visited as nested Enter/Leave pairs on their *Block, with the branch's own
// directives walked in between — so a caller tracking a set of "skipped"
// node identities can mark a *Block when its branch is not taken and have
// that skip automatically cover everything inside it, including nested
// conditionals.
func Walk(directives []Directive) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		walkDirectives(directives, yield)
	}
}

func walkDirectives(directives []Directive, yield func(Event) bool) bool {
	for _, d := range directives {
		if !yield(Event{Kind: Enter, Node: d}) {
			return false
		}
		switch v := d.(type) {
		case *Ifdef:
			if !walkConditional(v.IfBody, v.Elsifs, v.Else, yield) {
				return false
			}
		case *Ifndef:
			if !walkConditional(v.IfBody, v.Elsifs, v.Else, yield) {
				return false
			}
		}
		if !yield(Event{Kind: Leave, Node: d}) {
			return false
		}
	}
	return true
}

func walkConditional(ifBody *Block, elsifs []ElsifBranch, elseBody *Block, yield func(Event) bool) bool {
	if !walkBlock(ifBody, yield) {
		return false
	}
	for _, branch := range elsifs {
		if !walkBlock(branch.Body, yield) {
			return false
		}
	}
	if elseBody != nil {
		if !walkBlock(elseBody, yield) {
			return false
		}
	}
	return true
}

func walkBlock(b *Block, yield func(Event) bool) bool {
	if !yield(Event{Kind: Enter, Node: b}) {
		return false
	}
	if !walkDirectives(b.Directives, yield) {
		return false
	}
	return yield(Event{Kind: Leave, Node: b})
}
