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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_EnterLeavePairsForEachNode(t *testing.T) {
	directives, err := Parse("`ifdef A\nX\n`else\nY\n`endif\n")
	require.NoError(t, err)

	var kinds []EventKind
	for ev := range Walk(directives) {
		kinds = append(kinds, ev.Kind)
	}
	// Ifdef > IfBody block > SourceText, then Else block > SourceText, each
	// as an Enter/Leave pair.
	assert.Equal(t, []EventKind{
		Enter,
		Enter,
		Enter, Leave,
		Leave,
		Enter,
		Enter, Leave,
		Leave,
		Leave,
	}, kinds)
}

func TestWalk_BlockIdentityStableAcrossVisits(t *testing.T) {
	directives, err := Parse("`ifdef A\nX\n`endif\n")
	require.NoError(t, err)
	ifdef := directives[0].(*Ifdef)

	var sawEnterBlock, sawLeaveBlock bool
	for ev := range Walk(directives) {
		if ev.Node == Node(ifdef.IfBody) {
			if ev.Kind == Enter {
				sawEnterBlock = true
			} else {
				sawLeaveBlock = true
			}
		}
	}
	assert.True(t, sawEnterBlock)
	assert.True(t, sawLeaveBlock)
}

func TestWalk_StopsEarlyWhenYieldReturnsFalse(t *testing.T) {
	directives, err := Parse("a\n`define X 1\nb\n")
	require.NoError(t, err)

	var seen int
	for range Walk(directives) {
		seen++
		if seen == 1 {
			break
		}
	}
	assert.Equal(t, 1, seen)
}
