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

import "errors"

var (
	// ErrMalformedDirective is returned when a directive keyword is not
	// followed by the payload its grammar requires (a missing identifier
	// after `undef, a missing quote or angle bracket after `include, ...).
	ErrMalformedDirective = errors.New("sv/ast: malformed directive")

	// ErrUnterminatedConditional is returned when an `ifdef or `ifndef chain
	// reaches end of file without a matching `endif.
	ErrUnterminatedConditional = errors.New("sv/ast: unterminated conditional: missing `endif")

	// ErrUnexpectedDirective is returned when `elsif, `else, or `endif is
	// encountered outside of a conditional chain.
	ErrUnexpectedDirective = errors.New("sv/ast: directive not inside a conditional block")
)
