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
	"fmt"

	"github.com/hdl-tools/svpp/internal/sv/source"
)

// ParseError reports a lexical or structural problem at a specific byte
// offset in the source that was being scanned.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorAt(pos int, err error) *ParseError {
	return &ParseError{Offset: pos, Err: err}
}

// directiveKeywords lists every recognized backtick directive, longest
// first, so that a prefix like `undef is never mistaken for the start of
// `undefineall.
var directiveKeywords = []string{
	"undefineall",
	"resetall",
	"include",
	"define",
	"ifndef",
	"elsif",
	"endif",
	"ifdef",
	"undef",
	"else",
}

func isIdentContinuation(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// matchDirectiveKeyword reports whether a recognized directive keyword
// begins at src[pos] (which must be the backtick). It returns the keyword
// and the position right after it. Anything backtick-led that isn't one of
// directiveKeywords is left alone: it's ordinary source text, since this
// module never expands macro invocations.
func matchDirectiveKeyword(src string, pos int) (kw string, end int, ok bool) {
	if pos >= len(src) || src[pos] != '`' {
		return "", 0, false
	}
	rest := src[pos+1:]
	for _, kw := range directiveKeywords {
		if len(rest) < len(kw) || rest[:len(kw)] != kw {
			continue
		}
		after := pos + 1 + len(kw)
		if after < len(src) && isIdentContinuation(src[after]) {
			continue
		}
		return kw, after, true
	}
	return "", 0, false
}

// scanIdentifier skips leading spaces/tabs, then reads one simple or escaped
// identifier starting at the resulting position.
func scanIdentifier(src string, pos int) (Identifier, int, bool) {
	for pos < len(src) && isSpaceOrTab(src[pos]) {
		pos++
	}
	if pos >= len(src) {
		return Identifier{}, pos, false
	}
	start := pos
	if src[pos] == '\\' {
		pos++
		for pos < len(src) && src[pos] != ' ' && src[pos] != '\t' && src[pos] != '\n' && src[pos] != '\r' {
			pos++
		}
		return Identifier{Kind: KindEscaped, Locate: source.NewRange(uint64(start), uint64(pos))}, pos, true
	}
	if !isIdentStart(src[pos]) {
		return Identifier{}, start, false
	}
	pos++
	for pos < len(src) && isIdentContinuation(src[pos]) {
		pos++
	}
	return Identifier{Kind: KindSimple, Locate: source.NewRange(uint64(start), uint64(pos))}, pos, true
}

// skipToEndOfLine consumes trailing whitespace on a directive's line and, if
// present, its terminating newline, honoring backslash-newline continuation.
// The directive's line terminator is syntax, not content: it must not
// reappear as output, so callers resume their next SourceText run after it.
func skipToEndOfLine(src string, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\r':
			pos++
		case '\\':
			if pos+1 < len(src) && src[pos+1] == '\n' {
				pos += 2
				continue
			}
			return pos
		case '\n':
			return pos + 1
		default:
			return pos
		}
	}
	return pos
}

// scanMacroBody captures the raw, untokenized remainder of a `define
// directive's line, honoring backslash-newline continuation as part of the
// body rather than as a terminator.
func scanMacroBody(src string, pos int) source.Range {
	for pos < len(src) && isSpaceOrTab(src[pos]) {
		pos++
	}
	start := pos
	for pos < len(src) {
		if src[pos] == '\n' {
			if pos > 0 && src[pos-1] == '\\' {
				pos++
				continue
			}
			break
		}
		pos++
	}
	return source.NewRange(uint64(start), uint64(pos))
}

// scanIncludeSpec reads the quoted or angle-bracketed literal following an
// `include keyword. Escaped quotes within the literal are not recognized;
// filenames containing a quote cannot be included.
func scanIncludeSpec(src string, pos int) (IncludeSpec, int, bool) {
	for pos < len(src) && isSpaceOrTab(src[pos]) {
		pos++
	}
	if pos >= len(src) {
		return IncludeSpec{}, pos, false
	}
	switch src[pos] {
	case '"':
		start := pos + 1
		end := start
		for end < len(src) && src[end] != '"' && src[end] != '\n' {
			end++
		}
		if end >= len(src) || src[end] != '"' {
			return IncludeSpec{}, pos, false
		}
		return IncludeSpec{Quoted: true, Literal: src[start:end]}, end + 1, true
	case '<':
		start := pos + 1
		end := start
		for end < len(src) && src[end] != '>' && src[end] != '\n' {
			end++
		}
		if end >= len(src) || src[end] != '>' {
			return IncludeSpec{}, pos, false
		}
		return IncludeSpec{Quoted: false, Literal: src[start:end]}, end + 1, true
	default:
		return IncludeSpec{}, pos, false
	}
}

// Parse lexes and parses src into a directive tree.
func Parse(src string) ([]Directive, error) {
	pos := 0
	directives, _, err := parseDirectives(src, pos, func(string) bool { return false })
	return directives, err
}

// parseDirectives scans forward from pos, accumulating SourceText runs and
// parsed directives, until end of input or until it encounters an `elsif,
// `else, or `endif keyword for which stop returns true. It returns the
// position right before that unconsumed terminator so the caller (a
// conditional's own parsing loop) can match it itself.
func parseDirectives(src string, pos int, stop func(kw string) bool) ([]Directive, int, error) {
	var out []Directive
	runStart := pos
	flush := func(end int) {
		if end > runStart {
			out = append(out, &SourceText{Locate: source.NewRange(uint64(runStart), uint64(end))})
		}
	}
	for pos < len(src) {
		if src[pos] != '`' {
			pos++
			continue
		}
		kw, kwEnd, ok := matchDirectiveKeyword(src, pos)
		if !ok {
			pos++
			continue
		}
		switch kw {
		case "elsif", "else", "endif":
			if stop(kw) {
				flush(pos)
				return out, pos, nil
			}
			return nil, pos, parseErrorAt(pos, fmt.Errorf("%w: `%s", ErrUnexpectedDirective, kw))
		}
		flush(pos)
		directive, next, err := parseOneDirective(src, pos, kw, kwEnd)
		if err != nil {
			return nil, pos, err
		}
		out = append(out, directive)
		pos = next
		runStart = pos
	}
	flush(pos)
	return out, pos, nil
}

// parseOneDirective dispatches on a keyword already matched at [start,
// kwEnd) and consumes however much additional source its payload needs.
func parseOneDirective(src string, start int, kw string, kwEnd int) (Directive, int, error) {
	switch kw {
	case "resetall":
		return &ResetAll{}, skipToEndOfLine(src, kwEnd), nil
	case "undefineall":
		return &UndefineAll{}, skipToEndOfLine(src, kwEnd), nil
	case "undef":
		id, next, ok := scanIdentifier(src, kwEnd)
		if !ok {
			return nil, start, parseErrorAt(start, fmt.Errorf("%w: `undef requires a macro name", ErrMalformedDirective))
		}
		return &Undefine{Name: oneIdentifier(id)}, skipToEndOfLine(src, next), nil
	case "define":
		id, next, ok := scanIdentifier(src, kwEnd)
		if !ok {
			return nil, start, parseErrorAt(start, fmt.Errorf("%w: `define requires a macro name", ErrMalformedDirective))
		}
		body := scanMacroBody(src, next)
		return &MacroDefinition{Name: oneIdentifier(id), Body: body}, skipToEndOfLine(src, int(body.End)), nil
	case "include":
		spec, next, ok := scanIncludeSpec(src, kwEnd)
		if !ok {
			return nil, start, parseErrorAt(start, fmt.Errorf("%w: `include requires a \"path\" or <path>", ErrMalformedDirective))
		}
		return &Include{Spec: spec}, skipToEndOfLine(src, next), nil
	case "ifdef":
		return parseConditional(src, start, kwEnd, false)
	case "ifndef":
		return parseConditional(src, start, kwEnd, true)
	default:
		return nil, start, parseErrorAt(start, fmt.Errorf("%w: `%s", ErrUnexpectedDirective, kw))
	}
}

func stopAtElsifElseEndif(kw string) bool {
	return kw == "elsif" || kw == "else" || kw == "endif"
}

func stopAtEndifOnly(kw string) bool {
	return kw == "endif"
}

// parseConditional parses an `ifdef or `ifndef chain starting right after
// its keyword: it scans the guard identifier itself, then the branch bodies
// up to the matching `endif; negated selects between building an *Ifdef and
// an *Ifndef.
func parseConditional(src string, start, afterKeyword int, negated bool) (Directive, int, error) {
	id, pos, ok := scanIdentifier(src, afterKeyword)
	if !ok {
		kind := "ifdef"
		if negated {
			kind = "ifndef"
		}
		return nil, start, parseErrorAt(start, fmt.Errorf("%w: `%s requires a macro name", ErrMalformedDirective, kind))
	}
	pos = skipToEndOfLine(src, pos)

	ifBodyDirectives, pos, err := parseDirectives(src, pos, stopAtElsifElseEndif)
	if err != nil {
		return nil, start, err
	}
	ifBody := &Block{Directives: ifBodyDirectives}

	var elsifs []ElsifBranch
	var elseBody *Block

	for {
		kw, kwEnd, ok := matchDirectiveKeyword(src, pos)
		if !ok {
			return nil, start, parseErrorAt(pos, ErrUnterminatedConditional)
		}
		switch kw {
		case "elsif":
			eid, next, ok := scanIdentifier(src, kwEnd)
			if !ok {
				return nil, start, parseErrorAt(pos, fmt.Errorf("%w: `elsif requires a macro name", ErrMalformedDirective))
			}
			next = skipToEndOfLine(src, next)
			body, next2, err := parseDirectives(src, next, stopAtElsifElseEndif)
			if err != nil {
				return nil, start, err
			}
			elsifs = append(elsifs, ElsifBranch{ID: oneIdentifier(eid), Body: &Block{Directives: body}})
			pos = next2
			continue
		case "else":
			next := skipToEndOfLine(src, kwEnd)
			body, next2, err := parseDirectives(src, next, stopAtEndifOnly)
			if err != nil {
				return nil, start, err
			}
			elseBody = &Block{Directives: body}
			pos = next2
			endKw, endKwEnd, ok := matchDirectiveKeyword(src, pos)
			if !ok || endKw != "endif" {
				return nil, start, parseErrorAt(pos, ErrUnterminatedConditional)
			}
			pos = skipToEndOfLine(src, endKwEnd)
			return buildConditional(negated, oneIdentifier(id), ifBody, elsifs, elseBody), pos, nil
		case "endif":
			pos = skipToEndOfLine(src, kwEnd)
			return buildConditional(negated, oneIdentifier(id), ifBody, elsifs, elseBody), pos, nil
		default:
			return nil, start, parseErrorAt(pos, ErrUnterminatedConditional)
		}
	}
}

func buildConditional(negated bool, id IdentifierSubtree, ifBody *Block, elsifs []ElsifBranch, elseBody *Block) Directive {
	if negated {
		return &Ifndef{ID: id, IfBody: ifBody, Elsifs: elsifs, Else: elseBody}
	}
	return &Ifdef{ID: id, IfBody: ifBody, Elsifs: elsifs, Else: elseBody}
}
