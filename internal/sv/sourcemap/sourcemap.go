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

// Package sourcemap exports a PreprocessedText's origin map as a Source Map
// v3 document, for IDE cross-reference and debug tooling downstream of the
// preprocessor. It also loads a previously exported document back for
// inspection, using github.com/go-sourcemap/sourcemap as the
// parser/consumer half of the round trip.
package sourcemap

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	upstream "github.com/go-sourcemap/sourcemap"

	"github.com/hdl-tools/svpp/internal/sv/resolve"
	"github.com/hdl-tools/svpp/internal/sv/source"
)

// Document is a Source Map v3 document: generated output plus, for every
// mapped position in it, the originating file and line/column.
type Document struct {
	Version  int      `json:"version"`
	File     string   `json:"file,omitempty"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// Marshal renders the document as Source Map v3 JSON.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("sv/sourcemap: marshal: %w", err)
	}
	return data, nil
}

// segment is one generated position's mapping, in the line/column space the
// Source Map v3 spec uses rather than PreprocessedText's flat byte offsets.
type segment struct {
	genLine, genCol int
	sourceIdx       int
	srcLine, srcCol int
}

// Export walks every origin span recorded in text and renders them as a
// Source Map v3 document. Byte offsets are converted to 0-based line/column
// pairs; the generated side is derived from text.Text() itself, and the
// source side requires re-reading each distinct origin file through fs to
// build its own line index, since PreprocessedText holds only path/offset
// pairs and never retains source byte slices.
func Export(ctx context.Context, fs resolve.Filesystem, file string, text *source.PreprocessedText) (*Document, error) {
	genIndex := newLineIndex(text.Text())

	srcIndexes := map[string]*lineIndex{}
	sourceOrder := map[string]int{}
	var sources []string

	srcIndexFor := func(path string) (*lineIndex, error) {
		if idx, ok := srcIndexes[path]; ok {
			return idx, nil
		}
		raw, err := fs.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("sv/sourcemap: read %s: %w", path, err)
		}
		idx := newLineIndex(string(raw))
		srcIndexes[path] = idx
		return idx, nil
	}

	var segments []segment
	var walkErr error
	text.AllOrigins(func(r source.Range, o source.Origin) bool {
		srcIdx, ok := sourceOrder[o.OriginPath]
		if !ok {
			srcIdx = len(sources)
			sourceOrder[o.OriginPath] = srcIdx
			sources = append(sources, o.OriginPath)
		}
		idx, err := srcIndexFor(o.OriginPath)
		if err != nil {
			walkErr = err
			return false
		}
		genLine, genCol := genIndex.position(r.Begin)
		srcLine, srcCol := idx.position(o.OriginRange.Begin)
		segments = append(segments, segment{
			genLine: genLine, genCol: genCol,
			sourceIdx: srcIdx,
			srcLine:   srcLine, srcCol: srcCol,
		})
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return &Document{
		Version:  3,
		File:     file,
		Sources:  sources,
		Names:    []string{},
		Mappings: encodeMappings(segments),
	}, nil
}

// encodeMappings renders segments (assumed already in ascending generated-
// position order, which AllOrigins guarantees) as the semicolon/comma/VLQ
// "mappings" string the Source Map v3 spec defines.
func encodeMappings(segments []segment) string {
	var lines strings.Builder
	prevGenCol, prevSrcIdx, prevSrcLine, prevSrcCol := 0, 0, 0, 0
	curLine := 0
	firstOnLine := true

	for _, s := range segments {
		for curLine < s.genLine {
			lines.WriteByte(';')
			curLine++
			prevGenCol = 0
			firstOnLine = true
		}
		if !firstOnLine {
			lines.WriteByte(',')
		}
		firstOnLine = false

		lines.WriteString(encodeVLQ(s.genCol - prevGenCol))
		lines.WriteString(encodeVLQ(s.sourceIdx - prevSrcIdx))
		lines.WriteString(encodeVLQ(s.srcLine - prevSrcLine))
		lines.WriteString(encodeVLQ(s.srcCol - prevSrcCol))

		prevGenCol = s.genCol
		prevSrcIdx = s.sourceIdx
		prevSrcLine = s.srcLine
		prevSrcCol = s.srcCol
	}
	return lines.String()
}

// lineIndex maps a byte offset into a buffer to a 0-based (line, column)
// pair, both measured in bytes: the origin map is byte-accurate rather than
// rune-accurate, so columns agree with character counts only for ASCII.
type lineIndex struct {
	// lineStarts[i] is the byte offset at which line i begins.
	lineStarts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{lineStarts: starts}
}

func (idx *lineIndex) position(offset uint64) (line, col int) {
	o := int(offset)
	line = sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > o
	}) - 1
	if line < 0 {
		line = 0
	}
	return line, o - idx.lineStarts[line]
}

// Consumer wraps an upstream parsed Source Map v3 document for generated-
// position lookups.
type Consumer struct {
	inner *upstream.Consumer
}

// Load parses a previously exported document.
func Load(data []byte) (*Consumer, error) {
	c, err := upstream.Parse("", data)
	if err != nil {
		return nil, fmt.Errorf("sv/sourcemap: parse: %w", err)
	}
	return &Consumer{inner: c}, nil
}

// Source looks up the origin file and 0-based line/column for a 0-based
// generated line/column. The upstream consumer speaks 1-based lines (its API
// is aimed at stack traces); this wrapper converts both directions so
// callers stay in the same 0-based space Export writes.
func (c *Consumer) Source(genLine, genCol int) (file, name string, line, col int, ok bool) {
	file, name, line, col, ok = c.inner.Source(genLine+1, genCol)
	if ok && line > 0 {
		line--
	}
	return file, name, line, col, ok
}
