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

// Command svpp-sourcemap exports a preprocessing run's origin map as a
// Source Map v3 document, or loads a previously exported document back to
// answer a generated-position query against it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hdl-tools/svpp/internal/sv/fsadapter"
	"github.com/hdl-tools/svpp/internal/sv/macros"
	"github.com/hdl-tools/svpp/internal/sv/preprocess"
	"github.com/hdl-tools/svpp/internal/sv/sourcemap"
)

type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var defines, searchPaths stringList
	flag.Var(&defines, "D", "predefine a macro, NAME or NAME=body (repeatable)")
	flag.Var(&searchPaths, "I", "include search path root (repeatable)")
	load := flag.String("load", "", "load an existing source map instead of exporting a new one")
	genLine := flag.Int("gen-line", -1, "0-based generated line to query (requires -load)")
	genCol := flag.Int("gen-col", 0, "0-based generated column to query (requires -load and -gen-line)")
	flag.Parse()

	ctx := context.Background()
	fs := fsadapter.New()

	if *load != "" {
		queryLoaded(ctx, fs, *load, *genLine, *genCol)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("svpp-sourcemap requires exactly one positional argument: the root source file")
	}
	root := flag.Arg(0)

	predefines, err := macros.ParsePredefines(defines)
	if err != nil {
		log.Fatalf("svpp-sourcemap: %v", err)
	}
	out, err := preprocess.Preprocess(ctx, fs, root, predefines, searchPaths)
	if err != nil {
		log.Fatalf("svpp-sourcemap: %v", err)
	}
	doc, err := sourcemap.Export(ctx, fs, root, out)
	if err != nil {
		log.Fatalf("svpp-sourcemap: %v", err)
	}
	data, err := doc.Marshal()
	if err != nil {
		log.Fatalf("svpp-sourcemap: %v", err)
	}
	os.Stdout.Write(data)
	fmt.Println()
}

func queryLoaded(ctx context.Context, fs *fsadapter.FS, path string, genLine, genCol int) {
	if genLine < 0 {
		log.Fatalf("svpp-sourcemap: -load requires -gen-line")
	}
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		log.Fatalf("svpp-sourcemap: %v", err)
	}
	consumer, err := sourcemap.Load(data)
	if err != nil {
		log.Fatalf("svpp-sourcemap: %v", err)
	}
	file, _, line, col, ok := consumer.Source(genLine, genCol)
	if !ok {
		log.Fatalf("svpp-sourcemap: no mapping for %d:%d", genLine, genCol)
	}
	fmt.Printf("%s:%d:%d\n", file, line, col)
}
