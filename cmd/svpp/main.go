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

// Command svpp preprocesses a single root HDL source file and either prints
// the flattened output or answers a "which origin did this output byte come
// from" query against it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/hdl-tools/svpp/internal/sv/config"
	"github.com/hdl-tools/svpp/internal/sv/fsadapter"
	"github.com/hdl-tools/svpp/internal/sv/macros"
	"github.com/hdl-tools/svpp/internal/sv/preprocess"
)

// stringList accumulates repeated occurrences of a flag, e.g. -D FOO -D BAR.
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
	configPath := flag.String("config", "", "optional YAML project config providing predefines/search_paths")
	originPos := flag.Int64("origin", -1, "if set, print the origin of this byte offset in the flattened output instead of the output itself")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("svpp requires exactly one positional argument: the root source file")
	}
	root := flag.Arg(0)

	ctx := context.Background()
	fs := fsadapter.New()

	predefines := macros.New()
	var allSearchPaths []string
	if *configPath != "" {
		cfg, err := config.Load(ctx, fs, *configPath)
		if err != nil {
			log.Fatalf("svpp: %v", err)
		}
		predefines, err = cfg.Predefine()
		if err != nil {
			log.Fatalf("svpp: %v", err)
		}
		allSearchPaths = append(allSearchPaths, cfg.SearchPaths...)
	}
	cliDefines, err := macros.ParsePredefines(defines)
	if err != nil {
		log.Fatalf("svpp: %v", err)
	}
	for name, body := range cliDefines {
		predefines.Define(name, body)
	}
	allSearchPaths = append(allSearchPaths, searchPaths...)

	out, err := preprocess.Preprocess(ctx, fs, root, predefines, allSearchPaths)
	if err != nil {
		log.Fatalf("svpp: %v", err)
	}

	if *originPos < 0 {
		fmt.Print(out.Text())
		return
	}
	path, pos, ok := out.Origin(uint64(*originPos))
	if !ok {
		fmt.Fprintf(os.Stderr, "no origin recorded for output position %s\n", strconv.FormatInt(*originPos, 10))
		os.Exit(1)
	}
	fmt.Printf("%s:%d\n", path, pos)
}
