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

// Command svpp-batch preprocesses every root file matching a project
// config's globs, concurrently, and reports a pass/fail summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hdl-tools/svpp/internal/sv/batch"
	"github.com/hdl-tools/svpp/internal/sv/config"
	"github.com/hdl-tools/svpp/internal/sv/fsadapter"
)

func main() {
	configPath := flag.String("config", "svpp.yaml", "project config listing predefines, search_paths, and globs")
	root := flag.String("root", ".", "directory to walk for glob candidates")
	concurrency := flag.Int("concurrency", batch.DefaultConcurrency, "maximum number of compilation units preprocessed at once")
	flag.Parse()

	ctx := context.Background()
	osFS := fsadapter.New()

	cfg, err := config.Load(ctx, osFS, *configPath)
	if err != nil {
		log.Fatalf("svpp-batch: %v", err)
	}
	if len(cfg.Globs) == 0 {
		log.Fatalf("svpp-batch: config %s has no globs", *configPath)
	}
	predefines, err := cfg.Predefine()
	if err != nil {
		log.Fatalf("svpp-batch: %v", err)
	}

	var candidates []string
	err = filepath.WalkDir(*root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("svpp-batch: walking %s: %v", *root, err)
	}

	roots := batch.Match(candidates, cfg.Globs)
	if len(roots) == 0 {
		log.Printf("svpp-batch: no files under %s matched %v", *root, cfg.Globs)
		return
	}

	results := batch.SortedByPath(batch.Run(ctx, osFS, roots, predefines, cfg.SearchPaths, *concurrency))
	failures := batch.Failed(results)
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("OK   %s (%d bytes)\n", r.Path, r.Text.Len())
	}
	if len(failures) > 0 {
		log.Fatalf("svpp-batch: %d/%d units failed", len(failures), len(results))
	}
}
