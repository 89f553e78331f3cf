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

// Package config loads the YAML project file the batch and single-file
// preprocessor binaries accept as an alternative to repeating flags:
// predefines, search paths, and (for cmd/svpp-batch) the glob of root files
// to expand.
package config

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hdl-tools/svpp/internal/sv/macros"
	"github.com/hdl-tools/svpp/internal/sv/resolve"
)

// Config is the on-disk project configuration shape.
type Config struct {
	// Predefines lists `-D`-style macro definitions, e.g. "WIDTH=32" or a
	// bare "SIMULATION" with no body.
	Predefines []string `yaml:"predefines"`
	// SearchPaths lists include search roots, probed in order.
	SearchPaths []string `yaml:"search_paths"`
	// Globs lists doublestar patterns identifying root compilation units
	// for cmd/svpp-batch. Unused by cmd/svpp, which takes its root path
	// positionally.
	Globs []string `yaml:"globs"`
}

// Load reads and parses the YAML config file at path.
func Load(ctx context.Context, fs resolve.Filesystem, path string) (*Config, error) {
	raw, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("sv/config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("sv/config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Predefine parses Config.Predefines into a macro table, collecting every
// malformed entry via the same multi-error aggregation ParsePredefines uses.
func (c *Config) Predefine() (macros.Table, error) {
	return macros.ParsePredefines(c.Predefines)
}
