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

// Package fsadapter implements internal/sv/resolve.Filesystem over
// github.com/viant/afs, so the preprocessor can read sources from the local
// disk or any other storage scheme afs supports (s3://, gs://, ...) without
// the core ever depending on afs directly.
package fsadapter

import (
	"context"
	"fmt"

	"github.com/viant/afs"
)

// FS adapts an afs.Service to the resolve.Filesystem interface.
type FS struct {
	service afs.Service
}

// New returns an FS backed by a fresh afs.Service.
func New() *FS {
	return &FS{service: afs.New()}
}

// NewWithService wraps an existing afs.Service, useful for tests that inject
// a mem:// or mock service.
func NewWithService(service afs.Service) *FS {
	return &FS{service: service}
}

// ReadFile downloads the full content at path.
func (f *FS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := f.service.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("sv/fsadapter: read %s: %w", path, err)
	}
	return content, nil
}

// Exists reports whether path exists, treating any error from the
// underlying service as "does not exist" since resolve.Resolve only ever
// uses Exists to decide between otherwise-equally-valid candidate paths.
func (f *FS) Exists(ctx context.Context, path string) bool {
	ok, err := f.service.Exists(ctx, path)
	if err != nil {
		return false
	}
	return ok
}
