// Copyright 2025 everfront LLC
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

// Package scan enumerates the candidate files for a run.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Discover walks root recursively and returns every regular file whose
// name ends in ext (case-insensitive), excluding paths matched by any of
// the ignore globs. The result is sorted lexicographically by full path so
// runs are reproducible. A missing or unreadable root is an explicit error,
// never an empty result.
func Discover(ctx context.Context, root, ext string, ignoreGlobs []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("root", root).Str("ext", ext).Msg("discovering files")

	ext = strings.ToLower(ext)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		ignored, err := isIgnored(filepath.ToSlash(rel), ignoreGlobs)
		if err != nil {
			return err
		}
		if ignored {
			logger.Debug().Str("path", path).Msg("ignored by glob")
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", root, err)
	}

	sort.Strings(files)

	logger.Debug().Int("count", len(files)).Msg("discovery complete")
	return files, nil
}

// isIgnored matches rel (slash-separated, relative to root) against the
// ignore globs.
func isIgnored(rel string, globs []string) (bool, error) {
	for _, g := range globs {
		matched, err := doublestar.Match(g, rel)
		if err != nil {
			return false, errors.Errorf("bad ignore glob %q: %w", g, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
