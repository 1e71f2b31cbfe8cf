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

package inject

import (
	"context"
	"os"

	"github.com/everfront/injectrc/pkg/config"
	"github.com/everfront/injectrc/pkg/patch"
	"github.com/everfront/injectrc/pkg/report"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Reasons recorded on loud results.
const (
	reasonPatched       = "added fragment"
	reasonWouldPatch    = "would add fragment"
	reasonAnchorMissing = "could not find anchor tag"
)

// 📄 Processor runs the per-file state machine: read, classify, locate,
// patch, write. Every per-file error is converted into a failed Result;
// nothing a single file does can abort the run.
type Processor struct {
	cfg *config.Config
}

// 🏭 NewProcessor creates a new processor for the given config.
func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{cfg: cfg}
}

// 🏃 ProcessFile processes a single file and returns its outcome. At most
// one write happens, and only on the success path.
func (p *Processor) ProcessFile(ctx context.Context, path string) report.Result {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("processing file")

	data, err := os.ReadFile(path)
	if err != nil {
		return report.Result{
			Path:   path,
			Status: report.StatusFailed,
			Reason: "read failed: " + err.Error(),
			Err:    errors.Errorf("reading %s: %w", path, err),
		}
	}
	content := string(data)

	switch patch.Classify(content, p.cfg.Marker, p.cfg.FragmentGuard) {
	case patch.SkipNoMarker:
		return report.Result{Path: path, Status: report.StatusSkipped, Reason: report.ReasonNoMarker}
	case patch.SkipAlreadyPatched:
		return report.Result{Path: path, Status: report.StatusSkipped, Reason: report.ReasonAlreadyPatched}
	}

	offset, found := patch.LocateAnchor(content, p.cfg.Anchor)
	if !found {
		return report.Result{
			Path:   path,
			Status: report.StatusFailed,
			Reason: reasonAnchorMissing,
			Err:    errors.Errorf("no %s anchor in %s", p.cfg.Anchor, path),
		}
	}

	if p.cfg.DryRun {
		return report.Result{Path: path, Status: report.StatusPlanned, Reason: reasonWouldPatch}
	}

	patched := patch.Apply(content, offset, p.cfg.Fragment)

	if err := writeFileAtomic(path, []byte(patched)); err != nil {
		return report.Result{
			Path:   path,
			Status: report.StatusFailed,
			Reason: "write failed: " + err.Error(),
			Err:    errors.Errorf("writing %s: %w", path, err),
		}
	}

	return report.Result{Path: path, Status: report.StatusPatched, Reason: reasonPatched}
}

// 💾 writeFileAtomic writes content to a temp file next to path and renames
// it into place, so a crash mid-write never leaves a truncated file. The
// original file's permission bits are preserved.
func writeFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, mode); err != nil {
		os.Remove(tempPath) // Clean up partial temp file
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
