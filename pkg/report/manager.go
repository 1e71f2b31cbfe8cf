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

package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Manager tracks per-file results and writes the human-readable run
// report to a console writer. Patched and failed files get one line each;
// skips are aggregated silently to keep the output quiet on large corpora.
type Manager struct {
	console   io.Writer
	formatter FileFormatter

	mu      sync.RWMutex
	results map[string]Result
	summary Summary
}

// 🏭 NewManager creates a new report manager
func NewManager(console io.Writer, formatter FileFormatter) *Manager {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Manager{
		console:   console,
		formatter: formatter,
		results:   make(map[string]Result),
	}
}

// 📝 Track records a result and prints its status line when it is loud
// (patched, planned, or failed).
func (m *Manager) Track(ctx context.Context, r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[r.Path] = r

	switch r.Status {
	case StatusPatched, StatusPlanned:
		m.summary.Patched++
		fmt.Fprintln(m.console, m.formatter.FormatResult(r))
	case StatusSkipped:
		m.summary.Skipped++
		switch r.Reason {
		case ReasonNoMarker:
			m.summary.NoMarker++
		case ReasonAlreadyPatched:
			m.summary.AlreadyPatched++
		}
	case StatusFailed:
		m.summary.Failed++
		fmt.Fprintln(m.console, m.formatter.FormatResult(r))
	}

	ev := zerolog.Ctx(ctx).Info().
		Str("path", r.Path).
		Str("status", r.Status.String()).
		Str("reason", r.Reason)
	if r.Err != nil {
		ev = ev.Err(r.Err)
	}
	ev.Msg("file processed")
}

// Reasons recorded on skip results. The manager keys its per-reason
// counters off these, so the processor must use them verbatim.
const (
	ReasonNoMarker       = "no marker found"
	ReasonAlreadyPatched = "fragment already exists"
)

// 🔍 GetResult returns the tracked result for a path.
func (m *Manager) GetResult(path string) (Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.results[path]
	if !ok {
		return Result{}, errors.Errorf("file not tracked: %s", path)
	}
	return r, nil
}

// 📈 Summary returns a copy of the aggregate counters.
func (m *Manager) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary
}

// 📰 StartRun prints the run header: the discovered file count, labeled
// with the scanned extension, and the opening separator.
func (m *Manager) StartRun(ctx context.Context, total int, ext string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	label := strings.ToUpper(strings.TrimPrefix(ext, "."))
	if label != "" {
		label += " "
	}
	fmt.Fprintf(m.console, "Found %d %sfiles\n", total, label)
	fmt.Fprintln(m.console, m.formatter.FormatSeparator())

	zerolog.Ctx(ctx).Info().Int("total", total).Str("ext", ext).Msg("run started")
}

// 🏁 FinishRun prints the closing separator and the summary block.
func (m *Manager) FinishRun(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fmt.Fprintln(m.console, m.formatter.FormatSeparator())
	fmt.Fprintln(m.console, m.formatter.FormatSummary(m.summary))

	zerolog.Ctx(ctx).Info().
		Int("patched", m.summary.Patched).
		Int("skipped", m.summary.Skipped).
		Int("failed", m.summary.Failed).
		Msg("run complete")
}
