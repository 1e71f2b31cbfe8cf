package inject

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/everfront/injectrc/pkg/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOperation builds an operation over root with a buffer console.
func newTestOperation(t *testing.T, root string, dryRun bool) (Operation, *report.Manager, *bytes.Buffer) {
	t.Helper()

	cfg := testConfig(root)
	cfg.DryRun = dryRun

	var console bytes.Buffer
	reporter := report.NewManager(&console, report.NewDefaultFileFormatter())

	op, err := NewInjectOperation(Options{
		Config:     cfg,
		Reporter:   reporter,
		UserLogger: report.NewUserLogger(testContext(t)),
	})
	require.NoError(t, err)

	return op, reporter, &console
}

func writeCorpus(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"eligible.html": `<html><header class="ef-header">x</header><body></body></html>`,
		"plain.html":    `<html><header class="other">x</header></html>`,
		"broken.html":   `<html><div class="ef-header">x</div></html>`,
		"done.html":     `<html><header class="ef-header">x</header><div id="notification-dropdown"></div></html>`,
		"notes.txt":     `ef-header but wrong extension`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir)

	op, reporter, console := newTestOperation(t, dir, false)

	err := op.Execute(testContext(t))
	require.Error(t, err, "one file has no anchor")
	assert.True(t, errors.Is(err, ErrRunHadFailures))

	s := reporter.Summary()
	assert.Equal(t, 1, s.Patched)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.NoMarker)
	assert.Equal(t, 1, s.AlreadyPatched)

	out := console.String()
	assert.Contains(t, out, "eligible.html")
	assert.Contains(t, out, "broken.html")
	assert.NotContains(t, out, "plain.html", "skips are aggregated silently")
	assert.NotContains(t, out, "done.html")
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "Found 4 HTML files")
}

func TestExecute_Idempotence(t *testing.T) {
	dir := t.TempDir()
	input := `<html><header class="ef-header">x</header><body></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte(input), 0644))

	op1, reporter1, _ := newTestOperation(t, dir, false)
	require.NoError(t, op1.Execute(testContext(t)))
	assert.Equal(t, 1, reporter1.Summary().Patched)

	afterFirst := readFile(t, filepath.Join(dir, "page.html"))

	op2, reporter2, _ := newTestOperation(t, dir, false)
	require.NoError(t, op2.Execute(testContext(t)))

	s := reporter2.Summary()
	assert.Equal(t, 0, s.Patched, "second run modifies nothing")
	assert.Equal(t, 1, s.AlreadyPatched)
	assert.Equal(t, afterFirst, readFile(t, filepath.Join(dir, "page.html")))
}

func TestExecute_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := `<html><header class="ef-header">x</header></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte(input), 0644))

	op, reporter, console := newTestOperation(t, dir, true)
	require.NoError(t, op.Execute(testContext(t)))

	assert.Equal(t, 1, reporter.Summary().Patched)
	assert.Contains(t, console.String(), "would add fragment")
	assert.Equal(t, input, readFile(t, filepath.Join(dir, "page.html")))
}

func TestExecute_MissingRoot(t *testing.T) {
	op, _, _ := newTestOperation(t, filepath.Join(t.TempDir(), "nope"), false)

	err := op.Execute(testContext(t))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRunHadFailures), "discovery failure is not a per-file failure")
}

func TestNewInjectOperation_Validation(t *testing.T) {
	reporter := report.NewManager(&bytes.Buffer{}, nil)
	user := report.NewUserLogger(testContext(t))
	cfg := testConfig(t.TempDir())

	tests := []struct {
		name      string
		opts      Options
		wantError string
	}{
		{
			name:      "missing_config",
			opts:      Options{Reporter: reporter, UserLogger: user},
			wantError: "config is required",
		},
		{
			name:      "missing_reporter",
			opts:      Options{Config: cfg, UserLogger: user},
			wantError: "reporter is required",
		},
		{
			name:      "missing_user_logger",
			opts:      Options{Config: cfg, Reporter: reporter},
			wantError: "user logger is required",
		},
		{
			name: "valid",
			opts: Options{Config: cfg, Reporter: reporter, UserLogger: user},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInjectOperation(tt.opts)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRunner(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"),
		[]byte(`<header class="ef-header"></header>`), 0644))

	for _, async := range []bool{false, true} {
		op, reporter, _ := newTestOperation(t, dir, true)

		logger := zerolog.New(zerolog.TestWriter{T: t})
		runner := NewRunner(&logger, async)

		require.NoError(t, runner.Run(testContext(t), op))
		assert.Equal(t, 1, reporter.Summary().Patched)
	}
}
