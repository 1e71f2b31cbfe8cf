package report

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestFormatResult(t *testing.T) {
	disableColor(t)
	f := NewDefaultFileFormatter()

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "patched",
			result: Result{Path: "public/a.html", Status: StatusPatched, Reason: "added fragment"},
			want:   "✓ public/a.html: added fragment",
		},
		{
			name:   "planned",
			result: Result{Path: "public/a.html", Status: StatusPlanned, Reason: "would add fragment"},
			want:   "~ public/a.html: would add fragment",
		},
		{
			name:   "failed",
			result: Result{Path: "public/b.html", Status: StatusFailed, Reason: "could not find anchor tag"},
			want:   "✗ public/b.html: could not find anchor tag",
		},
		{
			name:   "skipped",
			result: Result{Path: "public/c.html", Status: StatusSkipped, Reason: ReasonNoMarker},
			want:   "- public/c.html: " + ReasonNoMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatResult(tt.result))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	disableColor(t)
	f := NewDefaultFileFormatter()

	got := f.FormatSummary(Summary{Patched: 3, Skipped: 10, Failed: 1})

	assert.Contains(t, got, "Summary:")
	assert.Contains(t, got, "✓ Patched: 3")
	assert.Contains(t, got, "- Skipped: 10")
	assert.Contains(t, got, "✗ Failed:  1")
}

func TestFormatSeparator(t *testing.T) {
	f := NewDefaultFileFormatter()
	assert.Equal(t, strings.Repeat("=", separatorWidth), f.FormatSeparator())
}
