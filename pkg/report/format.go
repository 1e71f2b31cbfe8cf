package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// separatorWidth matches the rule printed around the run body.
const separatorWidth = 60

// FileFormatter defines how per-file results and the run summary are rendered
type FileFormatter interface {
	// FormatResult formats a single per-file status line
	FormatResult(r Result) string

	// FormatSummary formats the end-of-run summary block
	FormatSummary(s Summary) string

	// FormatSeparator formats the horizontal rule around the run body
	FormatSeparator() string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats a result with a leading colored symbol
func (f *DefaultFileFormatter) FormatResult(r Result) string {
	switch r.Status {
	case StatusPatched:
		return fmt.Sprintf("%s %s: %s", color.New(color.FgGreen).Sprint("✓"), r.Path, r.Reason)
	case StatusPlanned:
		return fmt.Sprintf("%s %s: %s", color.New(color.FgCyan).Sprint("~"), r.Path, r.Reason)
	case StatusFailed:
		return fmt.Sprintf("%s %s: %s", color.New(color.FgRed).Sprint("✗"), r.Path, r.Reason)
	default:
		return fmt.Sprintf("%s %s: %s", color.New(color.FgYellow).Sprint("-"), r.Path, r.Reason)
	}
}

// FormatSummary formats the three-counter summary block
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	var b strings.Builder
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  %s Patched: %d\n", color.New(color.FgGreen).Sprint("✓"), s.Patched)
	fmt.Fprintf(&b, "  %s Skipped: %d\n", color.New(color.FgYellow).Sprint("-"), s.Skipped)
	fmt.Fprintf(&b, "  %s Failed:  %d", color.New(color.FgRed).Sprint("✗"), s.Failed)
	return b.String()
}

// FormatSeparator formats the horizontal rule
func (f *DefaultFileFormatter) FormatSeparator() string {
	return strings.Repeat("=", separatorWidth)
}
