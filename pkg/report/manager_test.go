package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestManager_Track(t *testing.T) {
	disableColor(t)
	ctx := testContext(t)

	var console bytes.Buffer
	m := NewManager(&console, nil)

	m.Track(ctx, Result{Path: "a.html", Status: StatusPatched, Reason: "added fragment"})
	m.Track(ctx, Result{Path: "b.html", Status: StatusSkipped, Reason: ReasonNoMarker})
	m.Track(ctx, Result{Path: "c.html", Status: StatusSkipped, Reason: ReasonAlreadyPatched})
	m.Track(ctx, Result{Path: "d.html", Status: StatusFailed, Reason: "could not find anchor tag"})

	s := m.Summary()
	assert.Equal(t, 1, s.Patched)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.NoMarker)
	assert.Equal(t, 1, s.AlreadyPatched)
	assert.Equal(t, 4, s.Total())

	out := console.String()
	assert.Contains(t, out, "a.html")
	assert.Contains(t, out, "d.html")
	assert.NotContains(t, out, "b.html", "skips print nothing")
	assert.NotContains(t, out, "c.html")
}

func TestManager_GetResult(t *testing.T) {
	ctx := testContext(t)
	m := NewManager(&bytes.Buffer{}, nil)

	m.Track(ctx, Result{Path: "a.html", Status: StatusSkipped, Reason: ReasonNoMarker})

	r, err := m.GetResult("a.html")
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, r.Status)

	_, err = m.GetResult("missing.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not tracked")
}

func TestManager_RunOutput(t *testing.T) {
	disableColor(t)
	ctx := testContext(t)

	var console bytes.Buffer
	m := NewManager(&console, nil)

	m.StartRun(ctx, 2, ".html")
	m.Track(ctx, Result{Path: "a.html", Status: StatusPatched, Reason: "added fragment"})
	m.Track(ctx, Result{Path: "b.html", Status: StatusSkipped, Reason: ReasonNoMarker})
	m.FinishRun(ctx)

	out := console.String()
	assert.Contains(t, out, "Found 2 HTML files")
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "✓ Patched: 1")
	assert.Contains(t, out, "- Skipped: 1")
	assert.Contains(t, out, "✗ Failed:  0")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "patched", StatusPatched.String())
	assert.Equal(t, "planned", StatusPlanned.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
