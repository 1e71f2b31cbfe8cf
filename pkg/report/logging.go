package report

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides run-level feedback that sits above the per-file
// report lines: headers, completion notices, and hard failures.
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📰 LogRunStart announces the start of a run over the given root.
func (u *UserLogger) LogRunStart(root string, dryRun bool) {
	msg := fmt.Sprintf("Injecting fragment under %s", root)
	if dryRun {
		msg += " (dry run)"
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	u.log.Info().Str("root", root).Bool("dry_run", dryRun).Msg("run starting")
}

// 🏁 LogRunEnd announces the outcome of a run.
func (u *UserLogger) LogRunEnd(s Summary) {
	msg := fmt.Sprintf("Done: %d patched, %d skipped, %d failed", s.Patched, s.Skipped, s.Failed)
	if s.Failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Int("failed", s.Failed).Msg(msg)
		return
	}
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
	u.log.Info().Msg(msg)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	}
}
