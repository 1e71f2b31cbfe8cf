// Package inject orchestrates a run: discover candidate files, process each
// one strictly in sequence, and report the aggregate outcome.
package inject

import (
	"context"

	"github.com/everfront/injectrc/pkg/config"
	"github.com/everfront/injectrc/pkg/report"
	"github.com/everfront/injectrc/pkg/scan"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRunHadFailures is returned by Execute when at least one file failed.
// The run itself still completes; callers use this to exit non-zero.
var ErrRunHadFailures = errors.New("run completed with failures")

// 🎯 Operation is a unit of work executed by the Runner.
type Operation interface {
	// Execute runs the operation to completion.
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies of an injection operation.
type Options struct {
	// Config is the injectrc configuration
	Config *config.Config
	// Reporter aggregates and prints per-file outcomes
	Reporter *report.Manager
	// UserLogger emits run-level feedback
	UserLogger *report.UserLogger
}

// 🏭 NewInjectOperation creates the injection operation with the given options
func NewInjectOperation(opts Options) (Operation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	if opts.UserLogger == nil {
		return nil, errors.Errorf("user logger is required")
	}
	return &injectOperation{
		cfg:      opts.Config,
		reporter: opts.Reporter,
		user:     opts.UserLogger,
	}, nil
}

// 🎮 injectOperation implements Operation
type injectOperation struct {
	cfg      *config.Config
	reporter *report.Manager
	user     *report.UserLogger
}

// 🏃 Execute runs the full discover/process/report pipeline. Files are
// processed one at a time; per-file failures are recorded and the run
// continues with the next file.
func (op *injectOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Stringer("config", op.cfg).Msg("starting injection run")

	op.user.LogRunStart(op.cfg.Root, op.cfg.DryRun)

	files, err := scan.Discover(ctx, op.cfg.Root, op.cfg.Extension, op.cfg.IgnoreGlobs)
	if err != nil {
		return errors.Errorf("discovering files: %w", err)
	}

	op.reporter.StartRun(ctx, len(files), op.cfg.Extension)

	proc := NewProcessor(op.cfg)
	for _, file := range files {
		op.reporter.Track(ctx, proc.ProcessFile(ctx, file))
	}

	op.reporter.FinishRun(ctx)

	summary := op.reporter.Summary()
	op.user.LogRunEnd(summary)

	if summary.Failed > 0 {
		return errors.Errorf("%w: %d of %d files failed", ErrRunHadFailures, summary.Failed, summary.Total())
	}
	return nil
}
