package opts

import (
	"context"

	"github.com/everfront/injectrc/pkg/config"
	"github.com/everfront/injectrc/pkg/report"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Reporter   *report.Manager
	UserLogger *report.UserLogger
}

// Factory builds RootOpts after flags have been parsed
type Factory func(ctx context.Context) (*RootOpts, error)
