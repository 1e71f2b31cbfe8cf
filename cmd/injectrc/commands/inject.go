package commands

import (
	"github.com/everfront/injectrc/cmd/injectrc/opts"
	"github.com/everfront/injectrc/pkg/inject"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewInjectCmd creates a new inject command
func NewInjectCmd(newOpts opts.Factory) *cobra.Command {
	var (
		root   string
		dryRun bool
		async  bool
	)

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Inject the fragment into every qualifying file",
		Long: `Inject walks the configured root directory, finds files carrying the
marker class, and splices the configured fragment immediately after the
first anchor tag. It will:
1. Discover files matching the configured extension, sorted by path
2. Skip files without the marker or with the fragment already present
3. Write patched content back atomically
4. Print one status line per patched or failed file plus a summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "inject").Logger().WithContext(ctx)

			o, err := newOpts(ctx)
			if err != nil {
				return err
			}
			if root != "" {
				o.Config.Root = root
			}
			if dryRun {
				o.Config.DryRun = true
			}

			op, err := inject.NewInjectOperation(inject.Options{
				Config:     o.Config,
				Reporter:   o.Reporter,
				UserLogger: o.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			runner := inject.NewRunner(zerolog.Ctx(ctx), async)
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("injecting fragment: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "override the configured root directory")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "classify and locate only, write nothing")
	cmd.Flags().BoolVar(&async, "async", false, "run the operation asynchronously")

	return cmd
}
