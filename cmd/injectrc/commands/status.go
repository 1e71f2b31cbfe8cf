package commands

import (
	"fmt"

	"github.com/everfront/injectrc/cmd/injectrc/opts"
	"github.com/everfront/injectrc/pkg/inject"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(newOpts opts.Factory) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report what a run would change, without writing",
		Long: `Status performs the same discovery and classification as inject but
never writes. It prints the files that would be patched and a breakdown of
why the rest would be skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			o, err := newOpts(ctx)
			if err != nil {
				return err
			}
			if root != "" {
				o.Config.Root = root
			}
			o.Config.DryRun = true

			op, err := inject.NewInjectOperation(inject.Options{
				Config:     o.Config,
				Reporter:   o.Reporter,
				UserLogger: o.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			// Per-file failures (e.g. marker present but no anchor) are part
			// of the report, not a reason for status itself to fail.
			if err := op.Execute(ctx); err != nil && !errors.Is(err, inject.ErrRunHadFailures) {
				return errors.Errorf("checking status: %w", err)
			}

			s := o.Reporter.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "Skip breakdown: %d without marker, %d already patched\n",
				s.NoMarker, s.AlreadyPatched)

			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "override the configured root directory")

	return cmd
}
