package main

import (
	"context"
	"os"

	"github.com/everfront/injectrc/cmd/injectrc/commands"
	"github.com/everfront/injectrc/pkg/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Create user logger
	userLogger := report.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "injectrc",
		Short: "A tool for injecting a fixed HTML fragment into marked files",
		Long: `injectrc walks a directory tree of HTML files and splices a fixed
markup fragment immediately after the first anchor tag in every file that
carries the marker class, skipping files that were already patched. The
whole operation is idempotent and safe to re-run.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands; config loading is deferred to command run time so that
	// --config has been parsed by then.
	rootCmd.AddCommand(
		commands.NewInjectCmd(newRootOpts),
		commands.NewStatusCmd(newRootOpts),
		commands.NewVersionCmd(FormatVersion),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
