package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/ordercopy/cmd/ordercopy/commands"
	"github.com/walteh/ordercopy/cmd/ordercopy/opts"
	"github.com/walteh/ordercopy/pkg/log"
)

// newRootCmd creates the ordercopy command tree
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "ordercopy",
		Short: "List files and copy them in a chosen order",
		Long: `ordercopy lists a directory, lets you pick and order files, and copies them
into a destination one at a time, in that order. A run stops at the first
failure and reports which file it stopped at.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(setupLogging(cmd, rootOpts))
			return nil
		},
	}

	// Add shared flags
	addRootFlags(cmd, rootOpts)

	// Add commands
	cmd.AddCommand(
		commands.NewListCmd(rootOpts),
		commands.NewPlanCmd(rootOpts),
		commands.NewCopyCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog and the console loggers based on flags
func setupLogging(cmd *cobra.Command, rootOpts *opts.RootOpts) context.Context {
	level := zerolog.InfoLevel
	if rootOpts.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = zlog.WithContext(ctx)

	rootOpts.Console = cmd.OutOrStdout()
	rootOpts.Logger = log.New(rootOpts.Console, level)
	rootOpts.UserLogger = log.NewUserLogger(ctx).WithWriter(rootOpts.Console)

	return log.NewContext(ctx, rootOpts.Logger)
}
