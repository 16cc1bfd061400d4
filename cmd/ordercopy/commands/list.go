package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/cmd/ordercopy/opts"
	"github.com/walteh/ordercopy/pkg/operation"
)

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		flags  listFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list DIR",
		Short: "List files in a directory",
		Long: `List prints the files in DIR, optionally recursing, filtering by name
and sorting by name, size or modification time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "list").Logger().WithContext(ctx)

			listOpts, err := flags.options(args[0])
			if err != nil {
				return err
			}

			op := operation.NewListOperation(listOpts)
			if err := operation.NewRunner(nil, false).Run(ctx, op); err != nil {
				return errors.Errorf("listing files: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), op.Records())
			}
			opts.Logger.LogListing(ctx, args[0], op.Records())
			return nil
		},
	}

	addListFlags(cmd, &flags)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}
