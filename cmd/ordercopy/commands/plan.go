package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/cmd/ordercopy/opts"
	"github.com/walteh/ordercopy/pkg/log"
	"github.com/walteh/ordercopy/pkg/operation"
	"github.com/walteh/ordercopy/pkg/selection"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		flags       listFlags
		dest        string
		selects     []string
		number      bool
		numberWidth int
		overwrite   bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "plan DIR",
		Short: "Write a copy plan from a directory listing",
		Long: `Plan lists DIR, keeps the files matching --select, and writes a plan file
whose copy order follows the listing order. Edit the file to reorder or
rename, then run it with "ordercopy copy --plan".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "plan").Logger().WithContext(ctx)

			listOpts, err := flags.options(args[0])
			if err != nil {
				return err
			}

			planOpts := operation.PlanOptions{
				List:      listOpts,
				Select:    selects,
				Dest:      dest,
				Overwrite: overwrite,
				Output:    output,
			}
			if number {
				planOpts.Numbering = &selection.NumberingOptions{Width: numberWidth}
			}

			op := operation.NewPlanOperation(planOpts)
			if err := operation.NewRunner(nil, false).Run(ctx, op); err != nil {
				return errors.Errorf("planning copy: %w", err)
			}

			for _, rec := range op.Skipped() {
				opts.UserLogger.LogFileChange(log.FileChange{Type: log.FileSkipped, Path: rec.FullPath, Description: "not selected"})
			}

			items := op.Plan().Copy.Items
			if len(items) == 0 {
				opts.Logger.Warningf("no files in %s matched, the plan has no items", args[0])
			}
			for _, item := range items {
				desc := fmt.Sprintf("#%d", item.Order)
				if item.NewName != "" {
					desc += " as " + item.NewName
				}
				opts.UserLogger.LogFileChange(log.FileChange{Type: log.FilePlanned, Path: item.Src, Description: desc})
			}
			opts.UserLogger.LogStateChange(fmt.Sprintf("wrote %s with %d items", output, len(items)))
			return nil
		},
	}

	addListFlags(cmd, &flags)
	cmd.Flags().StringVar(&dest, "dest", "", "destination directory for the copy")
	cmd.Flags().StringArrayVar(&selects, "select", nil, "only plan files matching this glob (repeatable)")
	cmd.Flags().BoolVarP(&number, "number", "n", false, "prefix target names with their order, e.g. 001_")
	cmd.Flags().IntVar(&numberWidth, "number-width", 0, "digits in the order prefix, 0 picks at least 3")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing files when the plan runs")
	cmd.Flags().StringVarP(&output, "output", "o", "plan.yaml", "plan file to write (.yaml, .json or .hcl)")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}
