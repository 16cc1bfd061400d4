package commands

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/cmd/ordercopy/opts"
	"github.com/walteh/ordercopy/pkg/config"
	"github.com/walteh/ordercopy/pkg/copier"
	"github.com/walteh/ordercopy/pkg/operation"
	"github.com/walteh/ordercopy/pkg/selection"
	"github.com/walteh/ordercopy/pkg/status"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		planFile  string
		dest      string
		overwrite bool
		number    bool
		async     bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "copy [--plan FILE | --dest DIR SRC...]",
		Short: "Copy files into a directory in order",
		Long: `Copy copies files one at a time, in order, and stops at the first failure.
The order comes from a plan file (--plan) or from the order of the SRC
arguments (--dest). The command fails when any file could not be copied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "copy").Logger().WithContext(ctx)

			var req copier.Request
			switch {
			case planFile != "" && (dest != "" || len(args) > 0):
				return errors.Errorf("--plan cannot be combined with --dest or SRC arguments")
			case planFile != "":
				cfg, err := config.Load(ctx, planFile)
				if err != nil {
					return errors.Errorf("loading plan: %w", err)
				}
				if cfg.Copy == nil {
					return errors.Errorf("plan %s has no copy section", planFile)
				}
				req = cfg.Copy.Request()
				if cmd.Flags().Changed("overwrite") {
					req.Overwrite = overwrite
				}
			case dest != "":
				sel := selection.New()
				for _, arg := range args {
					abs, err := filepath.Abs(arg)
					if err != nil {
						return errors.Errorf("resolving %s: %w", arg, err)
					}
					if !sel.Add(abs) {
						return errors.Errorf("%s is listed more than once", arg)
					}
				}
				if number {
					sel.Number(selection.NumberingOptions{})
				}
				req = sel.Request(dest, overwrite)
			default:
				return errors.Errorf("either --plan or --dest is required")
			}

			rec := status.NewRecorder()
			sink := status.Tee(rec, status.LogSink(ctx))
			if !asJSON {
				progress := copier.SinkFunc(func(ev copier.ProgressEvent) {
					if ev.Stage == copier.StageDone {
						opts.Logger.LogProgress(rec.Progress())
					}
				})
				sink = status.Tee(sink, opts.Logger, progress)
				opts.Logger.StartCopy(ctx, req)
			}

			op := operation.NewCopyOperation(req, sink)
			runErr := operation.NewRunner(nil, async).Run(ctx, op)

			sum, ran := op.Summary()
			if ran {
				if asJSON {
					if err := writeJSON(cmd.OutOrStdout(), sum); err != nil {
						return err
					}
				} else {
					opts.Logger.EndCopy(ctx, sum)
					if fail, ok := rec.Failure(); ok {
						opts.Logger.Errorf("%s: %s", fail.Src, fail.Message)
					} else if sum.OK() {
						opts.Logger.Successf("%d files in %s", sum.Copied, req.Dest)
					}
				}
			}

			if runErr != nil {
				if fail, ok := rec.Failure(); ok {
					return errors.Errorf("copy stopped at item %d of %d: %w", fail.Index, fail.Total, runErr)
				}
				return errors.Errorf("copying files: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&planFile, "plan", "p", "", "plan file to run")
	cmd.Flags().StringVar(&dest, "dest", "", "destination directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing files")
	cmd.Flags().BoolVarP(&number, "number", "n", false, "prefix target names with their order, e.g. 001_")
	cmd.Flags().BoolVar(&async, "async", false, "run through the async runner, returning as soon as ctx is cancelled")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}
