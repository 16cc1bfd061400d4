package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/pkg/config"
	"github.com/walteh/ordercopy/pkg/lister"
	"github.com/walteh/ordercopy/pkg/selection"
)

// 📋 PlanOptions describes how to turn a listing into a saved plan
type PlanOptions struct {
	List      lister.Options
	Select    []string                    // doublestar patterns, empty selects every file
	Numbering *selection.NumberingOptions // nil leaves names alone
	Dest      string
	Overwrite bool
	Output    string // plan file path, format by extension
}

// 📋 PlanOperation lists, selects, numbers and writes a plan file
type PlanOperation struct {
	opts    PlanOptions
	plan    *config.Config
	skipped []lister.FileRecord
}

var _ Operation = (*PlanOperation)(nil)

// NewPlanOperation creates a plan operation
func NewPlanOperation(opts PlanOptions) *PlanOperation {
	return &PlanOperation{opts: opts}
}

func (o *PlanOperation) Name() string {
	return "plan " + o.opts.Output
}

// Execute builds the plan and saves it. Dest and the listed directory are
// written as absolute paths, so the plan file can live anywhere.
func (o *PlanOperation) Execute(ctx context.Context) error {
	if strings.TrimSpace(o.opts.Dest) == "" {
		return errors.Errorf("dest is required")
	}
	dest, err := filepath.Abs(o.opts.Dest)
	if err != nil {
		return errors.Errorf("resolving dest %s: %w", o.opts.Dest, err)
	}

	listOpts := o.opts.List
	if strings.TrimSpace(listOpts.Dir) != "" {
		if listOpts.Dir, err = filepath.Abs(listOpts.Dir); err != nil {
			return errors.Errorf("resolving %s: %w", o.opts.List.Dir, err)
		}
	}

	records, err := lister.List(ctx, listOpts)
	if err != nil {
		return errors.Errorf("listing %s: %w", o.opts.List.Dir, err)
	}

	picked, err := selection.SelectGlob(records, o.opts.Select...)
	if err != nil {
		return errors.Errorf("selecting files: %w", err)
	}

	sel := selection.FromRecords(picked)
	if o.opts.Numbering != nil {
		sel.Number(*o.opts.Numbering)
	}

	plan := &config.Config{
		List: listArgs(listOpts),
		Copy: config.FromRequest(sel.Request(dest, o.opts.Overwrite)),
	}

	if err := config.Save(ctx, o.opts.Output, plan); err != nil {
		return errors.Errorf("saving plan: %w", err)
	}
	o.plan = plan
	o.skipped = unselected(records, picked)

	zerolog.Ctx(ctx).Debug().
		Str("output", o.opts.Output).
		Int("listed", len(records)).
		Int("selected", sel.Len()).
		Msg("plan operation complete")
	return nil
}

// Plan returns the saved plan, nil before Execute succeeds
func (o *PlanOperation) Plan() *config.Config {
	return o.plan
}

// Skipped returns the listed files that no select pattern matched
func (o *PlanOperation) Skipped() []lister.FileRecord {
	return o.skipped
}

func unselected(records, picked []lister.FileRecord) []lister.FileRecord {
	kept := make(map[string]bool, len(picked))
	for _, rec := range picked {
		kept[rec.FullPath] = true
	}
	var out []lister.FileRecord
	for _, rec := range records {
		if !rec.IsDir && !kept[rec.FullPath] {
			out = append(out, rec)
		}
	}
	return out
}

func listArgs(opts lister.Options) *config.ListArgs {
	return &config.ListArgs{
		Dir:         opts.Dir,
		Recursive:   opts.Recursive,
		IncludeDirs: opts.IncludeDirs,
		Filter:      opts.FilterText,
		SortBy:      string(opts.SortBy),
		Desc:        opts.Desc,
		Exclude:     opts.Exclude,
	}
}
