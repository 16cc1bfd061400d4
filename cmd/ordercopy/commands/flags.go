package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/pkg/lister"
)

// listFlags are shared by list and plan
type listFlags struct {
	recursive   bool
	includeDirs bool
	filter      string
	sortBy      string
	desc        bool
	exclude     []string
}

func addListFlags(cmd *cobra.Command, f *listFlags) {
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().BoolVar(&f.includeDirs, "dirs", false, "include directories in the listing")
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "keep names containing this text (case-insensitive)")
	cmd.Flags().StringVarP(&f.sortBy, "sort", "s", "name", "sort key: name, size or modTime")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().StringArrayVarP(&f.exclude, "exclude", "x", nil, "skip paths matching this glob (repeatable)")
}

func (f *listFlags) options(dir string) (lister.Options, error) {
	key, ok := lister.ParseSortKey(f.sortBy)
	if !ok {
		return lister.Options{}, errors.Errorf("unknown sort key %q: want name, size or modTime", f.sortBy)
	}
	return lister.Options{
		Dir:         dir,
		Recursive:   f.recursive,
		IncludeDirs: f.includeDirs,
		FilterText:  f.filter,
		SortBy:      key,
		Desc:        f.desc,
		Exclude:     f.exclude,
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Errorf("encoding JSON: %w", err)
	}
	return nil
}
