package selection

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/pkg/lister"
)

// 🔍 SelectGlob returns the file records matching any pattern, in listing order.
// Patterns use doublestar syntax and match the slash-separated relative path.
// No patterns selects every file.
func SelectGlob(records []lister.FileRecord, patterns ...string) ([]lister.FileRecord, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid select pattern %q", pattern)
		}
	}

	out := make([]lister.FileRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsDir {
			continue
		}
		if len(patterns) == 0 || matchAny(patterns, recordPath(rec)) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func recordPath(rec lister.FileRecord) string {
	if rec.RelPath != "" {
		return filepath.ToSlash(rec.RelPath)
	}
	return rec.Name
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		// patterns were validated above
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
