// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lister

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidDirectory is returned when the listing root is missing or not a directory.
var ErrInvalidDirectory = errors.Base("invalid directory")

// 📋 Options configures one listing call
type Options struct {
	Dir         string   `json:"dir"`
	Recursive   bool     `json:"recursive"`
	IncludeDirs bool     `json:"includeDirs"`
	FilterText  string   `json:"filterText"`
	SortBy      SortKey  `json:"sortBy"`
	Desc        bool     `json:"desc"`
	Exclude     []string `json:"exclude,omitempty"` // doublestar globs against the slash form of relPath
}

// 🔍 List enumerates the entries under opts.Dir, filters them and sorts them.
//
// Symbolic links are never followed. A link is reported as a file-like record
// carrying the metadata of the link itself.
func List(ctx context.Context, opts Options) ([]FileRecord, error) {
	logger := zerolog.Ctx(ctx)

	root, err := resolveRoot(opts.Dir)
	if err != nil {
		return nil, err
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	key, ok := ParseSortKey(string(opts.SortBy))
	if !ok {
		logger.Debug().Str("sort_by", string(opts.SortBy)).Msg("unknown sort key, sorting by name")
	}

	w := &walker{
		root:   root,
		opts:   opts,
		filter: strings.ToLower(strings.TrimSpace(opts.FilterText)),
		logger: logger,
		out:    make([]FileRecord, 0),
	}

	if opts.Recursive {
		err = w.walkRecursive()
	} else {
		err = w.walkFlat()
	}
	if err != nil {
		return nil, err
	}

	Sort(w.out, key, opts.Desc)

	logger.Debug().
		Str("root", root).
		Bool("recursive", opts.Recursive).
		Int("count", len(w.out)).
		Msg("listed directory")

	return w.out, nil
}

// resolveRoot returns the absolute, symlink-free form of dir or ErrInvalidDirectory.
func resolveRoot(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", errors.Errorf("%w: dir is required", ErrInvalidDirectory)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("%w: resolving %s: %w", ErrInvalidDirectory, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Errorf("%w: %w", ErrInvalidDirectory, err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%w: %s is not a directory", ErrInvalidDirectory, abs)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Errorf("%w: resolving links in %s: %w", ErrInvalidDirectory, abs, err)
	}
	return canonical, nil
}

type walker struct {
	root   string
	opts   Options
	filter string
	logger *zerolog.Logger
	out    []FileRecord
}

func (w *walker) walkFlat() error {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return errors.Errorf("%w: reading %s: %w", ErrInvalidDirectory, w.root, err)
	}
	for _, d := range entries {
		rel := d.Name()
		if w.excluded(rel) {
			continue
		}
		w.add(filepath.Join(w.root, rel), rel, d)
	}
	return nil
}

func (w *walker) walkRecursive() error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.root {
				return errors.Errorf("%w: reading %s: %w", ErrInvalidDirectory, w.root, err)
			}
			// unreadable entries are skipped, the rest of the tree is still listed
			w.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}
		if path == w.root {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return errors.Errorf("computing relative path for %s: %w", path, err)
		}

		if w.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		w.add(path, rel, d)
		return nil
	})
}

func (w *walker) excluded(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, pattern := range w.opts.Exclude {
		matched, err := doublestar.Match(pattern, slashed)
		if err != nil {
			w.logger.Debug().Str("pattern", pattern).Str("path", slashed).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			w.logger.Debug().Str("path", slashed).Str("pattern", pattern).Msg("entry excluded by pattern")
			return true
		}
	}
	return false
}

func (w *walker) add(path, rel string, d fs.DirEntry) {
	isDir := d.IsDir()
	if isDir && !w.opts.IncludeDirs {
		return
	}

	name := d.Name()
	if w.filter != "" && !strings.Contains(strings.ToLower(name), w.filter) {
		return
	}

	info, err := d.Info()
	if err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("skipping entry without metadata")
		return
	}

	rec := FileRecord{
		Name:     name,
		FullPath: path,
		RelPath:  rel,
		IsDir:    isDir,
		ModTime:  info.ModTime(),
	}
	if !isDir {
		rec.Size = info.Size()
	}
	w.out = append(w.out, rec)
}
