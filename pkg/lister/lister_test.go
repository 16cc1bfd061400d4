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

package lister_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/ordercopy/pkg/lister"
	"gitlab.com/tozd/go/errors"
)

// 🧪 writeFile creates a file of the given size under root
func writeFile(t *testing.T, root, rel string, size int, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent directories should succeed")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644), "writing file should succeed")
	if !mtime.IsZero() {
		require.NoError(t, os.Chtimes(path, mtime, mtime), "setting mtime should succeed")
	}
	return path
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// canonicalTempDir avoids symlinked temp roots (macOS /var -> /private/var)
func canonicalTempDir(t *testing.T) string {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err, "resolving temp dir should succeed")
	return dir
}

func names(records []lister.FileRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func relPaths(records []lister.FileRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, filepath.ToSlash(r.RelPath))
	}
	return out
}

// 🌳 buildTree creates a small mixed tree used by most tests
func buildTree(t *testing.T) string {
	root := canonicalTempDir(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	writeFile(t, root, "alpha.txt", 10, base)
	writeFile(t, root, "Beta.TXT", 30, base.Add(time.Hour))
	writeFile(t, root, "sub/gamma.txt", 20, base.Add(2*time.Hour))
	writeFile(t, root, "sub/deeper/delta.log", 5, base.Add(3*time.Hour))
	writeFile(t, root, "vendor/skip.txt", 1, base)
	return root
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		opts  func(root string) lister.Options
		check func(t *testing.T, root string, records []lister.FileRecord)
	}{
		{
			name: "flat_listing_has_only_immediate_children",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				assert.Equal(t, []string{"Beta.TXT", "alpha.txt"}, names(records), "only top-level files sorted by code point")
				for _, r := range records {
					assert.NotContains(t, r.RelPath, string(filepath.Separator), "flat relPath should be a single segment")
				}
			},
		},
		{
			name: "flat_listing_with_dirs",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, IncludeDirs: true}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				assert.Equal(t, []string{"Beta.TXT", "alpha.txt", "sub", "vendor"}, names(records), "directories should be included")
				for _, r := range records {
					if r.IsDir {
						assert.Zero(t, r.Size, "directory size should be zero")
					}
				}
			},
		},
		{
			name: "recursive_listing_reports_rel_paths",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, Recursive: true}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				assert.ElementsMatch(t,
					[]string{"alpha.txt", "Beta.TXT", "sub/gamma.txt", "sub/deeper/delta.log", "vendor/skip.txt"},
					relPaths(records), "all files should be listed relative to root")
				for _, r := range records {
					assert.False(t, r.IsDir, "directories should be omitted")
					assert.True(t, filepath.IsAbs(r.FullPath), "full path should be absolute")
					assert.Equal(t, filepath.Join(root, r.RelPath), r.FullPath, "full path should be root joined with rel path")
				}
			},
		},
		{
			name: "recursive_listing_with_dirs",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, Recursive: true, IncludeDirs: true}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				assert.Contains(t, relPaths(records), "sub/deeper", "nested directory should be listed")
				assert.Contains(t, relPaths(records), "sub/deeper/delta.log", "nested file should still be listed")
			},
		},
		{
			name: "filter_is_case_insensitive_and_matches_name_only",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, Recursive: true, IncludeDirs: true, FilterText: "TXT"}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				assert.ElementsMatch(t, []string{"alpha.txt", "Beta.TXT", "gamma.txt", "skip.txt"}, names(records), "only names containing txt")
				for _, r := range records {
					assert.Contains(t, strings.ToLower(r.Name), "txt", "name should contain the filter")
				}
			},
		},
		{
			name: "filter_does_not_match_parent_directories",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, Recursive: true, FilterText: "sub"}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				assert.Empty(t, records, "files under sub/ should not match on their parent name")
			},
		},
		{
			name: "sort_by_size_desc",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, Recursive: true, SortBy: lister.SortBySize, Desc: true, Exclude: []string{"vendor/**", "**/*.log"}}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				require.Len(t, records, 3, "three files should remain")
				assert.Equal(t, []int64{30, 20, 10}, []int64{records[0].Size, records[1].Size, records[2].Size}, "sizes should be descending")
				assert.Equal(t, []string{"Beta.TXT", "sub/gamma.txt", "alpha.txt"}, relPaths(records), "rel paths should follow size order")
			},
		},
		{
			name: "sort_by_mod_time",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, Recursive: true, SortBy: "mtime", Exclude: []string{"vendor"}}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				assert.Equal(t, []string{"alpha.txt", "Beta.TXT", "gamma.txt", "delta.log"}, names(records), "oldest first")
			},
		},
		{
			name: "excluded_directory_prunes_subtree",
			opts: func(root string) lister.Options {
				return lister.Options{Dir: root, Recursive: true, IncludeDirs: true, Exclude: []string{"sub"}}
			},
			check: func(t *testing.T, root string, records []lister.FileRecord) {
				for _, r := range relPaths(records) {
					assert.False(t, strings.HasPrefix(r, "sub"), "nothing under sub should be listed: %s", r)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := buildTree(t)
			records, err := lister.List(testContext(t), tt.opts(root))
			require.NoError(t, err, "List should succeed")
			tt.check(t, root, records)
		})
	}
}

func TestListInvalidDirectory(t *testing.T) {
	root := canonicalTempDir(t)
	file := writeFile(t, root, "plain.txt", 1, time.Time{})

	tests := []struct {
		name string
		dir  string
	}{
		{name: "empty", dir: "   "},
		{name: "missing", dir: filepath.Join(root, "nope")},
		{name: "not_a_directory", dir: file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := lister.List(testContext(t), lister.Options{Dir: tt.dir})
			require.Error(t, err, "List should fail")
			assert.True(t, errors.Is(err, lister.ErrInvalidDirectory), "error should be ErrInvalidDirectory: %v", err)
			assert.Nil(t, records, "nothing should be returned")
		})
	}
}

func TestListInvalidExcludePattern(t *testing.T) {
	root := canonicalTempDir(t)
	_, err := lister.List(testContext(t), lister.Options{Dir: root, Exclude: []string{"[unterminated"}})
	require.Error(t, err, "List should reject a malformed pattern")
	assert.Contains(t, err.Error(), "invalid exclude pattern", "error should name the pattern problem")
}

func TestListSortIsStable(t *testing.T) {
	root := canonicalTempDir(t)
	// equal sizes; walk order is lexical, so pre-sort order is a, b, c
	writeFile(t, root, "a.bin", 7, time.Time{})
	writeFile(t, root, "b.bin", 7, time.Time{})
	writeFile(t, root, "c.bin", 7, time.Time{})
	writeFile(t, root, "big.bin", 9, time.Time{})

	for _, desc := range []bool{false, true} {
		records, err := lister.List(testContext(t), lister.Options{Dir: root, SortBy: lister.SortBySize, Desc: desc})
		require.NoError(t, err, "List should succeed")

		var equal []string
		for _, r := range records {
			if r.Size == 7 {
				equal = append(equal, r.Name)
			}
		}
		assert.Equal(t, []string{"a.bin", "b.bin", "c.bin"}, equal, "equal keys should keep their order (desc=%v)", desc)

		if desc {
			assert.Equal(t, "big.bin", records[0].Name, "largest first when descending")
		} else {
			assert.Equal(t, "big.bin", records[len(records)-1].Name, "largest last when ascending")
		}
	}
}

func TestListDoesNotFollowSymlinks(t *testing.T) {
	root := canonicalTempDir(t)
	writeFile(t, root, "real/file.txt", 3, time.Time{})
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// a cycle that would never terminate if links were followed
	if err := os.Symlink(root, filepath.Join(root, "real", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	records, err := lister.List(testContext(t), lister.Options{Dir: root, Recursive: true})
	require.NoError(t, err, "List should succeed")

	assert.ElementsMatch(t, []string{"link", "real/file.txt", "real/loop"}, relPaths(records), "links are reported, not traversed")
	for _, r := range records {
		assert.False(t, r.IsDir, "links are file-like records")
	}
}

func TestListRelPathIsRelativeToGivenRoot(t *testing.T) {
	root := buildTree(t)
	records, err := lister.List(testContext(t), lister.Options{Dir: filepath.Join(root, "sub"), Recursive: true})
	require.NoError(t, err, "List should succeed")
	assert.ElementsMatch(t, []string{"gamma.txt", "deeper/delta.log"}, relPaths(records), "rel paths should not include the ancestor")
}

func TestFileRecordJSON(t *testing.T) {
	mtime := time.Unix(1700000000, 0)
	data, err := json.Marshal(lister.FileRecord{
		Name:     "a.txt",
		FullPath: "/root/a.txt",
		RelPath:  "a.txt",
		Size:     4,
		ModTime:  mtime,
	})
	require.NoError(t, err, "marshal should succeed")
	assert.JSONEq(t, `{"name":"a.txt","fullPath":"/root/a.txt","relPath":"a.txt","isDir":false,"size":4,"modTime":1700000000}`, string(data), "wire names should match")

	// older callers omit relPath and modTime
	var rec lister.FileRecord
	require.NoError(t, json.Unmarshal([]byte(`{"name":"b","fullPath":"/b","isDir":true,"size":0}`), &rec), "unmarshal should succeed")
	assert.Equal(t, "b", rec.Name, "name should decode")
	assert.True(t, rec.IsDir, "isDir should decode")
	assert.Empty(t, rec.RelPath, "relPath should default to empty")
	assert.True(t, rec.ModTime.IsZero(), "modTime should default to zero")
}
