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

package selection

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/pkg/copier"
	"github.com/walteh/ordercopy/pkg/lister"
)

var ErrOutOfRange = errors.Base("index out of range")

// 📄 Entry is one chosen file
type Entry struct {
	Src    string // Absolute source path
	Name   string // Target name without numbering, empty keeps the source base name
	prefix string
}

// TargetName is the name the entry will be copied under, empty when it keeps
// the source base name
func (e Entry) TargetName() string {
	if e.prefix == "" {
		return e.Name
	}
	name := e.Name
	if name == "" {
		name = filepath.Base(e.Src)
	}
	return e.prefix + name
}

// 🧺 Selection is an ordered list of files to copy. Position decides order.
// It is not safe for concurrent use.
type Selection struct {
	entries []Entry
}

// New creates a selection from source paths, in order. Duplicates are dropped.
func New(srcs ...string) *Selection {
	s := &Selection{}
	for _, src := range srcs {
		s.Add(src)
	}
	return s
}

// FromRecords selects every file record in listing order. Directories are skipped.
func FromRecords(records []lister.FileRecord) *Selection {
	s := &Selection{}
	for _, rec := range records {
		if !rec.IsDir {
			s.Add(rec.FullPath)
		}
	}
	return s
}

// Len is the number of selected entries
func (s *Selection) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the selected entries in order
func (s *Selection) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Index returns the position of src, or -1
func (s *Selection) Index(src string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.Src == src })
}

// Add appends src. It returns false when src is already selected.
func (s *Selection) Add(src string) bool {
	if s.Index(src) >= 0 {
		return false
	}
	s.entries = append(s.entries, Entry{Src: src})
	return true
}

func (s *Selection) check(i int) error {
	if i < 0 || i >= len(s.entries) {
		return errors.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, len(s.entries))
	}
	return nil
}

// Remove drops the entry at i
func (s *Selection) Remove(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// Move takes the entry at from and puts it at to, shifting the entries between
func (s *Selection) Move(from, to int) error {
	if err := s.check(from); err != nil {
		return err
	}
	if err := s.check(to); err != nil {
		return err
	}
	e := s.entries[from]
	s.entries = slices.Delete(s.entries, from, from+1)
	s.entries = slices.Insert(s.entries, to, e)
	return nil
}

// Swap exchanges the entries at i and j
func (s *Selection) Swap(i, j int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if err := s.check(j); err != nil {
		return err
	}
	s.entries[i], s.entries[j] = s.entries[j], s.entries[i]
	return nil
}

// Rename sets the target name of the entry at i. An empty name restores the
// source base name. Numbering applied earlier is kept.
func (s *Selection) Rename(i int, name string) error {
	if err := s.check(i); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name != "" {
		if _, err := copier.TargetName(copier.Item{Src: s.entries[i].Src, NewName: name}); err != nil {
			return err
		}
	}
	s.entries[i].Name = name
	return nil
}

// Items returns the selection as copy items. Order is position+1.
func (s *Selection) Items() []copier.Item {
	items := make([]copier.Item, 0, len(s.entries))
	for i, e := range s.entries {
		items = append(items, copier.Item{
			Src:     e.Src,
			Order:   i + 1,
			NewName: e.TargetName(),
		})
	}
	return items
}

// Request builds a copy request for the current selection
func (s *Selection) Request(dest string, overwrite bool) copier.Request {
	return copier.Request{
		Dest:      dest,
		Overwrite: overwrite,
		Items:     s.Items(),
	}
}

// 🔢 NumberingOptions controls order prefixes such as "001_"
type NumberingOptions struct {
	Width     int    // Zero pads to the widest number, at least three digits
	Separator string // Defaults to "_"
	Start     int    // Defaults to 1
}

// Number prefixes every entry with its position so the copied names sort in
// copy order. Calling it again replaces the previous prefixes.
func (s *Selection) Number(opts NumberingOptions) {
	if opts.Start <= 0 {
		opts.Start = 1
	}
	if opts.Separator == "" {
		opts.Separator = "_"
	}
	if opts.Width <= 0 {
		opts.Width = max(3, len(strconv.Itoa(opts.Start+len(s.entries)-1)))
	}
	for i := range s.entries {
		s.entries[i].prefix = fmt.Sprintf("%0*d%s", opts.Width, opts.Start+i, opts.Separator)
	}
}

// ClearNumbers drops numbering prefixes
func (s *Selection) ClearNumbers() {
	for i := range s.entries {
		s.entries[i].prefix = ""
	}
}
