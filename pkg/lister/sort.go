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
	"cmp"
	"slices"
	"strings"
)

// 🔢 SortKey names the FileRecord field a listing is ordered by
type SortKey string

const (
	SortByName    SortKey = "name"
	SortBySize    SortKey = "size"
	SortByModTime SortKey = "modTime"
)

// ParseSortKey maps user input onto a SortKey. Matching is case-insensitive and
// accepts "mtime" and "modificationTime" for SortByModTime. An empty string is
// SortByName. Unknown values also yield SortByName, with ok set to false.
func ParseSortKey(s string) (key SortKey, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, true
	case "size":
		return SortBySize, true
	case "modtime", "mtime", "modificationtime":
		return SortByModTime, true
	default:
		return SortByName, false
	}
}

// Sort orders records in place by key. The sort is stable in both directions:
// desc reverses the comparator, so records with equal keys keep their relative order.
func Sort(records []FileRecord, key SortKey, desc bool) {
	compare := comparator(key)
	if desc {
		asc := compare
		compare = func(a, b FileRecord) int { return asc(b, a) }
	}
	slices.SortStableFunc(records, compare)
}

func comparator(key SortKey) func(a, b FileRecord) int {
	switch key {
	case SortBySize:
		return func(a, b FileRecord) int { return cmp.Compare(a.Size, b.Size) }
	case SortByModTime:
		return func(a, b FileRecord) int { return a.ModTime.Compare(b.ModTime) }
	default:
		// go strings compare bytewise, which for UTF-8 is code point order
		return func(a, b FileRecord) int { return strings.Compare(a.Name, b.Name) }
	}
}
