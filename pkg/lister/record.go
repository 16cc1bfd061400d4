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
	"encoding/json"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📄 FileRecord is one filesystem entry discovered by List. Records are never
// mutated after List returns them.
type FileRecord struct {
	Name     string    // Base name
	FullPath string    // Absolute, canonical path
	RelPath  string    // Path relative to the listing root
	IsDir    bool      // Whether this is a directory
	Size     int64     // Size in bytes, 0 for directories
	ModTime  time.Time // Modification time, zero when unknown
}

// fileRecordJSON is the wire shape. modTime travels as unix seconds and both
// relPath and modTime may be absent in records from older callers.
type fileRecordJSON struct {
	Name     string `json:"name"`
	FullPath string `json:"fullPath"`
	RelPath  string `json:"relPath,omitempty"`
	IsDir    bool   `json:"isDir"`
	Size     int64  `json:"size"`
	ModTime  int64  `json:"modTime,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (r FileRecord) MarshalJSON() ([]byte, error) {
	w := fileRecordJSON{
		Name:     r.Name,
		FullPath: r.FullPath,
		RelPath:  r.RelPath,
		IsDir:    r.IsDir,
		Size:     r.Size,
	}
	if !r.ModTime.IsZero() {
		w.ModTime = r.ModTime.Unix()
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *FileRecord) UnmarshalJSON(data []byte) error {
	var w fileRecordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Errorf("decoding file record: %w", err)
	}
	*r = FileRecord{
		Name:     w.Name,
		FullPath: w.FullPath,
		RelPath:  w.RelPath,
		IsDir:    w.IsDir,
		Size:     w.Size,
	}
	if w.ModTime != 0 {
		r.ModTime = time.Unix(w.ModTime, 0)
	}
	return nil
}
