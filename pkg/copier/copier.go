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

package copier

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrDestinationUnavailable means the destination directory could not be established.
	// It fails the whole call before any item is attempted.
	ErrDestinationUnavailable = errors.Base("destination unavailable")
	// ErrDestinationExists means the target file exists and overwrite is off.
	ErrDestinationExists = errors.Base("destination exists")
	// ErrSourceUnreadable means the source is missing, unreadable or not a regular file.
	ErrSourceUnreadable = errors.Base("source unreadable")
	// ErrIOFailure covers write, sync and rename failures while copying an item.
	ErrIOFailure = errors.Base("io failure")
	// ErrInvalidTargetName means newName is not a single path segment.
	ErrInvalidTargetName = errors.Base("invalid target name")
)

// 📦 Item is one requested copy
type Item struct {
	Src     string `json:"src"`     // Absolute source path
	Order   int    `json:"order"`   // Position in the copy sequence, ascending
	NewName string `json:"newName"` // Target file name, empty keeps the source base name
}

// 📦 Request is one copy run
type Request struct {
	Dest      string `json:"dest"`
	Overwrite bool   `json:"overwrite"`
	Items     []Item `json:"items"`
}

// 📊 Summary is the result of one copy run. Runs stop at the first failure, so
// FailedAt is also where processing halted.
type Summary struct {
	Total    int    `json:"total"`
	Copied   int    `json:"copied"`
	FailedAt string `json:"failedAt"`
}

// OK reports whether every item was copied.
func (s Summary) OK() bool {
	return s.FailedAt == "" && s.Copied == s.Total
}

// Sequence returns the items in execution order: ascending Order, ties kept in
// their original position. The input slice is not modified.
func Sequence(items []Item) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// 🏃 Copy copies the items of req into req.Dest one at a time, in Sequence order.
//
// A start event precedes every attempted item, followed by exactly one done or
// error event. The first failing item ends the run: its src is recorded in
// FailedAt and no later item is touched. Per-item failures are reported through
// the summary and the sink; the returned error is only set when the destination
// cannot be established.
func Copy(ctx context.Context, req Request, sink ProgressSink) (Summary, error) {
	logger := zerolog.Ctx(ctx)
	if sink == nil {
		sink = Discard
	}

	dest, err := prepareDestination(req.Dest)
	if err != nil {
		return Summary{}, err
	}

	items := Sequence(req.Items)
	summary := Summary{Total: len(items)}

	logger.Debug().
		Str("dest", dest).
		Bool("overwrite", req.Overwrite).
		Int("total", summary.Total).
		Msg("starting copy run")

	for i, item := range items {
		index := i + 1

		sink.OnProgress(ProgressEvent{Stage: StageStart, Index: index, Total: summary.Total, Src: item.Src})

		target, err := copyItem(ctx, dest, item, req.Overwrite)
		if err != nil {
			summary.FailedAt = item.Src
			logger.Warn().Err(err).Int("index", index).Str("src", item.Src).Msg("copy halted")
			sink.OnProgress(ProgressEvent{
				Stage:   StageError,
				Index:   index,
				Total:   summary.Total,
				Src:     item.Src,
				Message: err.Error(),
			})
			return summary, nil
		}

		summary.Copied++
		logger.Debug().Int("index", index).Str("src", item.Src).Str("target", target).Msg("copied file")
		sink.OnProgress(ProgressEvent{Stage: StageDone, Index: index, Total: summary.Total, Src: item.Src})
	}

	logger.Debug().Int("copied", summary.Copied).Msg("copy run complete")
	return summary, nil
}

// prepareDestination returns the absolute destination directory, creating it
// and any missing parents.
func prepareDestination(dest string) (string, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", errors.Errorf("%w: dest is required", ErrDestinationUnavailable)
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", errors.Errorf("%w: resolving %s: %w", ErrDestinationUnavailable, dest, err)
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return abs, nil
	case err == nil:
		return "", errors.Errorf("%w: %s is not a directory", ErrDestinationUnavailable, abs)
	case !os.IsNotExist(err):
		return "", errors.Errorf("%w: %w", ErrDestinationUnavailable, err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", errors.Errorf("%w: creating %s: %w", ErrDestinationUnavailable, abs, err)
	}
	return abs, nil
}

// TargetName resolves the file name an item is written under. A blank
// NewName keeps the source base name.
func TargetName(item Item) (string, error) {
	name := strings.TrimSpace(item.NewName)
	if name == "" {
		return filepath.Base(item.Src), nil
	}

	switch {
	case name == "." || name == "..":
		return "", errors.Errorf("%w: %q", ErrInvalidTargetName, name)
	case strings.ContainsAny(name, `/\`):
		return "", errors.Errorf("%w: %q must not contain path separators", ErrInvalidTargetName, name)
	}
	return name, nil
}

// copyItem copies one item and returns the final destination path.
func copyItem(ctx context.Context, dest string, item Item, overwrite bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Errorf("copy cancelled: %w", err)
	}

	name, err := TargetName(item)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(item.Src) == "" {
		return "", errors.Errorf("%w: src is required", ErrSourceUnreadable)
	}

	info, err := os.Stat(item.Src)
	if err != nil {
		return "", errors.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Errorf("%w: %s is not a regular file", ErrSourceUnreadable, item.Src)
	}

	target := filepath.Join(dest, name)

	existing, err := os.Lstat(target)
	switch {
	case err == nil && existing.IsDir():
		return "", errors.Errorf("%w: %s is a directory", ErrDestinationExists, target)
	case err == nil && !overwrite:
		return "", errors.Errorf("%w: %s already exists and overwrite is disabled", ErrDestinationExists, target)
	case err != nil && !os.IsNotExist(err):
		return "", errors.Errorf("%w: checking %s: %w", ErrIOFailure, target, err)
	}

	if err := copyFileAtomic(ctx, item.Src, target, info); err != nil {
		return "", err
	}
	return target, nil
}
