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

package operation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/pkg/copier"
)

// 📦 CopyOperation runs one ordered copy
type CopyOperation struct {
	id      string
	req     copier.Request
	sink    copier.ProgressSink
	summary copier.Summary
	done    bool
}

var _ Operation = (*CopyOperation)(nil)

// NewCopyOperation creates a copy operation. A nil sink discards progress.
func NewCopyOperation(req copier.Request, sink copier.ProgressSink) *CopyOperation {
	return &CopyOperation{id: uuid.NewString(), req: req, sink: sink}
}

// RunID identifies this run in log entries
func (o *CopyOperation) RunID() string {
	return o.id
}

func (o *CopyOperation) Name() string {
	return "copy -> " + o.req.Dest
}

// Execute runs the copy. A halted run returns ErrCopyHalted; the summary is
// still recorded.
func (o *CopyOperation) Execute(ctx context.Context) error {
	ctx = zerolog.Ctx(ctx).With().Str("run_id", o.id).Logger().WithContext(ctx)
	logger := zerolog.Ctx(ctx)

	sum, err := copier.Copy(ctx, o.req, o.sink)
	o.summary = sum
	o.done = true
	if err != nil {
		return errors.Errorf("copying into %s: %w", o.req.Dest, err)
	}

	logger.Debug().
		Int("total", sum.Total).
		Int("copied", sum.Copied).
		Str("failed_at", sum.FailedAt).
		Msg("copy operation complete")

	if sum.FailedAt != "" {
		return errors.Errorf("%w at %s after %d of %d", ErrCopyHalted, sum.FailedAt, sum.Copied, sum.Total)
	}
	return nil
}

// Summary returns the run summary and whether the copy ran at all
func (o *CopyOperation) Summary() (copier.Summary, bool) {
	return o.summary, o.done
}
