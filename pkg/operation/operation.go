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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/ordercopy/pkg/lister"
)

// ErrCopyHalted is returned when a copy run stopped on a failed item. The
// operation's Summary says which one.
var ErrCopyHalted = errors.Base("copy halted")

// 🎯 Operation is one unit of work a Runner executes. Results stay on the
// operation and are read after Run returns.
type Operation interface {
	Name() string
	Execute(ctx context.Context) error
}

// 📂 ListOperation lists a directory
type ListOperation struct {
	opts    lister.Options
	records []lister.FileRecord
}

var _ Operation = (*ListOperation)(nil)

// NewListOperation creates a list operation
func NewListOperation(opts lister.Options) *ListOperation {
	return &ListOperation{opts: opts}
}

func (o *ListOperation) Name() string {
	return "list " + o.opts.Dir
}

// Execute runs the listing
func (o *ListOperation) Execute(ctx context.Context) error {
	records, err := lister.List(ctx, o.opts)
	if err != nil {
		return errors.Errorf("listing %s: %w", o.opts.Dir, err)
	}
	o.records = records

	zerolog.Ctx(ctx).Debug().Str("dir", o.opts.Dir).Int("records", len(records)).Msg("list operation complete")
	return nil
}

// Records returns the listing, nil before Execute succeeds
func (o *ListOperation) Records() []lister.FileRecord {
	return o.records
}
