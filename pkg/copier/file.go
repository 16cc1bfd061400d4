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
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// tempFile is a sibling of the target that is removed unless committed
type tempFile struct {
	f         *os.File
	path      string
	closed    bool
	committed bool
}

func newTempFile(target string) (*tempFile, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, errors.Errorf("%w: creating temp file: %w", ErrIOFailure, err)
	}
	return &tempFile{f: f, path: f.Name()}, nil
}

func (t *tempFile) close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.f.Close()
}

// cleanup drops the temp file if it never made it into place.
func (t *tempFile) cleanup() {
	if t.committed {
		return
	}
	_ = t.close()
	_ = os.Remove(t.path)
}

// 💾 copyFileAtomic writes src into a temp file next to target, checks that every
// byte arrived, syncs it, and renames it over target. Nothing is left at target
// when any step fails.
func copyFileAtomic(ctx context.Context, src, target string, info os.FileInfo) error {
	logger := zerolog.Ctx(ctx)

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer in.Close()

	tmp, err := newTempFile(target)
	if err != nil {
		return err
	}
	defer tmp.cleanup()

	n, err := io.Copy(tmp.f, in)
	if err != nil {
		return errors.Errorf("%w: copying %s: %w", ErrIOFailure, src, err)
	}
	if n != info.Size() {
		return errors.Errorf("%w: short copy of %s: wrote %d of %d bytes", ErrIOFailure, src, n, info.Size())
	}

	if err := tmp.f.Sync(); err != nil {
		return errors.Errorf("%w: syncing %s: %w", ErrIOFailure, tmp.path, err)
	}
	if err := tmp.close(); err != nil {
		return errors.Errorf("%w: closing %s: %w", ErrIOFailure, tmp.path, err)
	}

	// metadata is best-effort
	if err := os.Chmod(tmp.path, info.Mode().Perm()); err != nil {
		logger.Debug().Err(err).Str("path", target).Msg("could not copy file mode")
	}
	if err := os.Chtimes(tmp.path, info.ModTime(), info.ModTime()); err != nil {
		logger.Debug().Err(err).Str("path", target).Msg("could not copy modification time")
	}

	if err := os.Rename(tmp.path, target); err != nil {
		return errors.Errorf("%w: renaming into %s: %w", ErrIOFailure, target, err)
	}
	tmp.committed = true

	return nil
}
