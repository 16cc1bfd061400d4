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

package log

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/ordercopy/pkg/copier"
	"github.com/walteh/ordercopy/pkg/lister"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name    string
		verbose bool
		op      func(t *testing.T, logger *Logger)
		// each line must start with the matching prefix
		wantLogs []string
	}{
		{
			name: "start_copy",
			op: func(t *testing.T, logger *Logger) {
				logger.StartCopy(context.Background(), copier.Request{
					Dest:  "/tmp/out",
					Items: []copier.Item{{Src: "/s/a"}, {Src: "/s/b"}},
				})
			},
			wantLogs: []string{
				"[copying into /tmp/out]",
				"◆ 2 items • keep existing",
			},
		},
		{
			name: "progress_hides_start_events",
			op: func(t *testing.T, logger *Logger) {
				logger.OnProgress(copier.ProgressEvent{Stage: copier.StageStart, Index: 1, Total: 2, Src: "/s/a"})
				logger.OnProgress(copier.ProgressEvent{Stage: copier.StageDone, Index: 1, Total: 2, Src: "/s/a"})
				logger.OnProgress(copier.ProgressEvent{Stage: copier.StageStart, Index: 2, Total: 2, Src: "/s/b"})
				logger.OnProgress(copier.ProgressEvent{Stage: copier.StageError, Index: 2, Total: 2, Src: "/s/b", Message: "boom"})
			},
			wantLogs: []string{
				"✓ [1/2]     done   /s/a",
				"✗ [2/2]     error  /s/b boom",
			},
		},
		{
			name:    "progress_verbose_shows_start_events",
			verbose: true,
			op: func(t *testing.T, logger *Logger) {
				logger.OnProgress(copier.ProgressEvent{Stage: copier.StageStart, Index: 1, Total: 1, Src: "/s/a"})
				logger.OnProgress(copier.ProgressEvent{Stage: copier.StageDone, Index: 1, Total: 1, Src: "/s/a"})
			},
			wantLogs: []string{
				"… [1/1]     start  /s/a",
				"✓ [1/1]     done   /s/a",
			},
		},
		{
			name: "end_copy_halted",
			op: func(t *testing.T, logger *Logger) {
				logger.StartCopy(context.Background(), copier.Request{Dest: "/tmp/out", Overwrite: true})
				logger.EndCopy(context.Background(), copier.Summary{Total: 2, Copied: 1, FailedAt: "/s/b"})
			},
			wantLogs: []string{
				"[copying into /tmp/out]",
				"◆ 0 items • overwrite",
				"🛑 Copied 1 of 2, stopped at /s/b",
			},
		},
		{
			name: "listing",
			op: func(t *testing.T, logger *Logger) {
				logger.LogListing(context.Background(), "/src", []lister.FileRecord{
					{Name: "a.txt", RelPath: "a.txt", Size: 3, ModTime: time.Unix(0, 0)},
					{Name: "sub", RelPath: "sub", IsDir: true, ModTime: time.Unix(0, 0)},
				})
			},
			wantLogs: []string{
				"[listing /src]",
				"- a.txt",
				"▸ sub/",
				"• 2 entries",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "progress_quiet",
			op: func(t *testing.T, logger *Logger) {
				logger.LogProgress(1, 2)
				logger.Warning("after")
			},
			wantLogs: []string{
				"⚠️  after",
			},
		},
		{
			name:    "progress_verbose",
			verbose: true,
			op: func(t *testing.T, logger *Logger) {
				logger.LogProgress(1, 2)
				logger.LogProgress(2, 2)
			},
			wantLogs: []string{
				"⏳ Progress: 1/2 (50%)",
				"✅ Progress: 2/2 (100%)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := zerolog.InfoLevel
			if tt.verbose {
				level = zerolog.DebugLevel
			}

			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, level)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				got := strings.TrimSpace(lines[i])
				assert.True(t, strings.HasPrefix(got, want), "log line %d should start with %q, got %q", i, want, got)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestLoggerIsAProgressSink(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	src := t.TempDir()
	require.NoError(t, writeTestFile(src, "a.txt", "hello"))

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.InfoLevel)
	sum, err := copier.Copy(context.Background(), copier.Request{
		Dest:  t.TempDir(),
		Items: []copier.Item{{Src: filepath.Join(src, "a.txt"), Order: 1}},
	}, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Copied)
	assert.Contains(t, buf.String(), "done", "done event should be printed")
}

func writeTestFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
