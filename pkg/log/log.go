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
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/ordercopy/pkg/copier"
	"github.com/walteh/ordercopy/pkg/lister"
	"github.com/walteh/ordercopy/pkg/status"
)

// 🎯 Logger writes human output to a console and mirrors it into zerolog.
// It is a copier.ProgressSink, so a copy run can report straight into it.
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.Formatter
	mu        sync.Mutex
	started   time.Time
	verbose   bool
}

var _ copier.ProgressSink = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFormatter(),
		verbose:   level <= zerolog.DebugLevel,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📂 LogListing prints one row per record followed by a count
func (l *Logger) LogListing(ctx context.Context, dir string, records []lister.FileRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "[listing %s]\n", color.New(color.FgCyan).Sprint(dir))
	for _, rec := range records {
		fmt.Fprintln(l.console, status.FormatRecordLine(rec))
	}
	fmt.Fprintf(l.console, "%s %d entries\n", color.New(color.Faint).Sprint("•"), len(records))

	l.zlog.Info().
		Str("dir", dir).
		Int("entries", len(records)).
		Msg("listing complete")
}

// 📝 StartCopy prints the run header
func (l *Logger) StartCopy(ctx context.Context, req copier.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.started = time.Now()

	fmt.Fprintf(l.console, "[copying into %s]\n", color.New(color.FgCyan).Sprint(req.Dest))
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d items", len(req.Items)),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(overwriteLabel(req.Overwrite)))

	l.zlog.Info().
		Str("dest", req.Dest).
		Int("items", len(req.Items)).
		Bool("overwrite", req.Overwrite).
		Msg("starting copy")
}

func overwriteLabel(overwrite bool) string {
	if overwrite {
		return "overwrite"
	}
	return "keep existing"
}

// 📝 OnProgress implements copier.ProgressSink. Start events only show in verbose mode.
func (l *Logger) OnProgress(ev copier.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ev.Stage != copier.StageStart || l.verbose {
		fmt.Fprintln(l.console, status.FormatEventLine(ev))
	}

	e := l.zlog.Debug()
	if ev.Stage == copier.StageError {
		e = l.zlog.Error()
	}
	e.Str("stage", string(ev.Stage)).
		Int("index", ev.Index).
		Int("total", ev.Total).
		Str("src", ev.Src).
		Str("message", ev.Message).
		Msg(l.formatter.FormatEvent(ev))
}

// 📊 LogProgress prints how far the run is. Only shown in verbose mode.
func (l *Logger) LogProgress(done, total int) {
	if !l.verbose {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, color.New(color.Faint).Sprint(l.formatter.FormatProgress(done, total)))
}

// 📝 EndCopy prints the run summary
func (l *Logger) EndCopy(ctx context.Context, sum copier.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var elapsed time.Duration
	if !l.started.IsZero() {
		elapsed = time.Since(l.started)
		l.started = time.Time{}
	}

	line := l.formatter.FormatSummary(sum)
	c := color.New(color.FgGreen)
	if !sum.OK() {
		c = color.New(color.FgRed)
	}
	fmt.Fprintf(l.console, "%s %s\n", c.Sprint(line), color.New(color.Faint).Sprint(status.FormatDuration(elapsed)))

	l.zlog.Info().
		Int("total", sum.Total).
		Int("copied", sum.Copied).
		Str("failed_at", sum.FailedAt).
		Dur("elapsed", elapsed).
		Msg("copy complete")
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
