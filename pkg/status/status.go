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

package status

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/walteh/ordercopy/pkg/copier"
)

// 📊 Recorder keeps every progress event it receives. It is safe to read
// while a copy is running on another goroutine.
type Recorder struct {
	mu     sync.RWMutex
	events []copier.ProgressEvent
}

var _ copier.ProgressSink = (*Recorder)(nil)

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnProgress implements copier.ProgressSink
func (r *Recorder) OnProgress(ev copier.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events in arrival order
func (r *Recorder) Events() []copier.ProgressEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.events)
}

// Progress returns how many items finished and the run total seen so far
func (r *Recorder) Progress() (done, total int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ev := range r.events {
		if ev.Total > total {
			total = ev.Total
		}
		if ev.Stage == copier.StageDone {
			done++
		}
	}
	return done, total
}

// Failure returns the first error event, if any
func (r *Recorder) Failure() (copier.ProgressEvent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ev := range r.events {
		if ev.Stage == copier.StageError {
			return ev, true
		}
	}
	return copier.ProgressEvent{}, false
}

// 🔀 Tee fans every event out to each sink in order. Nil sinks are skipped.
func Tee(sinks ...copier.ProgressSink) copier.ProgressSink {
	active := make([]copier.ProgressSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return copier.SinkFunc(func(ev copier.ProgressEvent) {
		for _, s := range active {
			s.OnProgress(ev)
		}
	})
}

// 📝 LogSink writes each event to the context logger as a structured entry.
// Errors log at error level, everything else at debug.
func LogSink(ctx context.Context) copier.ProgressSink {
	logger := zerolog.Ctx(ctx)
	return copier.SinkFunc(func(ev copier.ProgressEvent) {
		e := logger.Debug()
		if ev.Stage == copier.StageError {
			e = logger.Error()
		}
		e.Str("stage", string(ev.Stage)).
			Int("index", ev.Index).
			Int("total", ev.Total).
			Str("src", ev.Src).
			Str("message", ev.Message).
			Msg("copy progress")
	})
}
