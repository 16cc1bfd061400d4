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

// 📈 Stage is the point in an item's copy a ProgressEvent reports
type Stage string

const (
	StageStart Stage = "start"
	StageDone  Stage = "done"
	StageError Stage = "error"
)

// ProgressEvent is one progress notification. Index is 1-based within the run.
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Src     string `json:"src"`
	Message string `json:"message"`
}

// ProgressSink receives progress events synchronously, in the order items are processed
type ProgressSink interface {
	OnProgress(ev ProgressEvent)
}

// SinkFunc adapts a function to ProgressSink
type SinkFunc func(ev ProgressEvent)

// OnProgress implements ProgressSink
func (f SinkFunc) OnProgress(ev ProgressEvent) {
	f(ev)
}

// Discard drops every event
var Discard ProgressSink = SinkFunc(func(ProgressEvent) {})
