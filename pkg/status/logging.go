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
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/walteh/ordercopy/pkg/copier"
	"github.com/walteh/ordercopy/pkg/lister"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	sizeWidth   = 12 // Width for size column
	indexWidth  = 9  // Width for "[12/345]"
	stageWidth  = 6  // Width for stage text
	timeLayout  = "2006-01-02 15:04"
	dirSizeText = "-"
)

// 🎯 FormatEventLine formats a progress event as one aligned, colored row
func FormatEventLine(ev copier.ProgressEvent) string {
	var prefix string
	switch ev.Stage {
	case copier.StageStart:
		prefix = color.HiBlackString("…")
	case copier.StageDone:
		prefix = color.GreenString("✓")
	case copier.StageError:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	indexPart := fmt.Sprintf("%-*s", indexWidth, fmt.Sprintf("[%d/%d]", ev.Index, ev.Total))
	stagePart := fmt.Sprintf("%-*s", stageWidth, string(ev.Stage))
	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		indexPart,
		stagePart,
		ev.Src,
	)
	if ev.Stage == copier.StageError && ev.Message != "" {
		line += " " + color.RedString(ev.Message)
	}
	return line
}

// 🎯 FormatRecordLine formats a listed file as one aligned, colored row
func FormatRecordLine(rec lister.FileRecord) string {
	name := rec.RelPath
	if name == "" {
		name = rec.Name
	}

	prefix := color.HiBlackString("-")
	size := fmt.Sprintf("%d", rec.Size)
	if rec.IsDir {
		prefix = color.BlueString("▸")
		name += "/"
		size = dirSizeText
	}

	return fmt.Sprintf("%s%s %-*s %*s  %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, name,
		sizeWidth, size,
		color.HiBlackString(rec.ModTime.Local().Format(timeLayout)),
	)
}

// FormatDuration keeps run timings short
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
