package status

import (
	"fmt"

	"github.com/walteh/ordercopy/pkg/copier"
)

// Formatter defines how copy progress should be rendered for people
type Formatter interface {
	// FormatEvent formats a single progress event
	FormatEvent(ev copier.ProgressEvent) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the result of a finished run
	FormatSummary(s copier.Summary) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

var _ Formatter = (*DefaultFormatter)(nil)

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatEvent formats a progress event with emojis
func (f *DefaultFormatter) FormatEvent(ev copier.ProgressEvent) string {
	switch ev.Stage {
	case copier.StageStart:
		return fmt.Sprintf("📄 [%d/%d] Copying %s", ev.Index, ev.Total, ev.Src)
	case copier.StageDone:
		return fmt.Sprintf("✨ [%d/%d] Copied %s", ev.Index, ev.Total, ev.Src)
	case copier.StageError:
		return fmt.Sprintf("❌ [%d/%d] Failed %s: %s", ev.Index, ev.Total, ev.Src, ev.Message)
	default:
		return fmt.Sprintf("❓ [%d/%d] %s %s", ev.Index, ev.Total, ev.Stage, ev.Src)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary formats a run summary, naming the halting file when there is one
func (f *DefaultFormatter) FormatSummary(s copier.Summary) string {
	if s.FailedAt != "" {
		return fmt.Sprintf("🛑 Copied %d of %d, stopped at %s", s.Copied, s.Total, s.FailedAt)
	}
	return fmt.Sprintf("🎉 Copied %d of %d", s.Copied, s.Total)
}
