package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback for interactive commands
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer      // nil means pterm's default output
}

// 🎨 FileChangeType represents what happened to a file
type FileChangeType int

const (
	FilePlanned FileChangeType = iota
	FileSkipped
)

// 🖼️ FileChange represents a single file outcome
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// WithWriter returns a copy of the logger that prints to w
func (u *UserLogger) WithWriter(w io.Writer) *UserLogger {
	cp := *u
	cp.out = w
	return &cp
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	p := base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style})
	if u.out != nil {
		p = p.WithWriter(u.out)
	}
	return p
}

// 📝 LogFileChange logs a file change with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	name := filepath.Base(change.Path)

	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileSkipped:
		action = "Skipped"
		printer = u.printer(pterm.Warning, "⏭️")
	default:
		action = "Planned"
		printer = u.printer(pterm.Info, "📋")
	}

	msg := fmt.Sprintf("%s %s", action, name)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	u.log.Info().Msg(msg)
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "❌").Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}
