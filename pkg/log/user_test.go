package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestUserLogger(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name string
		op   func(u *UserLogger)
		want []string
	}{
		{
			name: "planned",
			op: func(u *UserLogger) {
				u.LogFileChange(FileChange{Type: FilePlanned, Path: "/src/a.txt", Description: "#1 as 001_a.txt"})
			},
			want: []string{"Planned a.txt (#1 as 001_a.txt)"},
		},
		{
			name: "skipped",
			op: func(u *UserLogger) {
				u.LogFileChange(FileChange{Type: FileSkipped, Path: "/src/notes.txt", Description: "not selected"})
			},
			want: []string{"Skipped notes.txt (not selected)"},
		},
		{
			name: "validation",
			op: func(u *UserLogger) {
				u.LogValidation(true, "plan is valid", nil)
				u.LogValidation(false, "plan has no items", nil)
				u.LogValidation(false, "plan failed", errors.New("bad yaml"))
			},
			want: []string{"plan is valid", "plan has no items", "plan failed", "bad yaml"},
		},
		{
			name: "state_change",
			op: func(u *UserLogger) {
				u.LogStateChange("wrote plan.yaml")
			},
			want: []string{"wrote plan.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := zerolog.New(zerolog.NewTestWriter(t))
			u := NewUserLogger(logger.WithContext(context.Background())).WithWriter(buf)

			tt.op(u)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want, "output should mention %q", want)
			}
		})
	}
}
