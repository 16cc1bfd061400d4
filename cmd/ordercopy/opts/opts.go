package opts

import (
	"io"

	"github.com/walteh/ordercopy/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Debug      bool
	Console    io.Writer
	Logger     *log.Logger
	UserLogger *log.UserLogger
}
