package akl

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// NewLogger builds the named hclog.Logger threaded through a Worker. The
// core never reaches for a package-level logger: every component that logs
// takes one through its constructor.
func NewLogger(level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "akl",
		Level: level,
	})
}

// discardLogger returns a logger that drops everything, used as the
// default when a caller constructs a Worker (directly or through Solve)
// without supplying one of their own.
func discardLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "akl",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}
