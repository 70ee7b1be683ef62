// Package logger builds the hclog logger shared by the CLI and the server.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options configure a logger.
type Options struct {
	Name    string
	Level   string
	JSON    bool
	Verbose bool
	Quiet   bool
	Output  io.Writer
}

// New creates an hclog logger. Verbose forces debug and Quiet forces
// error; Quiet wins when both are set.
func New(opts Options) (hclog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.Quiet:
		level = hclog.Error
	case opts.Verbose && level > hclog.Debug:
		level = hclog.Debug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	name := opts.Name
	if name == "" {
		name = "swatch"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Output:     out,
		Level:      level,
		JSONFormat: opts.JSON,
	}), nil
}

// ParseLevel maps a level name to an hclog level. An empty name is info.
func ParseLevel(s string) (hclog.Level, error) {
	if s == "" {
		return hclog.Info, nil
	}
	level := hclog.LevelFromString(s)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
