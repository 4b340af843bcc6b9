package cli

import (
	"io"
	"os"
)

// RunOptions contains the settings shared by the gdit-demo commands.
// Zero values mean "not set on the command line" and leave the config file value alone.
type RunOptions struct {
	ConfigPath string
	Debug      bool
	LogLevel   string
	Catalog    string
	Script     string
	Seed       uint64
	Speed      float64
	Addr       string

	JSON         bool
	Plain        bool
	Headless     bool
	ExitWhenDone bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// quiet reports whether human-oriented chrome (banner, completion notes) is suppressed.
func (o RunOptions) quiet() bool {
	return o.JSON || o.Headless
}
