package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerRows = []struct {
	text  string
	color string
}{
	{"              _ _ _   ", "#22d3ee"},
	{"   __ _    __| (_) |_ ", "#2dd4bf"},
	{"  / _` |  / _` | | __|", "#34d399"},
	{" | (_| | | (_| | | |_ ", "#4ade80"},
	{"  \\__, |  \\__,_|_|\\__|", "#a3e635"},
	{"  |___/   git for Google Drive", "#a3a3a3"},
}

// PrintBanner writes the gdit logo in a cyan to green gradient.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, row := range bannerRows {
		fmt.Fprintln(w, out.String(row.text).Foreground(out.Color(row.color)))
	}
	fmt.Fprintln(w)
}
