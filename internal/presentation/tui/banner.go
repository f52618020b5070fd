package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Placify banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ____  _            _  __       ", "#38bdf8"},
		{" |  _ \\| | __ _  ___(_)/ _|_   _ ", "#22d3ee"},
		{" | |_) | |/ _` |/ __| | |_| | | |", "#2dd4bf"},
		{" |  __/| | (_| | (__| |  _| |_| |", "#34d399"},
		{" |_|   |_|\\__,_|\\___|_|_|  \\__, |", "#4ade80"},
		{"                           |___/ ", "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
