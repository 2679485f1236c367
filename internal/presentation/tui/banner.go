package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the minitap banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"           _       _ _", "#34d399"},
		{"  _ __ ___ (_)_ __ (_) |_ __ _ _ __", "#2dd4bf"},
		{" | '_ ` _ \\| | '_ \\| | __/ _` | '_ \\", "#22d3ee"},
		{" | | | | | | | | | | | || (_| | |_) |", "#38bdf8"},
		{" |_| |_| |_|_|_| |_|_|\\__\\__,_| .__/", "#60a5fa"},
		{"                              |_|", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
