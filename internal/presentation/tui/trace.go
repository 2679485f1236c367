package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/minitap/internal/scenario"
	"github.com/muesli/termenv"
)

// TracePrinter writes replay results, colored when the output supports it.
type TracePrinter struct {
	out     io.Writer
	profile termenv.Profile
}

// NewTracePrinter uses colors only when color is true.
func NewTracePrinter(out io.Writer, color bool) *TracePrinter {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &TracePrinter{out: out, profile: profile}
}

func (p *TracePrinter) paint(s, hex string) termenv.Style {
	return p.profile.String(s).Foreground(p.profile.Color(hex))
}

// Print writes one block per step.
func (p *TracePrinter) Print(results []scenario.Result) {
	for _, res := range results {
		fmt.Fprintf(p.out, "%s %s.%s %v\n",
			p.paint(fmt.Sprintf("#%d", res.Index+1), "#818cf8"),
			res.Step.Target, res.Step.Name(), res.Step.Args)

		for _, e := range res.Trace {
			switch e.Kind {
			case "tap":
				fmt.Fprintf(p.out, "  %s %s:%s %v\n", p.paint("tap     ", "#2dd4bf"), e.Target, e.Name, e.Args)
			default:
				fmt.Fprintf(p.out, "  %s %s\n", p.paint("original", "#a3a3a3"), e.Name)
			}
		}

		if res.Err != nil {
			fmt.Fprintf(p.out, "  %s %v\n", p.paint("error   ", "#f87171"), res.Err)
		} else {
			fmt.Fprintf(p.out, "  %s %v\n", p.paint("return  ", "#34d399"), res.Return)
		}
	}
}
