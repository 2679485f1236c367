package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/minitap"
	"github.com/aretw0/minitap/internal/scenario"
)

// GenerateSequence produces a Mermaid sequence diagram of a replay.
// Each step shows the host call, every subscriber delivery that preceded the
// original body, the original body itself, and any error returned to the host.
func GenerateSequence(results []scenario.Result) string {
	var sb strings.Builder
	sb.WriteString("sequenceDiagram\n")
	sb.WriteString("    participant Host\n")
	sb.WriteString("    participant Hub\n")

	// Declare targets in first-seen order so the diagram is stable.
	declared := make(map[string]bool)
	for _, res := range results {
		id := sanitizeMermaidID(res.Step.Target)
		if !declared[id] {
			declared[id] = true
			sb.WriteString(fmt.Sprintf("    participant %s as %s\n", id, res.Step.Target))
		}
	}

	for _, res := range results {
		target := sanitizeMermaidID(res.Step.Target)
		name := res.Step.Name()
		sb.WriteString(fmt.Sprintf("    Host->>%s: %s(%s)\n", target, name, formatArgs(res.Step.Args)))

		for _, e := range res.Trace {
			switch e.Kind {
			case "tap":
				channel := minitap.Channel(e.Target, e.Name)
				sb.WriteString(fmt.Sprintf("    %s->>Hub: trigger %s\n", target, channel))
			case "original":
				sb.WriteString(fmt.Sprintf("    Note over %s: original %s\n", target, e.Name))
			}
		}

		if res.Err != nil {
			// Mermaid breaks on ';' and '#' inside messages.
			msg := strings.NewReplacer(";", ",", "#", "").Replace(res.Err.Error())
			sb.WriteString(fmt.Sprintf("    %s--x Host: %s\n", target, msg))
		} else {
			sb.WriteString(fmt.Sprintf("    %s-->>Host: %v\n", target, res.Return))
		}
	}

	return sb.String()
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return strings.Join(parts, ", ")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
