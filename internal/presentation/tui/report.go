package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/minitap/pkg/hub"
)

// ChannelReport renders hub channels and their subscriber counts as a
// markdown table, grouped by namespace and sorted by channel.
func ChannelReport(channels map[string]int) string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ni, nj := hub.Namespace(names[i]), hub.Namespace(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	sb.WriteString("# Channels\n\n")
	if len(names) == 0 {
		sb.WriteString("_No subscriptions._\n")
		return sb.String()
	}

	sb.WriteString("| Namespace | Channel | Subscribers |\n")
	sb.WriteString("|---|---|---:|\n")
	total := 0
	for _, name := range names {
		n := channels[name]
		total += n
		sb.WriteString(fmt.Sprintf("| %s | `%s` | %d |\n", hub.Namespace(name), name, n))
	}
	sb.WriteString(fmt.Sprintf("\n%d subscriptions on %d channels.\n", total, len(names)))
	return sb.String()
}
