package exporter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/badele/colorans/internal/importer/ansi"
	"github.com/badele/colorans/internal/types"
)

type entry struct {
	key   string
	count int
}

// sortedEntries orders by count, then key, so output is stable.
func sortedEntries[K comparable](data map[K]int, name func(K) string) []entry {
	entries := make([]entry, 0, len(data))
	for k, v := range data {
		entries = append(entries, entry{name(k), v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	return entries
}

func DisplayStats(w io.Writer, stats types.TokenStats) error {
	var b strings.Builder

	b.WriteString("=== Token Statistics ===\n\n")
	fmt.Fprintf(&b, "  Input size: %d bytes\n", stats.InputSize)
	fmt.Fprintf(&b, "  Text: %d bytes\n", stats.TotalTextLength)
	fmt.Fprintf(&b, "  Escape overhead: %d bytes\n", stats.EscapeOverhead)
	fmt.Fprintf(&b, "  Total tokens: %d\n", stats.TotalTokens)

	b.WriteString("\n--- Tokens by Type\n")
	for _, e := range sortedEntries(stats.TokensByType, types.TokenType.String) {
		percentage := float64(e.count) / float64(stats.TotalTokens) * 100
		fmt.Fprintf(&b, "  %-30s:  %5d (%.1f%%)\n", e.key, e.count, percentage)
	}

	if len(stats.SGRCodes) > 0 {
		b.WriteString("\n--- Most Used SGR Codes\n")
		writeTopN(&b, sortedEntries(stats.SGRCodes, sgrLabel), 10)
	}

	if len(stats.CSISequences) > 0 {
		b.WriteString("\n--- Most Used CSI Sequences\n")
		writeTopN(&b, sortedEntries(stats.CSISequences, func(s string) string { return s }), 10)
	}

	if len(stats.C0Codes) > 0 {
		b.WriteString("\n--- C0 Control Codes\n")
		writeTopN(&b, sortedEntries(stats.C0Codes, c0Label), 10)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sgrLabel(code string) string {
	if _, err := strconv.Atoi(code); err != nil {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, ansi.DescribeSGR([]string{code})[0])
}

func c0Label(code byte) string {
	name := "Unknown"
	if n, ok := types.C0Names[code]; ok {
		name = n
	}
	return fmt.Sprintf("0x%02X %s", code, name)
}

func writeTopN(b *strings.Builder, entries []entry, n int) {
	for i, e := range entries {
		if i >= n {
			break
		}
		fmt.Fprintf(b, "  %-30s: %5d\n", e.key, e.count)
	}
}
