package exporter

import (
	"strings"

	"github.com/badele/colorans/internal/processor"
	"github.com/badele/colorans/internal/types"
)

// ExportFlattenedANSI replays tokens on a terminal of the given width (0 for
// no wrapping) and re-renders it with one sequence set per style run.
func ExportFlattenedANSI(width int, tokens []types.Token) string {
	return replay(width, tokens).ExportANSI()
}

// ExportFlattenedANSIInline is ExportFlattenedANSI on a single line.
func ExportFlattenedANSIInline(width int, tokens []types.Token) string {
	return strings.ReplaceAll(ExportFlattenedANSI(width, tokens), "\n", "")
}

func replay(width int, tokens []types.Token) *processor.VirtualTerminal {
	vt := processor.NewVirtualTerminal(width)
	vt.ApplyTokens(tokens)
	return vt
}
