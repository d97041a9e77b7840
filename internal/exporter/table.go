package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/types"
)

const (
	tokenTableTop    = "┌─────────┬────────┬──────────────────────┬──────────────────────────────────────┬─────────────────┬──────────────────────────────────────┐"
	tokenTableSep    = "├─────────┼────────┼──────────────────────┼──────────────────────────────────────┼─────────────────┼──────────────────────────────────────┤"
	tokenTableBottom = "└─────────┴────────┴──────────────────────┴──────────────────────────────────────┴─────────────────┴──────────────────────────────────────┘"
	tokenTableRow    = "│ %-7v │ %-6v │ %-20s │ %-36s │ %-15s │ %-36s │\n"

	segmentTableTop    = "┌─────────┬────────┬────────┬──────────────────────────────────────────┬──────────────────────────────────────┐"
	segmentTableSep    = "├─────────┼────────┼────────┼──────────────────────────────────────────┼──────────────────────────────────────┤"
	segmentTableBottom = "└─────────┴────────┴────────┴──────────────────────────────────────────┴──────────────────────────────────────┘"
	segmentTableRow    = "│ %-7v │ %-6v │ %-6v │ %-40s │ %-36s │\n"
)

func ExportTokensToTable(tokens []types.Token, writer io.Writer) error {
	var b strings.Builder

	b.WriteString(tokenTableTop + "\n")
	fmt.Fprintf(&b, tokenTableRow, "Token", "Pos", "Notation", "Signification", "Parameters", "Raw/Text")
	b.WriteString(tokenTableSep + "\n")

	for i, token := range tokens {
		notation := "-"
		if token.CSINotation != "" {
			notation = truncate(token.CSINotation, 20)
		}
		params := "-"
		if len(token.Parameters) > 0 {
			params = truncate(strings.Join(token.Parameters, ";"), 15)
		}

		var signification string
		switch token.Type {
		case types.TokenText:
			signification = "TEXT"
		case types.TokenC0:
			signification = "C0: unknown"
			if name, ok := types.C0Names[token.C0Code]; ok {
				signification = name
			}
			params = fmt.Sprintf("0x%02X", token.C0Code)
		case types.TokenC1:
			signification = "C1: " + token.C1Code
		case types.TokenDCS:
			signification = "DCS"
		case types.TokenCSIInterrupted:
			signification = "CSI INTERRUPTED"
		case types.TokenUnknown:
			signification = "UNKNOWN"
		default:
			signification = token.Signification
			if signification == "" {
				signification = token.Type.String()
			}
		}

		fmt.Fprintf(&b, tokenTableRow, i+1, token.Pos, notation, truncate(signification, 36), params, truncate(token.Raw, 36))
	}

	b.WriteString(tokenTableBottom + "\n")

	_, err := io.WriteString(writer, b.String())
	return err
}

// ExportSegmentsToTable lists every segment with its byte range, resolved
// style and the text it covers.
func ExportSegmentsToTable(input string, segments []compose.Segment, writer io.Writer) error {
	var b strings.Builder

	b.WriteString(segmentTableTop + "\n")
	fmt.Fprintf(&b, segmentTableRow, "Segment", "Start", "End", "Style", "Text")
	b.WriteString(segmentTableSep + "\n")

	for i, seg := range segments {
		style := "plain"
		if !seg.Style.IsPlain() {
			style = seg.Style.String()
		}
		fmt.Fprintf(&b, segmentTableRow, i+1, seg.Start, seg.End, truncate(style, 40), truncate(input[seg.Start:seg.End], 36))
	}

	b.WriteString(segmentTableBottom + "\n")

	_, err := io.WriteString(writer, b.String())
	return err
}

// truncate quotes control characters and shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	s = fmt.Sprintf("%q", s)
	s = s[1 : len(s)-1]

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
