package exporter

import (
	"strings"

	"github.com/badele/colorans/internal/types"
)

// ExportFlattenedText exports tokens to plain text, using a virtual terminal
// to resolve cursor positioning.
func ExportFlattenedText(width int, tokens []types.Token) string {
	return replay(width, tokens).ExportPlainText()
}

// ExportFlattenedTextInline exports tokens to plain text on a single line.
func ExportFlattenedTextInline(width int, tokens []types.Token) string {
	return strings.ReplaceAll(ExportFlattenedText(width, tokens), "\n", "")
}
