package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/processor"
	"github.com/badele/colorans/internal/types"
)

// NeotexVersion is the current version of the neotex format
const NeotexVersion = 1

// Neotex color codes indexed by ColorValue.Index (0-15)
// Index 0-7: normal colors (lowercase), Index 8-15: bright colors (uppercase)
var neotexFgColors = []string{
	"Fk", "Fr", "Fg", "Fy", "Fb", "Fm", "Fc", "Fw",
	"FK", "FR", "FG", "FY", "FB", "FM", "FC", "FW",
}

var neotexBgColors = []string{
	"Bk", "Br", "Bg", "By", "Bb", "Bm", "Bc", "Bw",
}

// Effects in neotex order. Bold has no effect code: it brightens the
// foreground instead.
var neotexEffects = []struct {
	attr types.Attribute
	code string
}{
	{types.Dimmed, "EM"},
	{types.Italic, "EI"},
	{types.Underline, "EU"},
	{types.Blink, "EB"},
	{types.Reversed, "ER"},
}

// StyleToNeotex converts a style to neotex codes.
func StyleToNeotex(style types.Style) []string {
	codes := fgToNeotex(style)
	codes = append(codes, bgToNeotex(style)...)

	for _, e := range neotexEffects {
		if style.Attributes.Has(e.attr) {
			codes = append(codes, e.code)
		}
	}

	return codes
}

func fgToNeotex(style types.Style) []string {
	fg := style.Foreground
	switch fg.Type {
	case types.ColorStandard:
		index := fg.Index
		if style.Attributes.Has(types.Bold) && index < 8 {
			index += 8
		}
		return []string{neotexFgColors[index]}

	case types.ColorRGB:
		return []string{fmt.Sprintf("F%02X%02X%02X", fg.R, fg.G, fg.B)}

	case types.ColorIndexed:
		return []string{fmt.Sprintf("F%d", fg.Index)}
	}

	return nil
}

func bgToNeotex(style types.Style) []string {
	bg := style.Background
	switch bg.Type {
	case types.ColorStandard:
		// neotex has no bright backgrounds
		return []string{neotexBgColors[bg.Index%8]}

	case types.ColorRGB:
		return []string{fmt.Sprintf("B%02X%02X%02X", bg.R, bg.G, bg.B)}

	case types.ColorIndexed:
		return []string{fmt.Sprintf("B%d", bg.Index)}
	}

	return nil
}

// needsReset reports whether going from previous to current turns something
// off, which neotex can only express with a reset.
func needsReset(current, previous types.Style) bool {
	brightFg := func(s types.Style) bool {
		return s.Foreground.Type == types.ColorStandard &&
			(s.Foreground.Index >= 8 || s.Attributes.Has(types.Bold))
	}
	if brightFg(previous) && !brightFg(current) {
		return true
	}
	if !previous.Foreground.IsDefault() && current.Foreground.IsDefault() {
		return true
	}
	if !previous.Background.IsDefault() && current.Background.IsDefault() {
		return true
	}
	for _, e := range neotexEffects {
		if previous.Attributes.Has(e.attr) && !current.Attributes.Has(e.attr) {
			return true
		}
	}
	return false
}

// DiffStyleToNeotex generates minimal neotex codes to go from previous to
// current. A nil previous means the full current state.
func DiffStyleToNeotex(current types.Style, previous *types.Style) []string {
	if previous == nil {
		return StyleToNeotex(current)
	}
	if current.Equals(*previous) {
		return nil
	}
	if current.IsPlain() {
		return []string{"R0"}
	}
	if needsReset(current, *previous) {
		return append([]string{"R0"}, StyleToNeotex(current)...)
	}

	var codes []string
	for _, e := range neotexEffects {
		if current.Attributes.Has(e.attr) && !previous.Attributes.Has(e.attr) {
			codes = append(codes, e.code)
		}
	}

	boldChanged := current.Attributes.Has(types.Bold) != previous.Attributes.Has(types.Bold)
	if current.Foreground != previous.Foreground || boldChanged {
		codes = append(codes, fgToNeotex(current)...)
	}
	if current.Background != previous.Background {
		codes = append(codes, bgToNeotex(current)...)
	}

	return codes
}

func flattenLines(lines []types.LineWithStyles) []types.LineWithStyles {
	if len(lines) <= 1 {
		return lines
	}

	var text strings.Builder
	var changes []types.StyleChange
	offset := 0
	for _, line := range lines {
		text.WriteString(line.Text)
		for _, change := range line.Changes {
			changes = append(changes, types.StyleChange{Position: change.Position + offset, Style: change.Style})
		}
		offset += len([]rune(line.Text))
	}

	return []types.LineWithStyles{{Text: text.String(), Changes: changes}}
}

// ExportToNeotex exports the terminal as (text, sequences). Sequences hold
// one line of neotex codes per text line, positions 1-indexed and relative
// to the line, differentially encoded across lines.
func ExportToNeotex(vt *processor.VirtualTerminal) (string, string) {
	return exportToNeotex(vt, false)
}

// ExportToInlineNeotex exports the terminal to neotex, flattening all lines
// into one.
func ExportToInlineNeotex(vt *processor.VirtualTerminal) (string, string) {
	return exportToNeotex(vt, true)
}

func exportToNeotex(vt *processor.VirtualTerminal, inline bool) (string, string) {
	lines := vt.ExportLines()
	if inline {
		lines = flattenLines(lines)
	}

	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, len([]rune(strings.TrimRight(line.Text, " "))))
	}

	var text, seqs strings.Builder
	var previous *types.Style

	for i, line := range lines {
		if i > 0 {
			text.WriteString("\n")
			seqs.WriteString("\n")
		}
		text.WriteString(line.Text)

		var lineSeqs []string
		if i == 0 {
			lineSeqs = append(lineSeqs,
				fmt.Sprintf("!V%d", NeotexVersion),
				fmt.Sprintf("!TW%d", maxWidth),
				fmt.Sprintf("!NL%d", len(lines)),
			)
		}

		for _, change := range line.Changes {
			if codes := DiffStyleToNeotex(change.Style, previous); len(codes) > 0 {
				lineSeqs = append(lineSeqs, fmt.Sprintf("%d:%s", change.Position+1, strings.Join(codes, ", ")))
			}
			style := change.Style
			previous = &style
		}

		seqs.WriteString(strings.Join(lineSeqs, "; "))
	}

	return text.String(), seqs.String()
}

// WriteNeotexFiles writes text and sequences next to each other:
// - <base>.neot : plain text content
// - <base>.neos : neotex sequences, one line per text line
//
// Any extension on basePath is dropped.
func WriteNeotexFiles(basePath, text, seqs string) (textPath, seqPath string, err error) {
	basePath = strings.TrimSuffix(basePath, filepath.Ext(basePath))
	textPath = basePath + ".neot"
	seqPath = basePath + ".neos"

	if err := os.WriteFile(textPath, []byte(text+"\n"), 0644); err != nil {
		return "", "", errors.Wrapf(err, errors.ErrIO, "cannot write %s", textPath)
	}
	if err := os.WriteFile(seqPath, []byte(seqs+"\n"), 0644); err != nil {
		return "", "", errors.Wrapf(err, errors.ErrIO, "cannot write %s", seqPath)
	}
	return textPath, seqPath, nil
}
