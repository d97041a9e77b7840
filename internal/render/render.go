// Package render turns a text and a style into an escape-coded string.
//
// The wrapping order is fixed: every visual attribute wraps the text first,
// in enumeration order (bold, dimmed, underline, reversed, italic, blink,
// hidden, strikethrough), then the background wraps the result, then the
// foreground wraps that. The foreground sequence is therefore the first one
// in the output. Every wrap re-emits its own sequence after each inner reset,
// so an inner reset never cancels an outer style.
package render

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/badele/colorans/internal/types"
)

// hiddenSeq has no termenv constant.
const hiddenSeq = "8"

// Reset is the sequence closing every wrap.
var Reset = termenv.CSI + termenv.ResetSeq + "m"

var attributeSeqs = map[types.Attribute]string{
	types.Bold:          termenv.BoldSeq,
	types.Dimmed:        termenv.FaintSeq,
	types.Underline:     termenv.UnderlineSeq,
	types.Reversed:      termenv.ReverseSeq,
	types.Italic:        termenv.ItalicSeq,
	types.Blink:         termenv.BlinkSeq,
	types.Hidden:        hiddenSeq,
	types.Strikethrough: termenv.CrossOutSeq,
}

// Render wraps text with the escape sequences of style. A plain style adds
// nothing.
func Render(text string, style types.Style) string {
	if style.IsPlain() {
		return text
	}

	output := text
	for _, attr := range style.Attributes.Attributes() {
		if seq, ok := attributeSeqs[attr]; ok {
			output = wrap(output, seq)
		}
	}
	if seq := ColorSequence(style.Background, true); seq != "" {
		output = wrap(output, seq)
	}
	if seq := ColorSequence(style.Foreground, false); seq != "" {
		output = wrap(output, seq)
	}

	return output
}

// ColorSequence returns the SGR parameters selecting c, without CSI and
// final byte. Default colors have no sequence.
func ColorSequence(c types.ColorValue, background bool) string {
	switch c.Type {
	case types.ColorStandard:
		return termenv.ANSIColor(c.Index).Sequence(background)
	case types.ColorIndexed:
		if c.Index < 16 {
			return termenv.ANSIColor(c.Index).Sequence(background)
		}
		return termenv.ANSI256Color(c.Index).Sequence(background)
	case types.ColorRGB:
		prefix := "38"
		if background {
			prefix = "48"
		}
		return fmt.Sprintf("%s;2;%d;%d;%d", prefix, c.R, c.G, c.B)
	}
	return ""
}

// Sequences returns every SGR parameter string Render would emit for style,
// outermost first.
func Sequences(style types.Style) []string {
	var seqs []string
	if seq := ColorSequence(style.Foreground, false); seq != "" {
		seqs = append(seqs, seq)
	}
	if seq := ColorSequence(style.Background, true); seq != "" {
		seqs = append(seqs, seq)
	}
	attrs := style.Attributes.Attributes()
	for i := len(attrs) - 1; i >= 0; i-- {
		if seq, ok := attributeSeqs[attrs[i]]; ok {
			seqs = append(seqs, seq)
		}
	}
	return seqs
}

func wrap(text, seq string) string {
	open := termenv.CSI + seq + "m"
	return open + strings.ReplaceAll(text, Reset, Reset+open) + Reset
}
