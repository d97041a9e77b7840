package exporter

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/types"
)

// ToTcellColor converts a color. Default maps to tcell.ColorDefault.
func ToTcellColor(c types.ColorValue) tcell.Color {
	switch c.Type {
	case types.ColorStandard, types.ColorIndexed:
		return tcell.PaletteColor(int(c.Index))
	case types.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

// ToTcellStyle converts a style. tcell has no hidden attribute, so hidden
// text is drawn with its background as foreground.
func ToTcellStyle(style types.Style) tcell.Style {
	fg := ToTcellColor(style.Foreground)
	bg := ToTcellColor(style.Background)

	attrs := style.Attributes
	if attrs.Has(types.Hidden) {
		fg = bg
	}

	return tcell.StyleDefault.
		Foreground(fg).
		Background(bg).
		Bold(attrs.Has(types.Bold)).
		Dim(attrs.Has(types.Dimmed)).
		Underline(attrs.Has(types.Underline)).
		Reverse(attrs.Has(types.Reversed)).
		Italic(attrs.Has(types.Italic)).
		Blink(attrs.Has(types.Blink)).
		StrikeThrough(attrs.Has(types.Strikethrough))
}

// PaintSegments draws input at (x, y), styling each byte range with its
// segment. Newlines start a new row at x. It returns the size of the
// painted area.
func PaintSegments(screen tcell.Screen, x, y int, input string, segments []compose.Segment) (width, height int) {
	col, row := x, y
	seg := 0
	height = 1
	if input == "" {
		height = 0
	}

	for offset := 0; offset < len(input); {
		r, size := utf8.DecodeRuneInString(input[offset:])

		for seg < len(segments) && segments[seg].End <= offset {
			seg++
		}
		style := tcell.StyleDefault
		if seg < len(segments) && segments[seg].Start <= offset {
			style = ToTcellStyle(segments[seg].Style)
		}

		switch r {
		case '\n':
			col = x
			row++
			height++
		case '\r':
			col = x
		default:
			screen.SetContent(col, row, r, nil, style)
			col++
			width = max(width, col-x)
		}

		offset += size
	}

	return width, height
}

// Preview paints input on screen and waits for a key press. The screen must
// be initialized; it is not finalized.
func Preview(screen tcell.Screen, input string, segments []compose.Segment) {
	draw := func() {
		screen.Clear()
		PaintSegments(screen, 0, 0, input, segments)
		screen.Show()
	}
	draw()

	for {
		switch screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
			draw()
		case *tcell.EventKey:
			return
		}
	}
}
