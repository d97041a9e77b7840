// Package processor replays tokenized output on a virtual terminal to
// recover the style of every character.
package processor

import (
	"strings"

	"github.com/badele/colorans/internal/importer/ansi"
	"github.com/badele/colorans/internal/render"
	"github.com/badele/colorans/internal/types"
)

///////////////////////////////////////////////////////////////////////////////
// Virtual Terminal
///////////////////////////////////////////////////////////////////////////////

type Cell struct {
	Char  rune
	Style types.Style
}

// VirtualTerminal is a grid of styled cells. Rows are added on demand.
// A width of 0 disables wrapping.
type VirtualTerminal struct {
	rows         [][]Cell
	width        int
	cursorX      int
	cursorY      int
	savedCursorX int
	savedCursorY int
	current      types.Style
}

func NewVirtualTerminal(width int) *VirtualTerminal {
	return &VirtualTerminal{
		rows:    [][]Cell{{}},
		width:   width,
		current: types.NewStyle(),
	}
}

// Replay tokenizes input and applies it to a new unwrapped terminal.
func Replay(input string) *VirtualTerminal {
	vt := NewVirtualTerminal(0)
	vt.ApplyTokens(ansi.NewTokenizer(input).Tokenize())
	return vt
}

// ApplyTokens applies ANSI tokens to the virtual terminal
func (vt *VirtualTerminal) ApplyTokens(tokens []types.Token) {
	for _, token := range tokens {
		switch token.Type {
		case types.TokenText:
			vt.writeText(token.Value)
		case types.TokenC0:
			vt.handleC0(token.C0Code)
		case types.TokenSGR:
			vt.current = vt.current.ApplySGR(types.ParseSGRParams(token.Parameters))
		case types.TokenCSI:
			vt.handleCSI(token)
		}
	}
}

// Style returns the style in effect for the next written character.
func (vt *VirtualTerminal) Style() types.Style {
	return vt.current
}

func (vt *VirtualTerminal) row(y int) []Cell {
	for len(vt.rows) <= y {
		vt.rows = append(vt.rows, []Cell{})
	}
	return vt.rows[y]
}

func (vt *VirtualTerminal) put(x, y int, cell Cell) {
	row := vt.row(y)
	for len(row) <= x {
		row = append(row, Cell{Style: types.NewStyle()})
	}
	row[x] = cell
	vt.rows[y] = row
}

func (vt *VirtualTerminal) writeText(text string) {
	for _, r := range text {
		vt.put(vt.cursorX, vt.cursorY, Cell{Char: r, Style: vt.current})
		vt.cursorX++

		if vt.width > 0 && vt.cursorX >= vt.width {
			vt.cursorX = 0
			vt.cursorY++
		}
	}
}

func (vt *VirtualTerminal) handleC0(code byte) {
	switch code {
	case 0x09: // TAB
		vt.cursorX = ((vt.cursorX / 8) + 1) * 8
		if vt.width > 0 && vt.cursorX >= vt.width {
			vt.cursorX = 0
			vt.cursorY++
		}
	case 0x0A: // LF
		vt.cursorY++
		vt.cursorX = 0
		vt.row(vt.cursorY)
	case 0x0D: // CR
		vt.cursorX = 0
	case 0x08: // BS
		if vt.cursorX > 0 {
			vt.cursorX--
		}
	}
}

func (vt *VirtualTerminal) handleCSI(token types.Token) {
	if len(token.Raw) == 0 {
		return
	}

	count := 1
	if len(token.Parameters) > 0 {
		count = ansi.ParseNumber(token.Parameters[0], 1)
	}

	switch token.Raw[len(token.Raw)-1] {
	case 'A': // Cursor Up
		vt.cursorY = max(0, vt.cursorY-count)
	case 'B': // Cursor Down
		vt.cursorY += count
	case 'C': // Cursor Forward
		vt.cursorX += count
		if vt.width > 0 && vt.cursorX >= vt.width {
			vt.cursorX = vt.width - 1
		}
	case 'D': // Cursor Backward
		vt.cursorX = max(0, vt.cursorX-count)
	case 'H', 'f': // Cursor Position, 1-based
		pos := ansi.ParseNumbers(token.Parameters, []int{1, 1})
		vt.cursorY = max(0, pos[0]-1)
		vt.cursorX = max(0, pos[1]-1)
	case 'J': // Erase Display
		vt.eraseDisplay(ansi.ParseNumber(first(token.Parameters), 0))
	case 'K': // Erase Line
		vt.eraseLine(vt.cursorY, ansi.ParseNumber(first(token.Parameters), 0))
	case 's': // Save Cursor Position
		vt.savedCursorX, vt.savedCursorY = vt.cursorX, vt.cursorY
	case 'u': // Restore Cursor Position
		vt.cursorX, vt.cursorY = vt.savedCursorX, vt.savedCursorY
	}
}

func first(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return params[0]
}

func (vt *VirtualTerminal) eraseDisplay(mode int) {
	switch mode {
	case 0: // cursor to end of screen
		vt.eraseLine(vt.cursorY, 0)
		for y := vt.cursorY + 1; y < len(vt.rows); y++ {
			vt.rows[y] = vt.rows[y][:0]
		}
	case 1: // beginning of screen to cursor
		for y := 0; y < vt.cursorY && y < len(vt.rows); y++ {
			vt.rows[y] = vt.rows[y][:0]
		}
		vt.eraseLine(vt.cursorY, 1)
	case 2: // entire screen
		vt.rows = [][]Cell{{}}
		vt.cursorX, vt.cursorY = 0, 0
	}
}

func (vt *VirtualTerminal) eraseLine(y, mode int) {
	row := vt.row(y)
	switch mode {
	case 0: // cursor to end of line
		if vt.cursorX < len(row) {
			vt.rows[y] = row[:vt.cursorX]
		}
	case 1: // beginning of line to cursor
		for x := 0; x <= vt.cursorX && x < len(row); x++ {
			row[x] = Cell{Style: types.NewStyle()}
		}
	case 2: // entire line
		vt.rows[y] = row[:0]
	}
}

// Cells returns the cells of every line, trailing empty lines excluded.
func (vt *VirtualTerminal) Cells() [][]Cell {
	last := len(vt.rows) - 1
	for last > 0 && len(vt.rows[last]) == 0 {
		last--
	}
	return vt.rows[:last+1]
}

// ExportLines exports every line as its plain text and the positions where
// the style changes. The first change of a line is always at 0.
func (vt *VirtualTerminal) ExportLines() []types.LineWithStyles {
	cells := vt.Cells()
	result := make([]types.LineWithStyles, 0, len(cells))

	for _, row := range cells {
		line := types.LineWithStyles{Changes: []types.StyleChange{}}
		var text strings.Builder

		for x, cell := range row {
			if x == 0 || !cell.Style.Equals(row[x-1].Style) {
				line.Changes = append(line.Changes, types.StyleChange{Position: x, Style: cell.Style})
			}
			text.WriteRune(printable(cell.Char))
		}

		line.Text = text.String()
		result = append(result, line)
	}

	return result
}

// ExportPlainText exports the text without escape sequences, one line per
// row.
func (vt *VirtualTerminal) ExportPlainText() string {
	lines := vt.ExportLines()

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(line.Text)
	}
	return builder.String()
}

// ExportANSI re-renders the grid, one render per run of equally styled
// characters. Redundant sequences of the source are dropped.
func (vt *VirtualTerminal) ExportANSI() string {
	lines := vt.ExportLines()

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		runes := []rune(line.Text)
		for c, change := range line.Changes {
			end := len(runes)
			if c+1 < len(line.Changes) {
				end = line.Changes[c+1].Position
			}
			builder.WriteString(render.Render(string(runes[change.Position:end]), change.Style))
		}
	}
	return builder.String()
}

func printable(r rune) rune {
	if r == 0 {
		return ' '
	}
	return r
}
