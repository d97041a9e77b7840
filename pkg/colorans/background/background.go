// Package background holds ready-made styles setting only the background color.
package background

import "github.com/badele/colorans/internal/types"

var (
	Black         = types.NewStyle().WithBackground(types.Black)
	Red           = types.NewStyle().WithBackground(types.Red)
	Green         = types.NewStyle().WithBackground(types.Green)
	Yellow        = types.NewStyle().WithBackground(types.Yellow)
	Blue          = types.NewStyle().WithBackground(types.Blue)
	Magenta       = types.NewStyle().WithBackground(types.Magenta)
	Cyan          = types.NewStyle().WithBackground(types.Cyan)
	White         = types.NewStyle().WithBackground(types.White)
	BrightBlack   = types.NewStyle().WithBackground(types.BrightBlack)
	BrightRed     = types.NewStyle().WithBackground(types.BrightRed)
	BrightGreen   = types.NewStyle().WithBackground(types.BrightGreen)
	BrightYellow  = types.NewStyle().WithBackground(types.BrightYellow)
	BrightBlue    = types.NewStyle().WithBackground(types.BrightBlue)
	BrightMagenta = types.NewStyle().WithBackground(types.BrightMagenta)
	BrightCyan    = types.NewStyle().WithBackground(types.BrightCyan)
	BrightWhite   = types.NewStyle().WithBackground(types.BrightWhite)
)

// RGB returns a style with a true background color.
func RGB(r, g, b uint8) types.Style {
	return types.NewStyle().WithBackground(types.RGB(r, g, b))
}
