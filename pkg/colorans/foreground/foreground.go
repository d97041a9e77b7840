// Package foreground holds ready-made styles setting only the foreground color.
package foreground

import "github.com/badele/colorans/internal/types"

var (
	Black         = types.NewStyle().WithForeground(types.Black)
	Red           = types.NewStyle().WithForeground(types.Red)
	Green         = types.NewStyle().WithForeground(types.Green)
	Yellow        = types.NewStyle().WithForeground(types.Yellow)
	Blue          = types.NewStyle().WithForeground(types.Blue)
	Magenta       = types.NewStyle().WithForeground(types.Magenta)
	Cyan          = types.NewStyle().WithForeground(types.Cyan)
	White         = types.NewStyle().WithForeground(types.White)
	BrightBlack   = types.NewStyle().WithForeground(types.BrightBlack)
	BrightRed     = types.NewStyle().WithForeground(types.BrightRed)
	BrightGreen   = types.NewStyle().WithForeground(types.BrightGreen)
	BrightYellow  = types.NewStyle().WithForeground(types.BrightYellow)
	BrightBlue    = types.NewStyle().WithForeground(types.BrightBlue)
	BrightMagenta = types.NewStyle().WithForeground(types.BrightMagenta)
	BrightCyan    = types.NewStyle().WithForeground(types.BrightCyan)
	BrightWhite   = types.NewStyle().WithForeground(types.BrightWhite)
)

// RGB returns a style with a true foreground color.
func RGB(r, g, b uint8) types.Style {
	return types.NewStyle().WithForeground(types.RGB(r, g, b))
}
