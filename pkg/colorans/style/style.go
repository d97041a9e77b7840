// Package style holds ready-made styles carrying a single attribute.
package style

import "github.com/badele/colorans/internal/types"

var (
	// Clear discards everything composed before it.
	Clear         = types.NewStyle().WithAttribute(types.Clear)
	Bold          = types.NewStyle().WithAttribute(types.Bold)
	Dimmed        = types.NewStyle().WithAttribute(types.Dimmed)
	Underline     = types.NewStyle().WithAttribute(types.Underline)
	Reversed      = types.NewStyle().WithAttribute(types.Reversed)
	Italic        = types.NewStyle().WithAttribute(types.Italic)
	Blink         = types.NewStyle().WithAttribute(types.Blink)
	Hidden        = types.NewStyle().WithAttribute(types.Hidden)
	Strikethrough = types.NewStyle().WithAttribute(types.Strikethrough)
)

// None is present but empty: it carries no attribute and erases nothing.
var None = types.Style{Attributes: types.NoAttributes()}
