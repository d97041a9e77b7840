package types

import "strconv"

/////////////////////////////////////////////////////////////////////////////
// SGR (Select Graphic Rendition) decoding
/////////////////////////////////////////////////////////////////////////////

// ParseSGRParams converts raw CSI parameters to integers. Empty parameters
// stand for 0; non numeric ones are skipped.
func ParseSGRParams(params []string) []int {
	intParams := make([]int, 0, len(params))
	for _, p := range params {
		if p == "" {
			intParams = append(intParams, 0)
			continue
		}
		if val, err := strconv.Atoi(p); err == nil {
			intParams = append(intParams, val)
		}
	}
	return intParams
}

// ApplySGR returns s updated by the SGR codes in params, the way a terminal
// would. An empty parameter list is a reset.
func (s Style) ApplySGR(params []int) Style {
	if len(params) == 0 {
		return NewStyle()
	}

	for i := 0; i < len(params); i++ {
		code := params[i]

		switch code {
		case 0:
			s = NewStyle()

		case 1:
			s.Attributes = s.Attributes.With(Bold)
		case 2:
			s.Attributes = s.Attributes.With(Dimmed)
		case 3:
			s.Attributes = s.Attributes.With(Italic)
		case 4:
			s.Attributes = s.Attributes.With(Underline)
		case 5, 6:
			s.Attributes = s.Attributes.With(Blink)
		case 7:
			s.Attributes = s.Attributes.With(Reversed)
		case 8:
			s.Attributes = s.Attributes.With(Hidden)
		case 9:
			s.Attributes = s.Attributes.With(Strikethrough)

		case 21, 22:
			s.Attributes = s.Attributes.Without(Bold).Without(Dimmed)
		case 23:
			s.Attributes = s.Attributes.Without(Italic)
		case 24:
			s.Attributes = s.Attributes.Without(Underline)
		case 25:
			s.Attributes = s.Attributes.Without(Blink)
		case 27:
			s.Attributes = s.Attributes.Without(Reversed)
		case 28:
			s.Attributes = s.Attributes.Without(Hidden)
		case 29:
			s.Attributes = s.Attributes.Without(Strikethrough)

		case 30, 31, 32, 33, 34, 35, 36, 37:
			s.Foreground = standard(uint8(code - 30))

		case 38: // Foreground extended
			var n int
			s.Foreground, n = extendedColor(s.Foreground, params, i+1)
			i += n

		case 39:
			s.Foreground = ColorValue{}

		case 40, 41, 42, 43, 44, 45, 46, 47:
			s.Background = standard(uint8(code - 40))

		case 48: // Background extended
			var n int
			s.Background, n = extendedColor(s.Background, params, i+1)
			i += n

		case 49:
			s.Background = ColorValue{}

		case 90, 91, 92, 93, 94, 95, 96, 97:
			s.Foreground = standard(uint8(code - 90 + 8))

		case 100, 101, 102, 103, 104, 105, 106, 107:
			s.Background = standard(uint8(code - 100 + 8))
		}
	}

	return s
}

// extendedColor decodes "5;n" or "2;r;g;b" starting at params[start] and
// returns the number of parameters consumed.
func extendedColor(current ColorValue, params []int, start int) (ColorValue, int) {
	if start >= len(params) {
		return current, 0
	}

	switch params[start] {
	case 5: // ESC[38;5;n
		if start+1 < len(params) {
			return Indexed(uint8(params[start+1])), 2
		}

	case 2: // ESC[38;2;r;g;b
		if start+3 < len(params) {
			return RGB(uint8(params[start+1]), uint8(params[start+2]), uint8(params[start+3])), 4
		}
	}

	return current, 1
}

/////////////////////////////////////////////////////////////////////////////
// LINE WITH STYLE CHANGES
/////////////////////////////////////////////////////////////////////////////

// StyleChange records the style in effect from a rune position onward.
type StyleChange struct {
	Position int   // Position of the rune in the line (0-indexed)
	Style    Style // The style to apply from this position
}

// LineWithStyles contains a line of text and every style change within it
type LineWithStyles struct {
	Text    string
	Changes []StyleChange
}
