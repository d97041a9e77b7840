package types

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

/////////////////////////////////////////////////////////////////////////////
// COLOR
/////////////////////////////////////////////////////////////////////////////

type ColorType int

const (
	ColorDefault  ColorType = iota // no color information
	ColorStandard                  // 0-15 (codes 30-37, 90-97, etc.)
	ColorIndexed                   // 0-255 (ESC[38;5;n), only produced when decoding
	ColorRGB                       // RGB (ESC[38;2;r;g;b)
)

// ColorValue is a terminal color. The zero value is ColorDefault and means
// "no color specified".
type ColorValue struct {
	Type    ColorType
	R, G, B uint8
	Index   uint8
}

// Named basic and bright colors
var (
	Black         = standard(0)
	Red           = standard(1)
	Green         = standard(2)
	Yellow        = standard(3)
	Blue          = standard(4)
	Magenta       = standard(5)
	Cyan          = standard(6)
	White         = standard(7)
	BrightBlack   = standard(8)
	BrightRed     = standard(9)
	BrightGreen   = standard(10)
	BrightYellow  = standard(11)
	BrightBlue    = standard(12)
	BrightMagenta = standard(13)
	BrightCyan    = standard(14)
	BrightWhite   = standard(15)
)

var standardNames = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

func standard(index uint8) ColorValue {
	return ColorValue{Type: ColorStandard, Index: index}
}

// RGB returns a true color value.
func RGB(r, g, b uint8) ColorValue {
	return ColorValue{Type: ColorRGB, R: r, G: g, B: b}
}

// Indexed returns a 256-color palette value.
func Indexed(index uint8) ColorValue {
	return ColorValue{Type: ColorIndexed, Index: index}
}

func (c ColorValue) IsDefault() bool {
	return c.Type == ColorDefault
}

func (c ColorValue) String() string {
	switch c.Type {
	case ColorDefault:
		return "default"
	case ColorStandard:
		if int(c.Index) < len(standardNames) {
			return standardNames[c.Index]
		}
		return fmt.Sprintf("std:%d", c.Index)
	case ColorIndexed:
		return fmt.Sprintf("idx:%d", c.Index)
	case ColorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return "unknown"
}

// ParseColor accepts a named color ("red", "bright-red", "brightred",
// "bright_red") or a hex triple ("#ffa000", "ffa000").
func ParseColor(name string) (ColorValue, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "default" || n == "none" {
		return ColorValue{}, nil
	}

	canonical := strings.NewReplacer("_", "-", " ", "-").Replace(n)
	if strings.HasPrefix(canonical, "bright") && !strings.HasPrefix(canonical, "bright-") {
		canonical = "bright-" + strings.TrimPrefix(canonical, "bright")
	}
	for i, std := range standardNames {
		if std == canonical {
			return standard(uint8(i)), nil
		}
	}

	hex := n
	if !strings.HasPrefix(hex, "#") {
		// Without "#" only the full form counts, so words like "bad" stay errors.
		if len(hex) != 6 || strings.Trim(hex, "0123456789abcdef") != "" {
			return ColorValue{}, fmt.Errorf("unknown color %q", name)
		}
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return ColorValue{}, fmt.Errorf("unknown color %q", name)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}
