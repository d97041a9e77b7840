// Package colorans provides a public API for colorizing strings with
// overlapping style rules.
//
// This package provides functions to:
//   - Build styles from colors and attributes
//   - Carve rules from the exact input they style
//   - Resolve overlapping rules and render them as ANSI escape sequences
//   - Convert between character encodings (CP437, CP850, ISO-8859-1, UTF-8)
//
// Example usage:
//
//	import (
//		"github.com/badele/colorans/pkg/colorans"
//		"github.com/badele/colorans/pkg/colorans/foreground"
//	)
//
//	input := colorans.NewText("Red, no red")
//	out := colorans.Colorize(input, nil, colorans.NewRule(input.Slice(0, 3), foreground.Red))
package colorans

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/badele/colorans/internal/colorize"
	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/control"
	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/importer/ansi"
	"github.com/badele/colorans/internal/render"
	"github.com/badele/colorans/internal/types"
)

// Type aliases for public API
type (
	// Text is a string carrying the identity of the input it was carved from
	Text = types.Text

	// Style is an immutable bundle of optional colors and attributes
	Style = types.Style

	// ColorValue represents a color (standard, indexed, or RGB)
	ColorValue = types.ColorValue

	// ColorType represents the type of color encoding
	ColorType = types.ColorType

	// Attribute is a text attribute such as Bold or Underline
	Attribute = types.Attribute

	// AttributeSet is an optional set of attributes
	AttributeSet = types.AttributeSet

	// Rule pairs a span of the input with a style
	Rule = compose.Rule

	// Segment is a disjoint range of the input with its resolved style
	Segment = compose.Segment

	// Colorizer colorizes with an injected styling switch
	Colorizer = colorize.Colorizer

	// Switch is a styling switch with an explicit override
	Switch = control.Switch
)

// Color type constants
const (
	ColorDefault  = types.ColorDefault
	ColorStandard = types.ColorStandard
	ColorIndexed  = types.ColorIndexed
	ColorRGB      = types.ColorRGB
)

// Attribute constants
const (
	Clear         = types.Clear
	Bold          = types.Bold
	Dimmed        = types.Dimmed
	Underline     = types.Underline
	Reversed      = types.Reversed
	Italic        = types.Italic
	Blink         = types.Blink
	Hidden        = types.Hidden
	Strikethrough = types.Strikethrough
)

// NewText starts a new input. Rules only apply to texts carved from it.
func NewText(s string) Text {
	return types.NewText(s)
}

// NewStyle returns a style carrying no information.
func NewStyle() Style {
	return types.NewStyle()
}

// NewRule styles span.
func NewRule(span Text, style Style) Rule {
	return compose.NewRule(span, style)
}

// RGB returns a true color.
func RGB(r, g, b uint8) ColorValue {
	return types.RGB(r, g, b)
}

// ParseColor accepts a color name or a hex triple.
func ParseColor(name string) (ColorValue, error) {
	c, err := types.ParseColor(name)
	if err != nil {
		return ColorValue{}, errors.Wrap(err, errors.ErrInvalidColor, "invalid color")
	}
	return c, nil
}

// ParseAttribute resolves an attribute by name.
func ParseAttribute(name string) (Attribute, error) {
	a, err := types.ParseAttribute(name)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrInvalidRule, "invalid attribute")
	}
	return a, nil
}

// Colorize renders input with the general style and rules, using the
// process-wide styling switch. Rules carved from another input are ignored.
func Colorize(input Text, general *Style, rules ...Rule) string {
	return colorize.Colorize(input, general, rules...)
}

// NewColorizer returns a colorizer that asks enabled before every call.
func NewColorizer(enabled func() bool) *Colorizer {
	return colorize.New(colorize.WithEnabled(enabled))
}

// Resolve returns the disjoint styled segments of input.
func Resolve(input Text, general *Style, rules ...Rule) []Segment {
	return compose.Resolve(input, general, rules)
}

// Render wraps text in the escape sequences of style.
func Render(text string, style Style) string {
	return render.Render(text, style)
}

// Strip removes escape sequences, keeping text and control characters.
func Strip(s string) string {
	return ansi.Strip(s)
}

// SetOverride forces styling on or off for the whole process.
func SetOverride(enabled bool) {
	control.SetOverride(enabled)
}

// UnsetOverride goes back to terminal and environment detection.
func UnsetOverride() {
	control.UnsetOverride()
}

// ShouldColorize reports whether the process-wide switch is on.
func ShouldColorize() bool {
	return control.ShouldColorize()
}

// UTF-8 BOM (Byte Order Mark) sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripUTF8BOM removes the UTF-8 BOM if present at the beginning of the data
func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && bytes.Equal(data[:3], utf8BOM) {
		return data[3:]
	}
	return data
}

// NormalizeInput replaces CRLF line endings with LF so byte offsets match
// what a terminal shows.
func NormalizeInput(data []byte) []byte {
	if !bytes.Contains(data, []byte("\r\n")) {
		return data
	}
	return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
}

func charmapFor(name string) (*charmap.Charmap, error) {
	switch name {
	case "cp437":
		return charmap.CodePage437, nil
	case "cp850":
		return charmap.CodePage850, nil
	case "iso-8859-1":
		return charmap.ISO8859_1, nil
	}
	return nil, errors.Newf(errors.ErrEncoding, "unsupported encoding: %s", name)
}

// ConvertToUTF8 converts byte data from a source encoding to UTF-8.
// Supported encodings: "utf8", "cp437", "cp850", "iso-8859-1"
// The UTF-8 BOM (Byte Order Mark) is automatically stripped if present.
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	if sourceEncoding == "utf8" || sourceEncoding == "" {
		return stripUTF8BOM(data), nil
	}

	cm, err := charmapFor(sourceEncoding)
	if err != nil {
		return nil, err
	}

	utf8Data, err := transformAll(data, cm.NewDecoder())
	if err != nil {
		return nil, err
	}
	return stripUTF8BOM(utf8Data), nil
}

// ConvertToEncoding converts UTF-8 data to the target encoding.
// Supported encodings: "utf8", "cp437", "cp850", "iso-8859-1"
func ConvertToEncoding(data []byte, targetEncoding string) ([]byte, error) {
	if targetEncoding == "utf8" || targetEncoding == "" {
		return data, nil
	}

	cm, err := charmapFor(targetEncoding)
	if err != nil {
		return nil, err
	}
	return transformAll(data, cm.NewEncoder())
}

func transformAll(data []byte, t transform.Transformer) ([]byte, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), t))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEncoding, "encoding conversion error")
	}
	return out, nil
}
