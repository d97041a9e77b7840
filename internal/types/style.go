package types

import (
	"fmt"
	"strings"
)

/////////////////////////////////////////////////////////////////////////////
// ATTRIBUTES
/////////////////////////////////////////////////////////////////////////////

type Attribute uint8

// Clear is not a visual attribute: it resets everything composed before it.
const (
	Clear Attribute = iota
	Bold
	Dimmed
	Underline
	Reversed
	Italic
	Blink
	Hidden
	Strikethrough
)

// AllAttributes lists every attribute in enumeration order.
var AllAttributes = []Attribute{Clear, Bold, Dimmed, Underline, Reversed, Italic, Blink, Hidden, Strikethrough}

var attributeNames = map[Attribute]string{
	Clear:         "clear",
	Bold:          "bold",
	Dimmed:        "dimmed",
	Underline:     "underline",
	Reversed:      "reversed",
	Italic:        "italic",
	Blink:         "blink",
	Hidden:        "hidden",
	Strikethrough: "strikethrough",
}

var attributeAliases = map[string]Attribute{
	"dim":      Dimmed,
	"faint":    Dimmed,
	"reverse":  Reversed,
	"inverse":  Reversed,
	"conceal":  Hidden,
	"crossout": Strikethrough,
	"strike":   Strikethrough,
	"reset":    Clear,
}

func (a Attribute) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Attribute(%d)", a)
}

// ParseAttribute resolves an attribute by name, case-insensitively.
func ParseAttribute(name string) (Attribute, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for attr, attrName := range attributeNames {
		if attrName == n {
			return attr, nil
		}
	}
	if attr, ok := attributeAliases[n]; ok {
		return attr, nil
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// AttributeSet is an optional set of attributes. The zero value is absent
// ("no attribute information"), which is distinct from a present but empty
// set ("no attributes, do not inherit any").
type AttributeSet struct {
	bits    uint16
	present bool
}

// NoAttributes returns a present, empty set.
func NoAttributes() AttributeSet {
	return AttributeSet{present: true}
}

// AttributesOf returns a present set holding attrs.
func AttributesOf(attrs ...Attribute) AttributeSet {
	set := NoAttributes()
	for _, attr := range attrs {
		set = set.With(attr)
	}
	return set
}

func (a AttributeSet) IsPresent() bool {
	return a.present
}

// IsEmpty reports whether the set holds no attribute, present or not.
func (a AttributeSet) IsEmpty() bool {
	return a.bits == 0
}

func (a AttributeSet) Has(attr Attribute) bool {
	return a.bits&(1<<attr) != 0
}

// With returns a present set that also holds attr.
func (a AttributeSet) With(attr Attribute) AttributeSet {
	a.present = true
	a.bits |= 1 << attr
	return a
}

// Without returns the set minus attr. Presence is kept.
func (a AttributeSet) Without(attr Attribute) AttributeSet {
	a.bits &^= 1 << attr
	return a
}

// Union returns the union of both sets. The result is absent only when both
// sides are absent.
func (a AttributeSet) Union(other AttributeSet) AttributeSet {
	return AttributeSet{
		bits:    a.bits | other.bits,
		present: a.present || other.present,
	}
}

// Attributes returns the members in enumeration order.
func (a AttributeSet) Attributes() []Attribute {
	var attrs []Attribute
	for _, attr := range AllAttributes {
		if a.Has(attr) {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

func (a AttributeSet) String() string {
	if !a.present {
		return "none"
	}
	names := make([]string, 0, 9)
	for _, attr := range a.Attributes() {
		names = append(names, attr.String())
	}
	return "[" + strings.Join(names, ",") + "]"
}

/////////////////////////////////////////////////////////////////////////////
// STYLE
/////////////////////////////////////////////////////////////////////////////

// Style is an immutable bundle of optional foreground, background and
// attributes. Builders and Merge return new values.
type Style struct {
	Foreground ColorValue
	Background ColorValue
	Attributes AttributeSet
}

// NewStyle returns a style carrying no information.
func NewStyle() Style {
	return Style{}
}

func (s Style) WithForeground(c ColorValue) Style {
	s.Foreground = c
	return s
}

func (s Style) WithBackground(c ColorValue) Style {
	s.Background = c
	return s
}

// WithAttribute adds attr. Adding Clear instead resets the style to exactly
// {Clear} with no colors.
func (s Style) WithAttribute(attr Attribute) Style {
	if attr == Clear {
		return Style{Attributes: AttributesOf(Clear)}
	}
	s.Attributes = s.Attributes.With(attr)
	return s
}

func (s Style) WithAttributes(attrs ...Attribute) Style {
	for _, attr := range attrs {
		s = s.WithAttribute(attr)
	}
	return s
}

// Merge applies other on top of s; other wins. Colors are replaced only when
// other sets them. Attribute sets are unioned unless other carries Clear,
// in which case other replaces the whole style, colors included.
func (s Style) Merge(other Style) Style {
	result := s

	if !other.Foreground.IsDefault() {
		result.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		result.Background = other.Background
	}

	switch {
	case other.Attributes.Has(Clear):
		result = other
	case !s.Attributes.IsPresent() || !other.Attributes.IsPresent():
		if other.Attributes.IsPresent() {
			result.Attributes = other.Attributes
		}
	default:
		result.Attributes = s.Attributes.Union(other.Attributes)
	}

	return result
}

// Add is Merge, for folding.
func (s Style) Add(other Style) Style {
	return s.Merge(other)
}

// IsPlain reports whether rendering s would emit no escape sequence.
func (s Style) IsPlain() bool {
	if !s.Foreground.IsDefault() || !s.Background.IsDefault() {
		return false
	}
	for _, attr := range s.Attributes.Attributes() {
		if attr != Clear {
			return false
		}
	}
	return true
}

func (s Style) Equals(other Style) bool {
	return s == other
}

func (s Style) String() string {
	return fmt.Sprintf("fg:%s bg:%s attrs:%s", s.Foreground, s.Background, s.Attributes)
}
