// Package colorize applies style rules to a text and returns the
// escape-coded result.
package colorize

import (
	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/control"
	"github.com/badele/colorans/internal/render"
	"github.com/badele/colorans/internal/types"
)

// Colorizer resolves and renders rules, gated by an enabled capability.
type Colorizer struct {
	enabled func() bool
}

// Option configures a Colorizer.
type Option func(*Colorizer)

// WithEnabled sets the function consulted before every call.
func WithEnabled(enabled func() bool) Option {
	return func(c *Colorizer) {
		c.enabled = enabled
	}
}

// WithSwitch gates the colorizer on s.
func WithSwitch(s *control.Switch) Option {
	return func(c *Colorizer) {
		c.enabled = s.ShouldColorize
	}
}

// New returns a colorizer gated on control.Default unless an option says
// otherwise.
func New(opts ...Option) *Colorizer {
	c := &Colorizer{enabled: control.ShouldColorize}
	for _, opt := range opts {
		opt(c)
	}
	if c.enabled == nil {
		c.enabled = control.ShouldColorize
	}
	return c
}

var defaultColorizer = New()

// Colorize styles input with the process-wide switch.
func Colorize(input types.Text, general *types.Style, rules ...compose.Rule) string {
	return defaultColorizer.Colorize(input, general, rules...)
}

// Colorize returns input with every applicable rule rendered. Bytes outside
// the retained rules are copied unchanged. When styling is disabled the
// input is returned as is, without evaluating any rule.
func (c *Colorizer) Colorize(input types.Text, general *types.Style, rules ...compose.Rule) string {
	output := input.String()
	if !c.enabled() {
		return output
	}

	segments := compose.Resolve(input, general, rules)
	// Splicing right to left keeps the offsets of earlier segments valid.
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		rendered := render.Render(output[seg.Start:seg.End], seg.Style)
		output = output[:seg.Start] + rendered + output[seg.End:]
	}

	return output
}

// Segments returns the resolved segments, or nil when styling is disabled.
func (c *Colorizer) Segments(input types.Text, general *types.Style, rules ...compose.Rule) []compose.Segment {
	if !c.enabled() {
		return nil
	}
	return compose.Resolve(input, general, rules)
}
