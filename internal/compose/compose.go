// Package compose resolves overlapping style rules into disjoint segments.
//
// Rules only apply to the input they were carved from: a rule whose span
// has another origin, or whose span does not overlap the input, is dropped
// silently. This is a policy, not an error path; every input yields a
// defined result.
package compose

import (
	"sort"

	"github.com/badele/colorans/internal/types"
)

// Rule pairs a span of the input with the style to apply there.
type Rule struct {
	Span  types.Text
	Style types.Style
}

// NewRule returns a rule styling span.
func NewRule(span types.Text, style types.Style) Rule {
	return Rule{Span: span, Style: style}
}

// Segment is a disjoint byte range of the input with its resolved style.
type Segment struct {
	Start int
	End   int
	Style types.Style
}

// Len returns the number of bytes covered.
func (s Segment) Len() int {
	return s.End - s.Start
}

// placed is a retained rule translated to input-relative offsets.
type placed struct {
	start, end int
	style      types.Style
}

// Resolve partitions input by the edges of every applicable rule and
// returns one segment per pair of consecutive breakpoints, in ascending
// order. The general style, when given, covers the whole input with the
// lowest precedence. Later rules win over earlier ones.
func Resolve(input types.Text, general *types.Style, rules []Rule) []Segment {
	retained := retain(input, general, rules)
	bounds := breakpoints(retained)
	if len(bounds) < 2 {
		return nil
	}

	segments := make([]Segment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		style := types.NewStyle()
		for _, r := range retained {
			if types.Overlaps(start, end, r.start, r.end) {
				style = style.Merge(r.style)
			}
		}
		segments = append(segments, Segment{Start: start, End: end, Style: style})
	}

	return segments
}

// Breakpoints returns the sorted, deduplicated edges of every rule that
// applies to input.
func Breakpoints(input types.Text, general *types.Style, rules []Rule) []int {
	return breakpoints(retain(input, general, rules))
}

func retain(input types.Text, general *types.Style, rules []Rule) []placed {
	inputStart, inputEnd := input.Bounds()
	n := input.Len()

	retained := make([]placed, 0, len(rules)+1)
	if general != nil && n > 0 {
		retained = append(retained, placed{start: 0, end: n, style: *general})
	}

	for _, rule := range rules {
		if !rule.Span.SameOrigin(input) {
			continue
		}
		spanStart, spanEnd := rule.Span.Bounds()
		if !types.Overlaps(spanStart, spanEnd, inputStart, inputEnd) {
			continue
		}
		start := clamp(spanStart-inputStart, n)
		end := clamp(spanEnd-inputStart, n)
		if end <= start {
			continue
		}
		retained = append(retained, placed{start: start, end: end, style: rule.Style})
	}

	return retained
}

func breakpoints(retained []placed) []int {
	bounds := make([]int, 0, 2*len(retained))
	for _, r := range retained {
		bounds = append(bounds, r.start, r.end)
	}
	sort.Ints(bounds)

	deduped := bounds[:0]
	for _, b := range bounds {
		if len(deduped) == 0 || b != deduped[len(deduped)-1] {
			deduped = append(deduped, b)
		}
	}
	return deduped
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
