package types

// origin identifies one input. Each NewText call allocates a distinct origin,
// so two texts with identical bytes never share one.
type origin struct {
	s string
}

// Text is a provenance-tagged slice: a byte range of the string it was
// carved from. Texts carved from the same NewText call can be compared by
// position; texts from different calls are unrelated.
type Text struct {
	origin     *origin
	start, end int
}

// NewText wraps s as a new, independent origin.
func NewText(s string) Text {
	return Text{origin: &origin{s: s}, start: 0, end: len(s)}
}

// Slice returns the sub-range [i, j) of t, relative to t. Bounds are clamped
// into t; an inverted range yields an empty text at i.
func (t Text) Slice(i, j int) Text {
	n := t.Len()
	i = clamp(i, 0, n)
	j = clamp(j, 0, n)
	if j < i {
		j = i
	}
	return Text{origin: t.origin, start: t.start + i, end: t.start + j}
}

// From returns t[i:].
func (t Text) From(i int) Text {
	return t.Slice(i, t.Len())
}

// To returns t[:j].
func (t Text) To(j int) Text {
	return t.Slice(0, j)
}

func (t Text) Len() int {
	return t.end - t.start
}

func (t Text) String() string {
	if t.origin == nil {
		return ""
	}
	return t.origin.s[t.start:t.end]
}

// SameOrigin reports whether t and other were carved from the same NewText.
func (t Text) SameOrigin(other Text) bool {
	return t.origin != nil && t.origin == other.origin
}

// Bounds returns the absolute [start, end) of t inside its origin.
func (t Text) Bounds() (start, end int) {
	return t.start, t.end
}

// Overlaps reports whether two half-open ranges share at least one byte.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return bEnd > aStart && bStart < aEnd
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
