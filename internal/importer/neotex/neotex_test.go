package neotex

import (
	"reflect"
	"testing"

	"github.com/badele/colorans/internal/colorize"
	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/exporter"
	"github.com/badele/colorans/internal/processor"
	"github.com/badele/colorans/internal/types"
)

func TestSplitNeopack(t *testing.T) {
	tests := []struct {
		name         string
		width        int
		data         []byte
		expectedText string
		expectedSeq  string
	}{
		{
			name:         "Single line",
			width:        5,
			data:         []byte("Hello | 1:Fr"),
			expectedText: "Hello",
			expectedSeq:  "1:Fr",
		},
		{
			name:         "Multiple lines",
			width:        5,
			data:         []byte("Hello | 1:Fr\nWorld | 1:Fg\n"),
			expectedText: "Hello\nWorld",
			expectedSeq:  "1:Fr\n1:Fg",
		},
		{
			name:         "Unicode text",
			width:        9,
			data:         []byte("Héllo àüé | 1:Fr"),
			expectedText: "Héllo àüé",
			expectedSeq:  "1:Fr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, seq, err := SplitNeopack(tt.width, tt.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != tt.expectedText {
				t.Errorf("Text: expected %q, got %q", tt.expectedText, text)
			}
			if seq != tt.expectedSeq {
				t.Errorf("Sequences: expected %q, got %q", tt.expectedSeq, seq)
			}
		})
	}
}

func TestSplitNeopackMissingSeparator(t *testing.T) {
	_, _, err := SplitNeopack(5, []byte("Hello | 1:Fr\nWorld: 1:Fg"))
	if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
		t.Fatalf("Expected INVALID_INPUT, got %v", err)
	}

	loc := errors.GetLocation(err)
	if loc == nil || loc.Line != "World: 1:Fg" || loc.Start != 5 {
		t.Errorf("Unexpected location %+v", loc)
	}
}

func TestApplyCode(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		checkFn   func(types.Style) bool
		checkDesc string
	}{
		{
			name:      "Foreground Black",
			code:      "Fk",
			checkFn:   func(s types.Style) bool { return s.Foreground == types.Black },
			checkDesc: "Foreground should be standard index 0",
		},
		{
			name:      "Foreground Bright Red",
			code:      "FR",
			checkFn:   func(s types.Style) bool { return s.Foreground == types.BrightRed },
			checkDesc: "Foreground should be standard index 9",
		},
		{
			name:      "Background Red",
			code:      "Br",
			checkFn:   func(s types.Style) bool { return s.Background == types.Red },
			checkDesc: "Background should be standard index 1",
		},
		{
			name:      "Dim ON",
			code:      "EM",
			checkFn:   func(s types.Style) bool { return s.Attributes.Has(types.Dimmed) },
			checkDesc: "Dimmed should be set",
		},
		{
			name:      "Italic ON",
			code:      "EI",
			checkFn:   func(s types.Style) bool { return s.Attributes.Has(types.Italic) },
			checkDesc: "Italic should be set",
		},
		{
			name:      "Reverse ON",
			code:      "ER",
			checkFn:   func(s types.Style) bool { return s.Attributes.Has(types.Reversed) },
			checkDesc: "Reversed should be set",
		},
		{
			name:      "Foreground RGB",
			code:      "FFF0080",
			checkFn:   func(s types.Style) bool { return s.Foreground == types.RGB(255, 0, 128) },
			checkDesc: "Foreground should be RGB(255,0,128)",
		},
		{
			name:      "Background RGB",
			code:      "B00FF00",
			checkFn:   func(s types.Style) bool { return s.Background == types.RGB(0, 255, 0) },
			checkDesc: "Background should be RGB(0,255,0)",
		},
		{
			name:      "Foreground Indexed",
			code:      "F123",
			checkFn:   func(s types.Style) bool { return s.Foreground == types.Indexed(123) },
			checkDesc: "Foreground should be index 123",
		},
		{
			name:      "Background Indexed",
			code:      "B200",
			checkFn:   func(s types.Style) bool { return s.Background == types.Indexed(200) },
			checkDesc: "Background should be index 200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyCode(types.NewStyle(), tt.code); !tt.checkFn(got) {
				t.Errorf("%s: %s, got %v", tt.code, tt.checkDesc, got)
			}
		})
	}
}

func TestApplyCodeOffAndReset(t *testing.T) {
	style := types.NewStyle().WithForeground(types.Red).WithAttributes(types.Italic, types.Underline)

	if got := ApplyCode(style, "Eu"); got.Attributes.Has(types.Underline) || !got.Attributes.Has(types.Italic) {
		t.Errorf("Eu should only turn underline off, got %v", got)
	}
	if got := ApplyCode(style, "R0"); !got.IsPlain() {
		t.Errorf("R0 should reset everything, got %v", got)
	}
	if got := ApplyCode(style, "Zz"); got != style {
		t.Errorf("Unknown code should be ignored, got %v", got)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []Change
		header   Header
	}{
		{
			name: "Empty",
			line: "",
		},
		{
			name:     "Single style",
			line:     "1:Fr",
			expected: []Change{{Column: 0, Codes: []string{"Fr"}}},
		},
		{
			name:     "Multiple styles same position",
			line:     "3:Fr, Bb, EU",
			expected: []Change{{Column: 2, Codes: []string{"Fr", "Bb", "EU"}}},
		},
		{
			name:     "Multiple positions, sorted",
			line:     "8:R0; 1:Fg",
			expected: []Change{{Column: 0, Codes: []string{"Fg"}}, {Column: 7, Codes: []string{"R0"}}},
		},
		{
			name:     "Skip metadata",
			line:     "!V1; !TW6; !NL2; 1:FB",
			expected: []Change{{Column: 0, Codes: []string{"FB"}}},
			header:   Header{Version: 1, Width: 6, Lines: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, header, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(changes, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, changes)
			}
			if header != tt.header {
				t.Errorf("Expected header %+v, got %+v", tt.header, header)
			}
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		line     string
		location string
	}{
		{"1:Fr; x:Fg", "x:Fg"},
		{"1:Fr;  0:Fg", "0:Fg"},
		{"2:Fr, Qq", "2:Fr, Qq"},
		{"Fr", "Fr"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, _, err := ParseLine(tt.line)
			if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
				t.Fatalf("Expected INVALID_INPUT, got %v", err)
			}
			loc := errors.GetLocation(err)
			if loc == nil || loc.Line[loc.Start:loc.End] != tt.location {
				t.Errorf("Expected location %q, got %+v", tt.location, loc)
			}
		})
	}
}

func spans(rules []compose.Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Span.String())
	}
	return out
}

func TestRules(t *testing.T) {
	input := types.NewText("ab\ncdé")
	rules, err := Rules(input, "1:Fr; 2:EU\n2:R0; 3:Bb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"a", "b", "c", "é"}
	if got := spans(rules); !reflect.DeepEqual(got, expected) {
		t.Fatalf("Expected spans %v, got %v", expected, got)
	}

	red := types.NewStyle().WithForeground(types.Red)
	if rules[0].Style != red {
		t.Errorf("Expected red, got %v", rules[0].Style)
	}
	if !rules[2].Style.Attributes.Has(types.Underline) || rules[2].Style.Foreground != types.Red {
		t.Errorf("Style should carry over to the next line, got %v", rules[2].Style)
	}
	if rules[3].Style.Background != types.Blue || !rules[3].Style.Foreground.IsDefault() {
		t.Errorf("Expected blue background after reset, got %v", rules[3].Style)
	}
	for _, r := range rules {
		if !r.Span.SameOrigin(input) {
			t.Fatal("Rules must be carved from the input")
		}
	}
}

func TestRulesInline(t *testing.T) {
	input := types.NewText("ab\ncd")
	rules, err := Rules(input, "2:Fg; 4:R0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := spans(rules); !reflect.DeepEqual(got, []string{"b\nc"}) {
		t.Fatalf("Expected one span across the newline, got %q", got)
	}
}

func TestRulesTooManySequenceLines(t *testing.T) {
	if _, err := Rules(types.NewText("one line"), "1:Fr\n1:Fg\n1:Fb"); !errors.IsErrorCode(err, errors.ErrInvalidInput) {
		t.Fatalf("Expected INVALID_INPUT, got %v", err)
	}
}

func TestRoundTripWithExporter(t *testing.T) {
	on := colorize.New(colorize.WithEnabled(func() bool { return true }))

	input := types.NewText("Red, no red\nsecond")
	colored := on.Colorize(input, nil,
		compose.NewRule(input.Slice(0, 3), types.NewStyle().WithForeground(types.Red)),
		compose.NewRule(input.Slice(8, 15), types.NewStyle().WithAttribute(types.Underline)),
	)

	text, seqs := exporter.ExportToNeotex(processor.Replay(colored))

	replayed := types.NewText(text)
	rules, err := Rules(replayed, seqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != input.String() {
		t.Fatalf("Expected text %q, got %q", input.String(), text)
	}

	want := processor.Replay(colored).ExportANSI()
	if got := processor.Replay(on.Colorize(replayed, nil, rules...)).ExportANSI(); got != want {
		t.Errorf("Round trip changed the rendering:\nexpected %q\ngot      %q", want, got)
	}
}
