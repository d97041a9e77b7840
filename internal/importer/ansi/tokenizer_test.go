package ansi

import (
	"reflect"
	"testing"

	"github.com/badele/colorans/internal/types"
)

func TestTokenizeText(t *testing.T) {
	tokens := NewTokenizer("Hello World").Tokenize()

	if len(tokens) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Type != types.TokenText {
		t.Errorf("Expected types.TokenText, got %v", tokens[0].Type)
	}
	if tokens[0].Value != "Hello World" {
		t.Errorf("Expected 'Hello World', got %q", tokens[0].Value)
	}
}

func TestTokenizeC0(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected byte
	}{
		{"LF", "\n", 0x0A},
		{"CR", "\r", 0x0D},
		{"BEL", "\a", 0x07},
		{"HT", "\t", 0x09},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).Tokenize()

			if len(tokens) != 1 {
				t.Fatalf("Expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != types.TokenC0 {
				t.Errorf("Expected types.TokenC0, got %v", tokens[0].Type)
			}
			if tokens[0].C0Code != tt.expected {
				t.Errorf("Expected code 0x%02X, got 0x%02X", tt.expected, tokens[0].C0Code)
			}
		})
	}
}

func TestTokenizeSGR(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedParams []string
		expectedDesc   string
	}{
		{"Reset", "\x1b[0m", []string{"0"}, "Reset"},
		{"Empty", "\x1b[m", []string{}, ""},
		{"Red", "\x1b[31m", []string{"31"}, "ForegroundRed"},
		{"Multiple", "\x1b[1;4;31m", []string{"1", "4", "31"}, "Bold, Underline, ForegroundRed"},
		{"Palette", "\x1b[38;5;123m", []string{"38", "5", "123"}, "Foreground Palette Index: 123"},
		{"RGB", "\x1b[48;2;200;200;200m", []string{"48", "2", "200", "200", "200"}, "Background RGB: 200,200,200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).Tokenize()

			if len(tokens) != 1 {
				t.Fatalf("Expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != types.TokenSGR {
				t.Errorf("Expected types.TokenSGR, got %v", tokens[0].Type)
			}
			if !reflect.DeepEqual(tokens[0].Parameters, tt.expectedParams) {
				t.Errorf("Expected params %v, got %v", tt.expectedParams, tokens[0].Parameters)
			}
			if tokens[0].Signification != tt.expectedDesc {
				t.Errorf("Expected signification %q, got %q", tt.expectedDesc, tokens[0].Signification)
			}
		})
	}
}

func TestTokenizeCSI(t *testing.T) {
	tests := []struct {
		name                  string
		input                 string
		expectedParams        []string
		expectedNotation      string
		expectedSignification string
	}{
		{"CursorPos", "\x1b[10;5H", []string{"10", "5"}, "CSI Ps ; Ps H", "Cursor Position [10 5]"},
		{"CursorHome", "\x1b[H", []string{}, "CSI Ps ; Ps H", "Cursor Position [1 1]"},
		{"CursorUp", "\x1b[5A", []string{"5"}, "CSI Ps A", "Cursor Up 5 times"},
		{"CursorBackward", "\x1b[D", []string{}, "CSI Ps D", "Cursor Backward 1 times"},
		{"EraseDisplay", "\x1b[2J", []string{"2"}, "CSI Ps J", "EraseAll"},
		{"EraseLine", "\x1b[K", []string{}, "CSI Ps K", "EraseBelow"},
		{"Save", "\x1b[s", []string{}, "CSI s", "Save Cursor Position"},
		{"PrivateMode", "\x1b[?25h", []string{"25"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).Tokenize()

			if len(tokens) != 1 {
				t.Fatalf("Expected 1 token, got %d", len(tokens))
			}
			if !reflect.DeepEqual(tokens[0].Parameters, tt.expectedParams) {
				t.Errorf("Expected params %v, got %v", tt.expectedParams, tokens[0].Parameters)
			}
			if tokens[0].CSINotation != tt.expectedNotation {
				t.Errorf("Expected notation %q, got %q", tt.expectedNotation, tokens[0].CSINotation)
			}
			if tokens[0].Signification != tt.expectedSignification {
				t.Errorf("Expected signification %q, got %q", tt.expectedSignification, tokens[0].Signification)
			}
		})
	}
}

func TestTokenizeUnknownCSI(t *testing.T) {
	tokens := NewTokenizer("\x1b[?25h").Tokenize()

	if tokens[0].Type != types.TokenUnknown {
		t.Errorf("Expected types.TokenUnknown, got %v", tokens[0].Type)
	}
	if tokens[0].Raw != "\x1b[?25h" {
		t.Errorf("Expected raw sequence, got %q", tokens[0].Raw)
	}
}

func TestTokenizeOSC(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedParams []string
	}{
		{"WindowTitle", "\x1b]2;My Title\x07", []string{"2", "My Title"}},
		{"IconTitle", "\x1b]1;Icon\x1b\\", []string{"1", "Icon"}},
		{"Hyperlink", "\x1b]8;;http://x/\x07", []string{"8", ";http://x/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).Tokenize()

			if len(tokens) != 1 {
				t.Fatalf("Expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != types.TokenOSC {
				t.Errorf("Expected types.TokenOSC, got %v", tokens[0].Type)
			}
			if !reflect.DeepEqual(tokens[0].Parameters, tt.expectedParams) {
				t.Errorf("Expected params %v, got %v", tt.expectedParams, tokens[0].Parameters)
			}
		})
	}
}

func TestTokenizeDCS(t *testing.T) {
	tokens := NewTokenizer("\x1bP1$qm\x1b\\").Tokenize()

	if len(tokens) != 1 {
		t.Fatalf("Expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Type != types.TokenDCS {
		t.Errorf("Expected types.TokenDCS, got %v", tokens[0].Type)
	}
	if tokens[0].Value != "1$qm" {
		t.Errorf("Expected value '1$qm', got %q", tokens[0].Value)
	}
}

func TestTokenizeC1AndEscape(t *testing.T) {
	tests := []struct {
		input        string
		expectedType types.TokenType
		expectedCode string
	}{
		{"\x1bE", types.TokenC1, "NEL"},
		{"\x1bD", types.TokenC1, "IND"},
		{"\x1bM", types.TokenC1, "RI"},
		{"\x1bc", types.TokenEscape, ""},
		{"\x1b(B", types.TokenEscape, ""},
		{"\x1b", types.TokenEscape, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).Tokenize()

			if len(tokens) != 1 {
				t.Fatalf("Expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expectedType {
				t.Errorf("Expected %v, got %v", tt.expectedType, tokens[0].Type)
			}
			if tokens[0].C1Code != tt.expectedCode {
				t.Errorf("Expected code %q, got %q", tt.expectedCode, tokens[0].C1Code)
			}
			if tokens[0].Raw != tt.input {
				t.Errorf("Expected raw %q, got %q", tt.input, tokens[0].Raw)
			}
		})
	}
}

func TestTokenizeColorizedOutput(t *testing.T) {
	input := "\x1b[31m\x1b[48;2;200;200;200mR\x1b[0m\x1b[31m\x1b[0m, ok"
	tokens := NewTokenizer(input).Tokenize()

	want := []types.TokenType{
		types.TokenSGR, types.TokenSGR, types.TokenText, types.TokenSGR,
		types.TokenSGR, types.TokenSGR, types.TokenText,
	}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tok := range tokens {
		if tok.Type != want[i] {
			t.Errorf("Token %d: expected %v, got %v", i, want[i], tok.Type)
		}
	}

	// Positions index the input.
	for _, tok := range tokens {
		if input[tok.Pos:tok.Pos+len(tok.Raw)] != tok.Raw {
			t.Errorf("Token at %d does not match input: %q", tok.Pos, tok.Raw)
		}
	}
}

func TestTokenizeCSIInterrupted(t *testing.T) {
	tokens := NewTokenizer("\x1b[10;5\rok").Tokenize()

	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Type != types.TokenCSIInterrupted {
		t.Errorf("Expected types.TokenCSIInterrupted, got %v", tokens[0].Type)
	}
	if tokens[0].CSINotation != "CSI interrupted by C0 control (0x0D)" {
		t.Errorf("Unexpected notation %q", tokens[0].CSINotation)
	}
	if tokens[1].Type != types.TokenC0 || tokens[1].C0Code != '\r' {
		t.Errorf("Expected the interrupting CR as its own token, got %v", tokens[1])
	}
	if tokens[2].Value != "ok" {
		t.Errorf("Expected scanning to resume, got %v", tokens[2])
	}
}

func TestStats(t *testing.T) {
	input := "\x1b[1;31mab\x1b[0m\ncd"
	tokenizer := NewTokenizer(input)
	tokenizer.Tokenize()
	stats := tokenizer.GetStats()

	if stats.TotalTokens != 5 {
		t.Errorf("Expected 5 tokens, got %d", stats.TotalTokens)
	}
	if stats.TokensByType[types.TokenSGR] != 2 {
		t.Errorf("Expected 2 SGR tokens, got %d", stats.TokensByType[types.TokenSGR])
	}
	if stats.SGRCodes["31"] != 1 || stats.SGRCodes["0"] != 1 {
		t.Errorf("Unexpected SGR codes %v", stats.SGRCodes)
	}
	if stats.C0Codes['\n'] != 1 {
		t.Errorf("Expected 1 LF, got %d", stats.C0Codes['\n'])
	}
	if stats.TotalTextLength != 4 {
		t.Errorf("Expected text length 4, got %d", stats.TotalTextLength)
	}
	if stats.InputSize != int64(len(input)) {
		t.Errorf("Expected input size %d, got %d", len(input), stats.InputSize)
	}
	if stats.EscapeOverhead != len(input)-4 {
		t.Errorf("Expected overhead %d, got %d", len(input)-4, stats.EscapeOverhead)
	}

	if again := tokenizer.Tokenize(); len(again) != 5 || tokenizer.GetStats().TokensByType[types.TokenSGR] != 2 {
		t.Errorf("Expected a second Tokenize to leave tokens and stats unchanged, got %d tokens and %v",
			len(again), tokenizer.GetStats().TokensByType)
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"", ""},
		{"\x1b[31mRed\x1b[0m, no red", "Red, no red"},
		{"a\x1b]0;title\x07b\nc", "ab\nc"},
		{"\x1b[32m\x1b[3m\x1b[1mb\x1b[0m\x1b[32m\x1b[3m\x1b[0m\x1b[32m\x1b[0m", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := Strip(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDescribeSGR(t *testing.T) {
	tests := []struct {
		name     string
		params   []string
		expected []string
	}{
		{"Empty is reset", []string{""}, []string{"Reset"}},
		{"Bold Red", []string{"1", "31"}, []string{"Bold", "ForegroundRed"}},
		{"Bright", []string{"94", "101"}, []string{"ForegroundBrightBlue", "BackgroundBrightRed"}},
		{"Hidden", []string{"8"}, []string{"Hidden"}},
		{"Palette then bold", []string{"38", "5", "123", "1"}, []string{"Foreground Palette Index: 123", "Bold"}},
		{"Incomplete", []string{"48", "2", "1"}, []string{"Background Extended: incomplete"}},
		{"Unknown", []string{"66"}, []string{"Unknown: 66"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DescribeSGR(tt.params)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		name     string
		params   []string
		expected []int
	}{
		{"Defaults", []string{}, []int{1, 1}},
		{"Both", []string{"3", "4"}, []int{3, 4}},
		{"Empty first", []string{"", "4"}, []int{1, 4}},
		{"Invalid", []string{"x"}, []int{1, 1}},
		{"Extra ignored", []string{"2", "3", "4"}, []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defaults := []int{1, 1}
			if got := ParseNumbers(tt.params, defaults); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if defaults[0] != 1 || defaults[1] != 1 {
				t.Errorf("Defaults were modified: %v", defaults)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		token    types.Token
		expected string
	}{
		{types.Token{Type: types.TokenText, Value: "Hello"}, "TEXT: Hello"},
		{types.Token{Type: types.TokenC0, C0Code: 0x0A}, "C0: LF"},
		{types.Token{Type: types.TokenC0, C0Code: 0xFF}, "C0: unknown"},
		{types.Token{Type: types.TokenC1, C1Code: "NEL"}, "C1: NEL"},
		{types.Token{Type: types.TokenSGR, CSINotation: "CSI Pm m"}, "TokenSGR Notation: CSI Pm m"},
		{types.Token{Type: types.TokenEscape, Raw: "\x1bc"}, "TokenEscape: \x1bc"},
		{types.Token{Type: types.TokenUnknown}, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.token.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
