package neotex

// Format neotex
// <POSITION>:<STYLE1>, <STYLE2>, ...; <POSITION>:<STYLE1>, ...
//
// One sequence line per text line. Positions are 1-indexed rune columns.
// A single sequence line for a multi-line text is the inline form: its
// positions run over all lines, newlines excluded.
//
// Colors:
//   Foreground colors = F<color>
//   Background colors = B<color>
//   <color> lowercase = normal colors / uppercase = bright colors
//   k/K = Black, r/R = Red, g/G = Green, y/Y = Yellow
//   b/B = Blue, m/M = Magenta, c/C = Cyan, w/W = White
//   FD = Foreground Default, BD = Background Default
//
// RGB Colors:
//   FRRGGBB = Foreground RGB (e.g., FFF0080 for RGB(255, 0, 128))
//   BRRGGBB = Background RGB (e.g., B00FF00 for RGB(0, 255, 0))
//
// Indexed Colors (256 color palette):
//   Fxxx = Foreground indexed color (e.g., F123 for color index 123)
//   Bxxx = Background indexed color (e.g., B200 for color index 200)
//
// Effects:
//   E<effect> uppercase = ON / lowercase = OFF
//   M/m = Dim, I/i = Italic, U/u = Underline
//   B/b = Blink, R/r = Reverse
//
// Special:
//   R0 = Reset all styles
//   !<header> = metadata such as !V1 (version), !TW80 (width), !NL25 (lines)

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/types"
)

// Mapping neotex codes to SGR parameters
var neotexToSGR = map[string]string{
	// Foreground colors (lowercase = normal, uppercase = bright)
	"Fk": "30", "FK": "90", // Black
	"Fr": "31", "FR": "91", // Red
	"Fg": "32", "FG": "92", // Green
	"Fy": "33", "FY": "93", // Yellow
	"Fb": "34", "FB": "94", // Blue
	"Fm": "35", "FM": "95", // Magenta
	"Fc": "36", "FC": "96", // Cyan
	"Fw": "37", "FW": "97", // White
	"FD": "39", // Foreground Default

	// Background colors (lowercase = normal, uppercase = bright)
	"Bk": "40", "BK": "100", // Black
	"Br": "41", "BR": "101", // Red
	"Bg": "42", "BG": "102", // Green
	"By": "43", "BY": "103", // Yellow
	"Bb": "44", "BB": "104", // Blue
	"Bm": "45", "BM": "105", // Magenta
	"Bc": "46", "BC": "106", // Cyan
	"Bw": "47", "BW": "107", // White
	"BD": "49", // Background Default

	// Effects (uppercase = ON, lowercase = OFF)
	"EM": "2", "Em": "22", // Dim
	"EI": "3", "Ei": "23", // Italic
	"EU": "4", "Eu": "24", // Underline
	"EB": "5", "Eb": "25", // Blink
	"ER": "7", "Er": "27", // Reverse

	// Special
	"R0": "0", // Reset
}

// Change is a set of codes taking effect at a 0-indexed rune column.
type Change struct {
	Column int
	Codes  []string
}

// Header holds the "!" metadata of a sequence line.
type Header struct {
	Version int
	Width   int
	Lines   int
}

// parseRGBHex parses a 6-character hex string (RRGGBB) and returns R, G, B values
func parseRGBHex(hexStr string) (r, g, b uint8, err error) {
	if len(hexStr) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid RGB hex string length: %d", len(hexStr))
	}

	rgb, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return 0, 0, 0, err
	}

	return uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), nil
}

// CodeToSGR converts one neotex code to SGR parameters.
func CodeToSGR(code string) ([]string, bool) {
	if len(code) == 7 && (code[0] == 'F' || code[0] == 'B') {
		if r, g, b, err := parseRGBHex(code[1:]); err == nil {
			lead := "38"
			if code[0] == 'B' {
				lead = "48"
			}
			return []string{lead, "2", strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}, true
		}
	}

	if len(code) >= 2 && len(code) <= 4 && (code[0] == 'F' || code[0] == 'B') {
		if index, err := strconv.Atoi(code[1:]); err == nil && index >= 0 && index <= 255 {
			lead := "38"
			if code[0] == 'B' {
				lead = "48"
			}
			return []string{lead, "5", strconv.Itoa(index)}, true
		}
	}

	sgr, ok := neotexToSGR[code]
	if !ok {
		return nil, false
	}
	return []string{sgr}, true
}

// ApplyCode returns style updated by a neotex code. Unknown codes leave it
// unchanged.
func ApplyCode(style types.Style, code string) types.Style {
	params, ok := CodeToSGR(code)
	if !ok {
		return style
	}
	return style.ApplySGR(types.ParseSGRParams(params))
}

// ParseLine parses one sequence line into changes sorted by column, and the
// header entries it carries.
func ParseLine(line string) ([]Change, Header, error) {
	var changes []Change
	var header Header

	offset := 0
	for _, raw := range strings.Split(line, ";") {
		start := offset + len(raw) - len(strings.TrimLeft(raw, " \t"))
		offset += len(raw) + 1

		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		if strings.HasPrefix(entry, "!") {
			parseHeader(entry, &header)
			continue
		}

		parts := strings.SplitN(entry, ":", 2)
		position, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if len(parts) != 2 || err != nil || position < 1 {
			return nil, header, errors.Newf(errors.ErrInvalidInput, "invalid neotex entry %q", entry).
				WithLocation(line, start, start+len(entry))
		}

		var codes []string
		for _, code := range strings.Split(parts[1], ",") {
			code = strings.TrimSpace(code)
			if _, ok := CodeToSGR(code); !ok {
				return nil, header, errors.Newf(errors.ErrInvalidInput, "unknown neotex code %q", code).
					WithLocation(line, start, start+len(entry))
			}
			codes = append(codes, code)
		}
		changes = append(changes, Change{Column: position - 1, Codes: codes})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Column < changes[j].Column
	})
	return changes, header, nil
}

func parseHeader(entry string, header *Header) {
	for _, field := range []struct {
		prefix string
		value  *int
	}{
		{"!V", &header.Version},
		{"!TW", &header.Width},
		{"!NL", &header.Lines},
	} {
		if v, ok := strings.CutPrefix(entry, field.prefix); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*field.value = n
			}
			return
		}
	}
}

// Rules turns neotex sequences into rules carved from input. The style in
// effect at the end of a line carries over to the next one.
func Rules(input types.Text, sequences string) ([]compose.Rule, error) {
	text := input.String()
	seqLines := strings.Split(sequences, "\n")

	var lines [][2]int
	if len(seqLines) == 1 {
		lines = [][2]int{{0, len(text)}}
	} else {
		start := 0
		for i := 0; i <= len(text); i++ {
			if i == len(text) || text[i] == '\n' {
				lines = append(lines, [2]int{start, i})
				start = i + 1
			}
		}
	}
	if len(seqLines) > len(lines) {
		return nil, errors.Newf(errors.ErrInvalidInput, "%d sequence lines for %d text lines", len(seqLines), len(lines))
	}

	var rules []compose.Rule
	emit := func(cells []int, from, to int, style types.Style) {
		if to > from && !style.IsPlain() {
			rules = append(rules, compose.NewRule(input.Slice(cells[from], cells[to]), style))
		}
	}

	current := types.NewStyle()
	for i, bounds := range lines {
		cells := runeOffsets(text, bounds[0], bounds[1])
		last := len(cells) - 1

		var changes []Change
		if i < len(seqLines) {
			var err error
			if changes, _, err = ParseLine(seqLines[i]); err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "sequence line %d", i+1)
			}
		}

		from := 0
		for _, change := range changes {
			column := min(change.Column, last)
			emit(cells, from, column, current)
			for _, code := range change.Codes {
				current = ApplyCode(current, code)
			}
			from = column
		}
		emit(cells, from, last, current)
	}

	return rules, nil
}

// runeOffsets returns the byte offset of every rune of text[start:end]
// except newlines, followed by end.
func runeOffsets(text string, start, end int) []int {
	cells := make([]int, 0, end-start+1)
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(text[i:end])
		if r != '\n' {
			cells = append(cells, i)
		}
		i += size
	}
	return append(cells, end)
}

// SplitNeopack separates neopack data, lines of "<text> | <sequences>" with
// text padded to width runes, into text and sequences.
func SplitNeopack(width int, data []byte) (text string, sequences string, err error) {
	const separator = " | "

	var textLines, seqLines []string
	for n, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		runes := []rune(line)
		sep := []rune(separator)

		if len(runes) < width+len(sep) || string(runes[width:width+len(sep)]) != separator {
			cut := len(string(runes[:min(width, len(runes))]))
			return "", "", errors.Newf(errors.ErrInvalidInput, "line %d: separator %q not found at column %d", n+1, separator, width+1).
				WithLocation(line, cut, len(line))
		}

		textLines = append(textLines, string(runes[:width]))
		seqLines = append(seqLines, string(runes[width+len(sep):]))
	}

	return strings.Join(textLines, "\n"), strings.Join(seqLines, "\n"), nil
}
