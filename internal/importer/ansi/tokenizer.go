// Package ansi splits escape-coded text, such as colorized output, into
// tokens.
package ansi

// Sources :
// - https://vt100.net/docs/vt510-rm/chapter4.html
// - https://invisible-island.net/xterm/ctlseqs/ctlseqs.html
// - https://ecma-international.org/wp-content/uploads/ECMA-48_5th_edition_june_1991.pdf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/badele/colorans/internal/types"
)

const esc = 0x1B

type Tokenizer struct {
	input  string
	pos    int
	Tokens []types.Token    `json:"tokens"`
	Stats  types.TokenStats `json:"stats"`
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{
		input:  input,
		Tokens: make([]types.Token, 0),
		Stats:  newStats(len(input)),
	}
}

func newStats(size int) types.TokenStats {
	return types.TokenStats{
		TokensByType: make(map[types.TokenType]int),
		SGRCodes:     make(map[string]int),
		CSISequences: make(map[string]int),
		C0Codes:      make(map[byte]int),
		InputSize:    int64(size),
	}
}

// Tokenize consumes the whole input; later calls return the same tokens.
// Unlike a terminal, it does not stop at an interrupted CSI: the broken
// sequence becomes a TokenCSIInterrupted and scanning resumes after it.
func (t *Tokenizer) Tokenize() []types.Token {
	for t.pos < len(t.input) {
		t.next()
	}
	t.calculateStats()
	return t.Tokens
}

func (t *Tokenizer) GetStats() types.TokenStats {
	return t.Stats
}

func (t *Tokenizer) emit(tok types.Token) {
	t.Tokens = append(t.Tokens, tok)
}

func (t *Tokenizer) next() {
	start := t.pos
	c := t.input[t.pos]

	switch {
	case c == esc:
		t.pos++
		t.parseEscape(start)
	case c < 0x20:
		t.pos++
		t.emit(types.Token{Type: types.TokenC0, Pos: start, Raw: t.input[start:t.pos], C0Code: c})
	default:
		t.parseText(start)
	}
}

func (t *Tokenizer) parseEscape(start int) {
	if t.pos >= len(t.input) {
		t.emit(types.Token{Type: types.TokenEscape, Pos: start, Raw: t.input[start:]})
		return
	}

	name, ok := c1Names[t.input[t.pos]]
	if !ok {
		t.parseOtherEscape(start)
		return
	}
	t.pos++

	switch name {
	case "CSI":
		t.parseCSI(start)
	case "DCS":
		data := t.readString(false)
		t.emit(types.Token{Type: types.TokenDCS, Pos: start, Raw: t.input[start:t.pos], Value: data})
	case "OSC":
		data := t.readString(true)
		t.emit(types.Token{
			Type:       types.TokenOSC,
			Pos:        start,
			Raw:        t.input[start:t.pos],
			Value:      data,
			Parameters: strings.SplitN(data, ";", 2),
		})
	default:
		t.emit(types.Token{Type: types.TokenC1, Pos: start, Raw: t.input[start:t.pos], C1Code: name})
	}
}

func (t *Tokenizer) parseCSI(start int) {
	params := t.collectParams()

	if t.pos >= len(t.input) {
		t.emit(types.Token{Type: types.TokenCSI, Pos: start, Raw: t.input[start:], Parameters: params})
		return
	}

	final := t.input[t.pos]
	token := types.Token{Type: types.TokenCSI, Pos: start, Parameters: params}

	// A control character before the final byte breaks the sequence. It is
	// left in the input so it gets its own token.
	if final < 0x20 {
		token.Type = types.TokenCSIInterrupted
		token.Raw = t.input[start:t.pos]
		token.CSINotation = fmt.Sprintf("CSI interrupted by C0 control (0x%02X)", final)
		t.emit(token)
		return
	}

	t.pos++
	token.Raw = t.input[start:t.pos]

	if final == 'm' {
		token.Type = types.TokenSGR
		token.CSINotation = "CSI Pm m"
		token.Signification = strings.Join(DescribeSGR(params), ", ")
		t.emit(token)
		return
	}

	desc, ok := csiFinals[final]
	if !ok {
		token.Type = types.TokenUnknown
		t.emit(token)
		return
	}

	token.CSINotation = desc.notation
	switch final {
	case 'H':
		pos := ParseNumbers(params, []int{1, 1})
		token.Signification = fmt.Sprintf("%s %d", desc.meaning, pos)
	case 'J', 'K':
		token.Signification = strings.Join(DescribeErase(params), ", ")
	default:
		if desc.count > 0 {
			n := desc.count
			if len(params) > 0 {
				n = ParseNumber(params[0], desc.count)
			}
			token.Signification = fmt.Sprintf(desc.meaning, n)
		} else {
			token.Signification = desc.meaning
		}
	}
	t.emit(token)
}

// readString reads a DCS or OSC payload up to its terminator: ESC \ or the
// 8-bit ST, and BEL for OSC.
func (t *Tokenizer) readString(belTerminates bool) string {
	begin := t.pos
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		switch {
		case c == esc && t.pos+1 < len(t.input) && t.input[t.pos+1] == '\\':
			data := t.input[begin:t.pos]
			t.pos += 2
			return data
		case c == 0x9C, belTerminates && c == 0x07:
			data := t.input[begin:t.pos]
			t.pos++
			return data
		}
		t.pos++
	}
	return t.input[begin:]
}

// ESC c, ESC 7, ESC 8, ESC =, ESC >, ESC (0, ESC (B, ESC #8
func (t *Tokenizer) parseOtherEscape(start int) {
	next := t.input[t.pos]
	t.pos++

	if (next == '(' || next == ')' || next == '#') && t.pos < len(t.input) {
		t.pos++
	}

	t.emit(types.Token{Type: types.TokenEscape, Pos: start, Raw: t.input[start:t.pos]})
}

func (t *Tokenizer) collectParams() []string {
	params := make([]string, 0)
	var current strings.Builder

	for t.pos < len(t.input) {
		b := t.input[t.pos]

		switch {
		case b >= '0' && b <= '9':
			current.WriteByte(b)
		case b == ';' || b == ':':
			params = append(params, current.String())
			current.Reset()
		case b == '?' || b == '>' || b == '!' || b == '$' || b == '\'' || b == '"' || b == ' ':
			// private markers and intermediates carry no parameter
		default:
			if current.Len() > 0 || len(params) > 0 {
				params = append(params, current.String())
			}
			return params
		}
		t.pos++
	}

	if current.Len() > 0 {
		params = append(params, current.String())
	}
	return params
}

func (t *Tokenizer) parseText(start int) {
	for t.pos < len(t.input) && t.input[t.pos] >= 0x20 {
		_, size := utf8.DecodeRuneInString(t.input[t.pos:])
		t.pos += size
	}

	text := t.input[start:t.pos]
	t.emit(types.Token{Type: types.TokenText, Pos: start, Raw: text, Value: text})
}

func (t *Tokenizer) calculateStats() {
	t.Stats = newStats(len(t.input))
	t.Stats.TotalTokens = len(t.Tokens)

	for _, token := range t.Tokens {
		t.Stats.TokensByType[token.Type]++

		switch token.Type {
		case types.TokenText:
			t.Stats.TotalTextLength += len(token.Value)
		case types.TokenSGR:
			for _, param := range token.Parameters {
				t.Stats.SGRCodes[param]++
			}
		case types.TokenCSI:
			t.Stats.CSISequences[token.CSINotation]++
		case types.TokenC0:
			t.Stats.C0Codes[token.C0Code]++
		}
	}

	t.Stats.EscapeOverhead = len(t.input) - t.Stats.TotalTextLength
}

// Strip returns input without escape sequences. Control characters such as
// newlines are kept.
func Strip(input string) string {
	var sb strings.Builder
	sb.Grow(len(input))

	for _, token := range NewTokenizer(input).Tokenize() {
		switch token.Type {
		case types.TokenText, types.TokenC0:
			sb.WriteString(token.Raw)
		}
	}
	return sb.String()
}

// DescribeSGR names every SGR parameter in params. Extended colors consume
// their arguments and produce one entry.
func DescribeSGR(params []string) []string {
	result := make([]string, 0, len(params))

	for i := 0; i < len(params); i++ {
		if params[i] == "" {
			result = append(result, sgrNames[0])
			continue
		}

		code, err := strconv.Atoi(params[i])
		if err != nil {
			result = append(result, "Invalid: "+params[i])
			continue
		}

		switch {
		case code == 38 || code == 48 || code == 58:
			desc, consumed := describeExtended(code, params[i+1:])
			result = append(result, desc)
			i += consumed
		case code >= 30 && code <= 37:
			result = append(result, "Foreground"+colorNames[code-30])
		case code >= 40 && code <= 47:
			result = append(result, "Background"+colorNames[code-40])
		case code >= 90 && code <= 97:
			result = append(result, "ForegroundBright"+colorNames[code-90])
		case code >= 100 && code <= 107:
			result = append(result, "BackgroundBright"+colorNames[code-100])
		default:
			if name, ok := sgrNames[code]; ok {
				result = append(result, name)
			} else {
				result = append(result, "Unknown: "+strconv.Itoa(code))
			}
		}
	}

	return result
}

func describeExtended(code int, args []string) (string, int) {
	prefix := "Foreground"
	switch code {
	case 48:
		prefix = "Background"
	case 58:
		prefix = "Underline"
	}

	if len(args) >= 2 && args[0] == "5" {
		return prefix + " Palette Index: " + args[1], 2
	}
	if len(args) >= 4 && args[0] == "2" {
		return prefix + " RGB: " + strings.Join(args[1:4], ","), 4
	}
	return prefix + " Extended: incomplete", len(args)
}

// DescribeErase names the parameters of an erase sequence. No parameter
// means 0.
func DescribeErase(params []string) []string {
	if len(params) == 0 {
		return []string{eraseNames[0]}
	}

	result := make([]string, 0, len(params))
	for _, p := range params {
		code := ParseNumber(p, 0)
		if name, ok := eraseNames[code]; ok {
			result = append(result, name)
		} else {
			result = append(result, "Unknown: "+p)
		}
	}
	return result
}

// ParseNumber parses a numeric parameter, falling back to defaultValue when
// it is empty or invalid.
func ParseNumber(param string, defaultValue int) int {
	if param == "" {
		return defaultValue
	}
	num, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}
	return num
}

// ParseNumbers parses up to len(defaults) numeric parameters. Missing or
// empty parameters keep their default.
func ParseNumbers(params []string, defaults []int) []int {
	result := make([]int, len(defaults))
	copy(result, defaults)

	for i := 0; i < len(params) && i < len(result); i++ {
		result[i] = ParseNumber(params[i], defaults[i])
	}
	return result
}
