package ansi

// C1 control codes (7-bit representation, the byte following ESC)
var c1Names = map[byte]string{
	'D':  "IND", // Index
	'E':  "NEL", // Next Line
	'H':  "HTS", // Horizontal Tab Set
	'M':  "RI",  // Reverse Index
	'P':  "DCS", // Device Control String
	'[':  "CSI", // Control Sequence Introducer
	'\\': "ST",  // String Terminator
	']':  "OSC", // Operating System Command
}

// SGR parameter descriptions, as emitted by the renderer and commonly seen
// in colorized output.
var sgrNames = map[int]string{
	0:  "Reset",
	1:  "Bold",
	2:  "Dimmed",
	3:  "Italic",
	4:  "Underline",
	5:  "Blink",
	6:  "RapidBlink",
	7:  "Reversed",
	8:  "Hidden",
	9:  "Strikethrough",
	21: "DoubleUnderline",
	22: "NormalIntensity",
	23: "ItalicOff",
	24: "UnderlineOff",
	25: "BlinkOff",
	27: "ReversedOff",
	28: "HiddenOff",
	29: "StrikethroughOff",
	39: "ForegroundDefault",
	49: "BackgroundDefault",
	53: "OverlineOn",
	55: "OverlineOff",
	59: "UnderlineColorDefault",
}

var colorNames = [8]string{"Black", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "White"}

// csiFinals describes the CSI sequences the inspector recognizes besides SGR.
// count is the default repetition for cursor moves, zero when not a move.
var csiFinals = map[byte]struct {
	notation string
	meaning  string
	count    int
}{
	'A': {"CSI Ps A", "Cursor Up %d times", 1},
	'B': {"CSI Ps B", "Cursor Down %d times", 1},
	'C': {"CSI Ps C", "Cursor Forward %d times", 1},
	'D': {"CSI Ps D", "Cursor Backward %d times", 1},
	'H': {"CSI Ps ; Ps H", "Cursor Position", 0},
	'J': {"CSI Ps J", "Erase in Display", 0},
	'K': {"CSI Ps K", "Erase in Line", 0},
	's': {"CSI s", "Save Cursor Position", 0},
	'u': {"CSI u", "Restore Cursor Position", 0},
}

// Erase in Display / Erase in Line parameters
var eraseNames = map[int]string{
	0: "EraseBelow",
	1: "EraseAbove",
	2: "EraseAll",
}
