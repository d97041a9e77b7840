package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/render"
	"github.com/badele/colorans/internal/types"
)

type TokenizerJSONOutput struct {
	Tokens []types.Token    `json:"tokens"`
	Stats  types.TokenStats `json:"stats"`
}

type StyleJSON struct {
	Foreground string   `json:"foreground,omitempty"`
	Background string   `json:"background,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

type SegmentJSON struct {
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Text      string    `json:"text"`
	Style     StyleJSON `json:"style"`
	Sequences []string  `json:"sequences,omitempty"`
}

type SegmentsJSONOutput struct {
	Input       string        `json:"input"`
	Breakpoints []int         `json:"breakpoints"`
	Segments    []SegmentJSON `json:"segments"`
}

// NewStyleJSON describes style with color and attribute names.
func NewStyleJSON(style types.Style) StyleJSON {
	out := StyleJSON{}
	if !style.Foreground.IsDefault() {
		out.Foreground = style.Foreground.String()
	}
	if !style.Background.IsDefault() {
		out.Background = style.Background.String()
	}
	for _, attr := range style.Attributes.Attributes() {
		out.Attributes = append(out.Attributes, attr.String())
	}
	return out
}

// NewSegmentsJSONOutput describes the segments of input. Breakpoints are
// derived from the segment edges.
func NewSegmentsJSONOutput(input string, segments []compose.Segment) SegmentsJSONOutput {
	out := SegmentsJSONOutput{
		Input:       input,
		Breakpoints: []int{},
		Segments:    make([]SegmentJSON, 0, len(segments)),
	}

	for i, seg := range segments {
		if i == 0 || segments[i-1].End != seg.Start {
			out.Breakpoints = append(out.Breakpoints, seg.Start)
		}
		out.Breakpoints = append(out.Breakpoints, seg.End)

		out.Segments = append(out.Segments, SegmentJSON{
			Start:     seg.Start,
			End:       seg.End,
			Text:      input[seg.Start:seg.End],
			Style:     NewStyleJSON(seg.Style),
			Sequences: render.Sequences(seg.Style),
		})
	}

	return out
}

// TokensJSON writes the tokens and statistics of tok as indented JSON.
func TokensJSON(w io.Writer, tok types.TokenizerWithStats) error {
	return writeJSON(w, TokenizerJSONOutput{
		Tokens: tok.Tokenize(),
		Stats:  tok.GetStats(),
	})
}

// SegmentsJSON writes the segments of input as indented JSON.
func SegmentsJSON(w io.Writer, input string, segments []compose.Segment) error {
	return writeJSON(w, NewSegmentsJSONOutput(input, segments))
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
