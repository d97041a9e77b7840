package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/badele/colorans/internal/colorize"
	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/config"
	"github.com/badele/colorans/internal/control"
	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/exporter"
	"github.com/badele/colorans/internal/importer/ansi"
	"github.com/badele/colorans/internal/importer/neotex"
	"github.com/badele/colorans/internal/logging"
	"github.com/badele/colorans/internal/processor"
	"github.com/badele/colorans/internal/types"
	"github.com/badele/colorans/pkg/colorans"
)

// InputArg is an optional file argument; without it, stdin must be a pipe.
type InputArg struct {
	File string `arg:"" optional:"" type:"path" help:"Input file (default: stdin)."`
}

func (a InputArg) read(g *Globals) (string, error) {
	logger := logging.GetLogger("cli")

	var data []byte
	var err error

	if a.File == "" || a.File == "-" {
		stat, serr := os.Stdin.Stat()
		if serr != nil {
			return "", errors.Wrap(serr, errors.ErrIO, "cannot inspect stdin")
		}
		if stat.Mode()&os.ModeCharDevice != 0 {
			return "", errors.New(errors.ErrInvalidInput, "no input: pass a file or pipe data to stdin")
		}
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrIO, "cannot read stdin")
		}
	} else {
		data, err = os.ReadFile(a.File)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrIO, "cannot read %s", a.File)
		}
	}

	data, err = colorans.ConvertToUTF8(data, g.Encoding)
	if err != nil {
		return "", err
	}
	if g.Normalize {
		data = colorans.NormalizeInput(data)
	}

	logger.Debug().Str("file", a.File).Int("bytes", len(data)).Str("encoding", g.Encoding).Msg("Input read")
	return string(data), nil
}

// StyleFlags select the rules and the default style.
type StyleFlags struct {
	Rules string   `short:"r" type:"path" env:"COLORANS_RULES" help:"Rules file (.toml, .yaml, .yml or .json). Defaults to colorans/rules.toml in the XDG config directories."`
	Fg    string   `help:"Default foreground color (name or #rrggbb)."`
	Bg    string   `help:"Default background color (name or #rrggbb)."`
	Attr  []string `sep:"," help:"Default attributes (bold, underline, ...)."`

	Neotex  string `type:"path" help:"Neotex sequence file whose styles are added as rules."`
	Neopack int    `help:"Input is neopack: text padded to this many columns, \" | \", then neotex sequences."`
}

// unpack returns the text to colorize and the neotex sequences that come
// with it, if any.
func (f StyleFlags) unpack(data string) (string, string, error) {
	if f.Neopack > 0 {
		return neotex.SplitNeopack(f.Neopack, []byte(data))
	}
	if f.Neotex == "" {
		return data, "", nil
	}

	seqs, err := os.ReadFile(f.Neotex)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrIO, "cannot read %s", f.Neotex)
	}
	return data, strings.TrimRight(string(seqs), "\n"), nil
}

// build loads the rules for input. Flags are merged over the default style
// of the rules file; neotex styles come after the rules file and win.
func (f StyleFlags) build(input types.Text, sequences string) (*types.Style, []compose.Rule, error) {
	logger := logging.GetLogger("cli")

	path := f.Rules
	if path == "" {
		if found, ok := config.DefaultRulesPath(); ok {
			path = found
		}
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	general, rules, err := cfg.Build(input)
	if err != nil {
		return nil, nil, err
	}

	if sequences != "" {
		styled, err := neotex.Rules(input, sequences)
		if err != nil {
			return nil, nil, err
		}
		rules = append(rules, styled...)
	}

	if f.Fg != "" || f.Bg != "" || len(f.Attr) > 0 {
		flagStyle, err := config.StyleConfig{Foreground: f.Fg, Background: f.Bg, Attributes: f.Attr}.Style("flags")
		if err != nil {
			return nil, nil, err
		}
		merged := types.NewStyle()
		if general != nil {
			merged = *general
		}
		merged = merged.Merge(flagStyle)
		general = &merged
	}

	logger.Info().Str("rules", path).Int("count", len(rules)).Bool("general", general != nil).Msg("Rules ready")
	return general, rules, nil
}

type RenderCmd struct {
	InputArg
	StyleFlags

	OutputEncoding string `enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" help:"Output encoding."`
}

func (c *RenderCmd) Run(g *Globals) error {
	done := logging.LogOperationStart(logging.GetLogger("cli"), "render")
	defer done()

	data, err := c.read(g)
	if err != nil {
		return err
	}

	data, seqs, err := c.unpack(data)
	if err != nil {
		return err
	}

	input := types.NewText(data)
	general, rules, err := c.build(input, seqs)
	if err != nil {
		return err
	}

	out, err := colorans.ConvertToEncoding([]byte(colorize.Colorize(input, general, rules...)), c.OutputEncoding)
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return errors.Wrap(err, errors.ErrIO, "cannot write output")
	}
	return nil
}

type SegmentsCmd struct {
	InputArg
	StyleFlags

	Format string `short:"f" enum:"table,json,neotex" default:"table" help:"Output format: table, json or neotex."`
	Inline bool   `help:"Flatten neotex output to a single line."`
	Output string `short:"o" type:"path" help:"With neotex, write <output>.neot and <output>.neos instead of stdout."`
}

func (c *SegmentsCmd) Run(g *Globals) error {
	data, err := c.read(g)
	if err != nil {
		return err
	}

	data, seqs, err := c.unpack(data)
	if err != nil {
		return err
	}

	input := types.NewText(data)
	general, rules, err := c.build(input, seqs)
	if err != nil {
		return err
	}

	// Segments are resolved whatever the output, so the switch is forced on.
	colorizer := colorize.New(colorize.WithEnabled(func() bool { return true }))
	segments := colorizer.Segments(input, general, rules...)

	switch c.Format {
	case "json":
		return exporter.SegmentsJSON(os.Stdout, data, segments)
	case "neotex":
		vt := processor.Replay(colorizer.Colorize(input, general, rules...))
		text, seqs := exporter.ExportToNeotex(vt)
		if c.Inline {
			text, seqs = exporter.ExportToInlineNeotex(vt)
		}
		if c.Output != "" {
			textPath, seqPath, err := exporter.WriteNeotexFiles(c.Output, text, seqs)
			if err != nil {
				return err
			}
			logger := logging.GetLogger("cli")
			logger.Info().Str("text", textPath).Str("sequences", seqPath).Msg("Neotex files written")
			return nil
		}
		_, err := fmt.Fprintf(os.Stdout, "%s\n%s\n", text, seqs)
		return err
	default:
		return exporter.ExportSegmentsToTable(data, segments, os.Stdout)
	}
}

type StripCmd struct {
	InputArg

	Replay bool `help:"Replay cursor movements on a virtual terminal instead of dropping sequences."`
	Width  int  `short:"w" default:"0" help:"Virtual terminal width when replaying (0: no wrapping)."`
	Inline bool `help:"Join replayed lines into one."`
}

func (c *StripCmd) Run(g *Globals) error {
	data, err := c.read(g)
	if err != nil {
		return err
	}

	out := ansi.Strip(data)
	if c.Replay {
		tokens := ansi.NewTokenizer(data).Tokenize()
		if c.Inline {
			out = exporter.ExportFlattenedTextInline(c.Width, tokens)
		} else {
			out = exporter.ExportFlattenedText(c.Width, tokens)
		}
	}

	_, err = io.WriteString(os.Stdout, out)
	return err
}

type InspectCmd struct {
	InputArg

	Format string `short:"f" enum:"table,json,stats,styles,ansi,text" default:"table" help:"Output format: table, json, stats, styles (neotex), ansi or text."`
	Width  int    `short:"w" default:"0" help:"Virtual terminal width for styles, ansi and text (0: no wrapping)."`
	Inline bool   `help:"Flatten styles, ansi and text output to a single line."`
}

func (c *InspectCmd) Run(g *Globals) error {
	data, err := c.read(g)
	if err != nil {
		return err
	}

	tokenizer := ansi.NewTokenizer(data)
	tokens := tokenizer.Tokenize()
	logger := logging.GetLogger("cli")
	logger.Debug().Int("tokens", len(tokens)).Msg("Input tokenized")

	w := os.Stdout
	switch c.Format {
	case "json":
		return exporter.TokensJSON(w, tokenizer)
	case "stats":
		return exporter.DisplayStats(w, tokenizer.GetStats())
	case "styles":
		vt := processor.NewVirtualTerminal(c.Width)
		vt.ApplyTokens(tokens)
		text, seqs := exporter.ExportToNeotex(vt)
		if c.Inline {
			text, seqs = exporter.ExportToInlineNeotex(vt)
		}
		_, err := fmt.Fprintf(w, "%s\n%s\n", text, seqs)
		return err
	case "ansi":
		out := exporter.ExportFlattenedANSI(c.Width, tokens)
		if c.Inline {
			out = exporter.ExportFlattenedANSIInline(c.Width, tokens)
		}
		_, err := fmt.Fprintln(w, out)
		return err
	case "text":
		out := exporter.ExportFlattenedText(c.Width, tokens)
		if c.Inline {
			out = exporter.ExportFlattenedTextInline(c.Width, tokens)
		}
		_, err := fmt.Fprintln(w, out)
		return err
	default:
		return exporter.ExportTokensToTable(tokens, w)
	}
}

type PreviewCmd struct {
	InputArg
	StyleFlags
}

func (c *PreviewCmd) Run(g *Globals) error {
	data, err := c.read(g)
	if err != nil {
		return err
	}

	data, seqs, err := c.unpack(data)
	if err != nil {
		return err
	}

	input := types.NewText(data)
	general, rules, err := c.build(input, seqs)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, errors.ErrIO, "cannot open terminal screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, errors.ErrIO, "cannot initialize terminal screen")
	}
	defer screen.Fini()

	segments := colorize.New(colorize.WithSwitch(previewSwitch(g))).Segments(input, general, rules...)
	exporter.Preview(screen, data, segments)
	return nil
}

// previewSwitch is on unless styling was turned off explicitly: the screen
// is a terminal by construction.
func previewSwitch(g *Globals) *control.Switch {
	s := control.NewSwitch(nil)
	s.SetOverride(g.Color != "never")
	return s
}
