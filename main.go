package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/badele/colorans/internal/colorize"
	"github.com/badele/colorans/internal/control"
	"github.com/badele/colorans/internal/logging"
	"github.com/badele/colorans/internal/report"
)

var version = "dev"

// Globals are shared by every command.
type Globals struct {
	Verbose   int    `short:"v" type:"counter" help:"Increase verbosity (-v info, -vv debug, -vvv trace)."`
	Color     string `enum:"auto,always,never" default:"auto" env:"COLORANS_COLOR" help:"Colorize output: auto, always or never."`
	Encoding  string `short:"e" enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" help:"Input encoding (utf8, cp437, cp850, iso-8859-1)."`
	Normalize bool   `short:"n" help:"Replace CRLF line endings with LF before processing."`
}

type CLI struct {
	Globals

	Render   RenderCmd   `cmd:"" default:"withargs" help:"Colorize input with a rules file and default style flags."`
	Segments SegmentsCmd `cmd:"" help:"Print the resolved style segments of the input."`
	Strip    StripCmd    `cmd:"" help:"Remove escape sequences from the input."`
	Inspect  InspectCmd  `cmd:"" help:"Tokenize ANSI input and describe its escape sequences."`
	Preview  PreviewCmd  `cmd:"" help:"Paint colorized input on the terminal until a key is pressed."`

	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("colorans"),
		kong.Description("Colorize text with overlapping style rules.\n\nIf no file is specified, reads from stdin (pipe)."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	logging.SetupLogger(cli.Verbose)
	applyColorMode(control.Default, cli.Color)

	stderr := control.NewSwitch(os.Stderr)
	applyColorMode(stderr, cli.Color)

	if err := ctx.Run(&cli.Globals); err != nil {
		formatter := report.New(report.WithColorizer(colorize.New(colorize.WithSwitch(stderr))))
		_ = formatter.Write(os.Stderr, err)
		os.Exit(1)
	}
}

func applyColorMode(s *control.Switch, mode string) {
	switch mode {
	case "always":
		s.SetOverride(true)
	case "never":
		s.SetOverride(false)
	default:
		s.UnsetOverride()
	}
}
