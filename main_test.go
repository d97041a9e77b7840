package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badele/colorans/internal/control"
	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/types"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("colorans"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	return &cli, ctx, err
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		args    []string
		command string
	}{
		{[]string{"input.txt"}, "render <file>"},
		{[]string{"render", "--fg", "red", "input.txt"}, "render <file>"},
		{[]string{"segments", "-f", "json", "input.txt"}, "segments <file>"},
		{[]string{"strip", "--replay", "-w", "80"}, "strip"},
		{[]string{"inspect", "--format", "stats", "art.ans"}, "inspect <file>"},
		{[]string{"preview", "input.txt"}, "preview <file>"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			_, ctx, err := parse(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.command, ctx.Command())
		})
	}
}

func TestParseFlags(t *testing.T) {
	cli, _, err := parse(t, "-vv", "--color", "never", "-e", "cp437", "segments", "--attr", "bold,underline", "in.txt")
	require.NoError(t, err)

	assert.Equal(t, 2, cli.Verbose)
	assert.Equal(t, "never", cli.Color)
	assert.Equal(t, "cp437", cli.Encoding)
	assert.Equal(t, []string{"bold", "underline"}, cli.Segments.Attr)
	assert.Equal(t, "table", cli.Segments.Format)

	_, _, err = parse(t, "--color", "sometimes", "in.txt")
	assert.Error(t, err)

	_, _, err = parse(t, "inspect", "-f", "xml", "in.txt")
	assert.Error(t, err)
}

func TestParseEnvironment(t *testing.T) {
	t.Setenv("COLORANS_COLOR", "always")
	t.Setenv("COLORANS_RULES", "/tmp/rules.yaml")

	cli, _, err := parse(t, "render", "in.txt")
	require.NoError(t, err)
	assert.Equal(t, "always", cli.Color)
	assert.Equal(t, "/tmp/rules.yaml", cli.Render.Rules)
}

func TestStyleFlagsBuild(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "rules.toml")
	content := "[default]\nforeground = \"white\"\nattributes = [\"italic\"]\n\n[[rules]]\nmatch = \"b+\"\nforeground = \"red\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	input := types.NewText("abba")
	general, rules, err := StyleFlags{Rules: path, Fg: "blue", Attr: []string{"bold"}}.build(input, "")
	require.NoError(t, err)

	require.NotNil(t, general)
	assert.Equal(t, types.Blue, general.Foreground)
	assert.True(t, general.Attributes.Has(types.Italic))
	assert.True(t, general.Attributes.Has(types.Bold))

	require.Len(t, rules, 1)
	assert.Equal(t, "bb", rules[0].Span.String())
}

func TestStyleFlagsBuildWithoutRules(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "none"))

	general, rules, err := StyleFlags{}.build(types.NewText("abc"), "")
	require.NoError(t, err)
	assert.Nil(t, general)
	assert.Empty(t, rules)

	_, _, err = StyleFlags{Bg: "mauve"}.build(types.NewText("abc"), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidColor))

	_, _, err = StyleFlags{Rules: filepath.Join(dir, "missing.toml")}.build(types.NewText("abc"), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestNeotexSources(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "none"))

	text, seqs, err := StyleFlags{Neopack: 3}.unpack("abc | 2:Fr\ndef | 1:R0\n")
	require.NoError(t, err)
	assert.Equal(t, "abc\ndef", text)

	input := types.NewText(text)
	_, rules, err := StyleFlags{}.build(input, seqs)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "bc", rules[0].Span.String())
	assert.Equal(t, types.Red, rules[0].Style.Foreground)

	seqPath := filepath.Join(dir, "art.neo")
	require.NoError(t, os.WriteFile(seqPath, []byte("1:FB\n"), 0644))
	text, seqs, err = StyleFlags{Neotex: seqPath}.unpack("xy")
	require.NoError(t, err)
	assert.Equal(t, "xy", text)
	assert.Equal(t, "1:FB", seqs)

	_, _, err = StyleFlags{}.build(types.NewText("xy"), "1:Qq")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, _, err = StyleFlags{Neopack: 3}.unpack("abc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSegmentsWritesNeotexFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "none"))

	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	base := filepath.Join(dir, "out")
	cmd := SegmentsCmd{
		InputArg:   InputArg{File: path},
		StyleFlags: StyleFlags{Fg: "red"},
		Format:     "neotex",
		Output:     base,
	}
	require.NoError(t, cmd.Run(&Globals{Encoding: "utf8"}))

	text, err := os.ReadFile(base + ".neot")
	require.NoError(t, err)
	assert.Contains(t, string(text), "abc")

	seqs, err := os.ReadFile(base + ".neos")
	require.NoError(t, err)
	assert.Contains(t, string(seqs), "1:Fr")
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.ans")
	require.NoError(t, os.WriteFile(path, []byte{0xDB, '\r', '\n', 'x'}, 0644))

	got, err := InputArg{File: path}.read(&Globals{Encoding: "cp437", Normalize: true})
	require.NoError(t, err)
	assert.Equal(t, "█\nx", got)

	got, err = InputArg{File: path}.read(&Globals{Encoding: "cp437"})
	require.NoError(t, err)
	assert.Equal(t, "█\r\nx", got)

	_, err = InputArg{File: filepath.Join(t.TempDir(), "nope")}.read(&Globals{Encoding: "utf8"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}

func TestApplyColorMode(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	require.NoError(t, os.Unsetenv("CLICOLOR_FORCE"))

	s := control.NewSwitch(nil)

	applyColorMode(s, "always")
	assert.True(t, s.ShouldColorize())

	applyColorMode(s, "never")
	assert.False(t, s.ShouldColorize())

	applyColorMode(s, "auto")
	assert.False(t, s.ShouldColorize())

	assert.True(t, previewSwitch(&Globals{Color: "auto"}).ShouldColorize())
	assert.False(t, previewSwitch(&Globals{Color: "never"}).ShouldColorize())
}
