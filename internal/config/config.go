// Package config loads rule files: a default style plus a list of rules,
// each selecting part of the input by byte range or regular expression.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/logging"
	"github.com/badele/colorans/internal/types"
)

// DefaultRulesFile is searched for in the XDG config directories.
const DefaultRulesFile = "colorans/rules.toml"

// StyleConfig is a style as written in a rules file. Empty fields are
// absent.
type StyleConfig struct {
	Foreground string   `toml:"foreground,omitempty" yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string   `toml:"background,omitempty" yaml:"background,omitempty" json:"background,omitempty"`
	Attributes []string `toml:"attributes,omitempty" yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// RuleConfig selects either [Start, End) or every match of Match.
type RuleConfig struct {
	Name        string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Start       *int   `toml:"start,omitempty" yaml:"start,omitempty" json:"start,omitempty"`
	End         *int   `toml:"end,omitempty" yaml:"end,omitempty" json:"end,omitempty"`
	Match       string `toml:"match,omitempty" yaml:"match,omitempty" json:"match,omitempty"`
	StyleConfig `yaml:",inline"`
}

type Config struct {
	Default *StyleConfig `toml:"default,omitempty" yaml:"default,omitempty" json:"default,omitempty"`
	Rules   []RuleConfig `toml:"rules" yaml:"rules" json:"rules"`
}

// DefaultRulesPath returns the first rules file found in the XDG config
// directories.
func DefaultRulesPath() (string, bool) {
	xdg.Reload()
	path, err := xdg.SearchConfigFile(DefaultRulesFile)
	if err != nil {
		return "", false
	}
	return path, true
}

// Load reads a rules file. The format follows the extension: .toml, .yaml,
// .yml or .json.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config").With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read rules file %s", path)
	}

	cfg, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("rules", len(cfg.Rules)).Bool("default", cfg.Default != nil).Msg("Rules file loaded")
	return cfg, nil
}

// Parse decodes data in the given format and validates it.
func Parse(data []byte, format string) (*Config, error) {
	var cfg Config
	var err error

	switch strings.ToLower(format) {
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &cfg)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported rules format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s rules", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every style and rule without an input.
func (c *Config) Validate() error {
	if c.Default != nil {
		if _, err := c.Default.Style("default"); err != nil {
			return err
		}
	}

	for i, rule := range c.Rules {
		if err := rule.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (r RuleConfig) label(index int) string {
	if r.Name != "" {
		return fmt.Sprintf("rules[%d] (%s)", index, r.Name)
	}
	return fmt.Sprintf("rules[%d]", index)
}

func (r RuleConfig) validate(index int) error {
	label := r.label(index)
	hasRange := r.Start != nil || r.End != nil

	switch {
	case hasRange && r.Match != "":
		return errors.Newf(errors.ErrInvalidRule, "%s sets both a range and a match", label)
	case !hasRange && r.Match == "":
		return errors.Newf(errors.ErrInvalidRule, "%s selects nothing: set start/end or match", label)
	case hasRange:
		start, end := r.bounds()
		if start < 0 || (end >= 0 && end < start) {
			line := fmt.Sprintf("%s: start = %d, end = %d", label, start, end)
			return errors.Newf(errors.ErrInvalidRule, "%s has an invalid range", label).
				WithLocation(line, len(label)+2, len(line))
		}
	default:
		if _, err := regexp.Compile(r.Match); err != nil {
			line := fmt.Sprintf("%s: match = %q", label, r.Match)
			return errors.Wrapf(err, errors.ErrInvalidRule, "%s has an invalid pattern", label).
				WithLocation(line, len(label)+len(": match = "), len(line))
		}
	}

	_, err := r.Style(label)
	return err
}

// bounds returns the range, with -1 for an end that runs to the end of the
// input.
func (r RuleConfig) bounds() (int, int) {
	start, end := 0, -1
	if r.Start != nil {
		start = *r.Start
	}
	if r.End != nil {
		end = *r.End
	}
	return start, end
}

// Style converts the configured names. label prefixes error locations.
func (s StyleConfig) Style(label string) (types.Style, error) {
	style := types.NewStyle()

	for _, field := range []struct {
		name       string
		value      string
		background bool
	}{
		{"foreground", s.Foreground, false},
		{"background", s.Background, true},
	} {
		if field.value == "" {
			continue
		}
		c, err := types.ParseColor(field.value)
		if err != nil {
			line := fmt.Sprintf("%s: %s = %q", label, field.name, field.value)
			return types.Style{}, errors.Wrapf(err, errors.ErrInvalidColor, "%s has an invalid %s", label, field.name).
				WithLocation(line, len(line)-len(field.value)-2, len(line))
		}
		if field.background {
			style = style.WithBackground(c)
		} else {
			style = style.WithForeground(c)
		}
	}

	for _, name := range s.Attributes {
		attr, err := types.ParseAttribute(name)
		if err != nil {
			line := fmt.Sprintf("%s: attributes = [%q]", label, name)
			return types.Style{}, errors.Wrapf(err, errors.ErrInvalidRule, "%s has an invalid attribute", label).
				WithLocation(line, len(line)-len(name)-3, len(line)-1)
		}
		style = style.WithAttribute(attr)
	}

	return style, nil
}

// Build turns the configuration into rules carved from input. Ranges are
// clamped to the input; a pattern yields one rule per non-empty match, in
// match order.
func (c *Config) Build(input types.Text) (*types.Style, []compose.Rule, error) {
	var general *types.Style
	if c.Default != nil {
		style, err := c.Default.Style("default")
		if err != nil {
			return nil, nil, err
		}
		general = &style
	}

	text := input.String()
	rules := make([]compose.Rule, 0, len(c.Rules))

	for i, rc := range c.Rules {
		if err := rc.validate(i); err != nil {
			return nil, nil, err
		}
		style, _ := rc.Style(rc.label(i))

		if rc.Match == "" {
			start, end := rc.bounds()
			if end < 0 {
				end = input.Len()
			}
			rules = append(rules, compose.NewRule(input.Slice(start, end), style))
			continue
		}

		re := regexp.MustCompile(rc.Match)
		for _, m := range re.FindAllStringIndex(text, -1) {
			if m[1] > m[0] {
				rules = append(rules, compose.NewRule(input.Slice(m[0], m[1]), style))
			}
		}
	}

	return general, rules, nil
}
