// Package control holds the styling-enabled switch consulted by colorize.
//
// A Switch answers ShouldColorize from an explicit override when one is set,
// and from the environment otherwise: CLICOLOR_FORCE forces styling on,
// NO_COLOR or CLICOLOR=0 force it off, and without either the answer is
// whether the output is a color-capable terminal.
package control

import (
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

const (
	overrideUnset int32 = iota
	overrideOn
	overrideOff
)

// Switch is safe for concurrent use.
type Switch struct {
	override atomic.Int32
	output   *os.File
}

// Default is the process-wide switch used by colorize.Colorize.
var Default = NewSwitch(os.Stdout)

// NewSwitch returns a switch that inspects output when no override is set.
func NewSwitch(output *os.File) *Switch {
	return &Switch{output: output}
}

// SetOverride forces styling on or off regardless of the environment.
func (s *Switch) SetOverride(enabled bool) {
	if enabled {
		s.override.Store(overrideOn)
	} else {
		s.override.Store(overrideOff)
	}
	log.Debug().Bool("enabled", enabled).Msg("Styling override set")
}

// UnsetOverride returns to environment detection.
func (s *Switch) UnsetOverride() {
	s.override.Store(overrideUnset)
}

// ShouldColorize reports whether styling is enabled.
func (s *Switch) ShouldColorize() bool {
	switch s.override.Load() {
	case overrideOn:
		return true
	case overrideOff:
		return false
	}
	return s.detect()
}

func (s *Switch) detect() bool {
	if force, ok := os.LookupEnv("CLICOLOR_FORCE"); ok && force != "0" {
		return true
	}
	if termenv.EnvNoColor() {
		return false
	}
	if s.output == nil {
		return false
	}
	fd := s.output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// SetOverride sets the override of the Default switch.
func SetOverride(enabled bool) {
	Default.SetOverride(enabled)
}

// UnsetOverride clears the override of the Default switch.
func UnsetOverride() {
	Default.UnsetOverride()
}

// ShouldColorize reports the state of the Default switch.
func ShouldColorize() bool {
	return Default.ShouldColorize()
}
