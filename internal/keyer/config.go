// Package keyer turns timed key presses into decoded Morse characters.
//
// A Controller is advanced one host frame at a time with Step. Within a
// step, input events are applied first, then the press timer and the idle
// timer advance by the frame delta, and a character is finalized when the
// idle timer crosses the character delay. A press that arrives in the same
// step as a would-be timeout therefore always wins.
package keyer

import (
	"errors"
	"time"
)

// Reference timings.
const (
	DefaultClickThreshold = 150 * time.Millisecond
	DefaultCharDelay      = 200 * time.Millisecond
)

var (
	// ErrInvalidClickThreshold indicates the dot/dash threshold must be positive.
	ErrInvalidClickThreshold = errors.New("click threshold must be positive")
	// ErrInvalidCharDelay indicates the character delay must be positive.
	ErrInvalidCharDelay = errors.New("character delay must be positive")
)

// Config controls classification timing and optional features.
type Config struct {
	// ClickThreshold separates dots from dashes; a press at least this long is a dash.
	ClickThreshold time.Duration
	// CharDelay is the idle time after a release that closes the character.
	CharDelay time.Duration
	// Transcript enables accumulating decoded characters and the
	// reset/delete events.
	Transcript bool
	// Audio enables tone start/stop signals.
	Audio bool
}

// DefaultConfig returns the standard profile timings with transcript and audio on.
func DefaultConfig() Config {
	return Config{
		ClickThreshold: DefaultClickThreshold,
		CharDelay:      DefaultCharDelay,
		Transcript:     true,
		Audio:          true,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.ClickThreshold <= 0 {
		return ErrInvalidClickThreshold
	}
	if c.CharDelay <= 0 {
		return ErrInvalidCharDelay
	}
	return nil
}
