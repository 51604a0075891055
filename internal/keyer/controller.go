package keyer

import (
	"time"

	"github.com/verte-zerg/tapmorse/internal/morse"
)

// Blank is the display character before anything has been decoded.
const Blank = ' '

// Snapshot is a read-only view of the controller for rendering.
type Snapshot struct {
	// Buffer is the in-progress character as glyphs, empty between characters.
	Buffer string
	// Display is the most recently decoded character, or Blank.
	Display rune
	// Preview is what Buffer would decode to right now, or 0.
	Preview    rune
	Transcript string
	State      State
	// Started reports whether the key has been pressed at least once.
	Started bool
	// Gap is how long the key was up before the most recent press.
	Gap time.Duration
}

// Decoded describes one finalized character.
type Decoded struct {
	Sequence morse.Sequence
	Char     rune
	OK       bool
	// Appended reports whether Char was added to the transcript.
	Appended bool
	// KeyingTime spans the first press of the character to its last release.
	KeyingTime time.Duration
}

// Frame is the result of one Step.
type Frame struct {
	Snapshot Snapshot
	// Decoded is set on the step that finalized a character.
	Decoded *Decoded
}

// Controller owns all keying state. It is not safe for concurrent use;
// the host loop drives it from a single goroutine.
type Controller struct {
	cfg  Config
	tone ToneSink

	press  pressTimer
	idle   idleTimer
	buffer morse.Sequence

	display    rune
	transcript Transcript
	started    bool

	composeElapsed time.Duration
	keyingTime     time.Duration
	upElapsed      time.Duration
	gap            time.Duration
}

// NewController returns a controller in the Idle state. tone may be nil.
func NewController(cfg Config, tone ToneSink) *Controller {
	return &Controller{
		cfg:     cfg,
		tone:    tone,
		press:   pressTimer{threshold: cfg.ClickThreshold},
		idle:    idleTimer{delay: cfg.CharDelay},
		buffer:  make(morse.Sequence, 0, morse.MaxSequenceLen),
		display: Blank,
	}
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the current composition state.
func (c *Controller) State() State {
	switch {
	case c.press.held:
		return Composing
	case c.idle.armed:
		return Armed
	default:
		return Idle
	}
}

// Step applies events, then advances the timers by dt.
func (c *Controller) Step(dt time.Duration, events ...Event) Frame {
	if dt < 0 {
		dt = 0
	}
	for _, ev := range events {
		c.apply(ev)
	}

	if c.press.held || c.idle.armed {
		c.composeElapsed += dt
	}
	if c.started && !c.press.held {
		c.upElapsed += dt
	}
	c.press.tick(dt)

	var decoded *Decoded
	if c.idle.tick(dt) {
		decoded = c.finalize()
	}
	return Frame{Snapshot: c.Snapshot(), Decoded: decoded}
}

func (c *Controller) apply(ev Event) {
	switch ev {
	case PressStart:
		if c.press.held {
			return
		}
		if len(c.buffer) == 0 {
			c.composeElapsed = 0
		}
		c.idle.disarm()
		c.press.start()
		if c.started {
			c.gap = c.upElapsed
		}
		c.upElapsed = 0
		c.started = true
		if c.cfg.Audio && c.tone != nil {
			c.tone.ToneStart()
		}
	case PressEnd:
		if !c.press.held {
			return
		}
		c.buffer = append(c.buffer, c.press.end())
		c.keyingTime = c.composeElapsed
		if c.cfg.Audio && c.tone != nil {
			c.tone.ToneStop()
		}
		c.idle.arm()
	case ResetTranscript:
		if c.cfg.Transcript {
			c.transcript.Clear()
		}
	case DeleteLast:
		if c.cfg.Transcript {
			c.transcript.RemoveLast()
		}
	}
}

// finalize decodes the buffer and clears it whether or not it matched.
func (c *Controller) finalize() *Decoded {
	seq := make(morse.Sequence, len(c.buffer))
	copy(seq, c.buffer)
	d := &Decoded{Sequence: seq, KeyingTime: c.keyingTime}
	if r, ok := morse.Decode(seq); ok {
		d.Char = r
		d.OK = true
		c.display = r
		if c.cfg.Transcript {
			c.transcript.Append(r)
			d.Appended = true
		}
	}
	c.buffer = c.buffer[:0]
	c.idle.disarm()
	c.composeElapsed = 0
	c.keyingTime = 0
	return d
}

// Snapshot returns the current rendering state.
func (c *Controller) Snapshot() Snapshot {
	var preview rune
	if r, ok := morse.Decode(c.buffer); ok {
		preview = r
	}
	return Snapshot{
		Buffer:     c.buffer.String(),
		Display:    c.display,
		Preview:    preview,
		Transcript: c.transcript.String(),
		State:      c.State(),
		Started:    c.started,
		Gap:        c.gap,
	}
}
