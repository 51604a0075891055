// Package audio produces the sidetone played while the key is held.
package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// DefaultSampleRate is used when the caller has no preference.
const DefaultSampleRate = beep.SampleRate(44100)

const rampDuration = 5 * time.Millisecond

// Tone is an endless sine streamer gated by ToneStart and ToneStop. The
// gate is flipped from the UI goroutine and read from the speaker goroutine.
type Tone struct {
	on       atomic.Bool
	phase    float64
	step     float64
	gain     float64
	gainStep float64
	streamer beep.Streamer
}

// NewTone builds a tone at freq Hz. volume is linear, 1 being full scale.
func NewTone(sr beep.SampleRate, freq, volume float64) *Tone {
	t := &Tone{
		step:     2 * math.Pi * freq / float64(sr),
		gainStep: 1 / float64(maxInt(sr.N(rampDuration), 1)),
	}
	t.streamer = &effects.Volume{
		Streamer: beep.StreamerFunc(t.stream),
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-6)),
		Silent:   volume <= 0,
	}
	return t
}

// Streamer returns the stream to hand to the speaker.
func (t *Tone) Streamer() beep.Streamer {
	return t.streamer
}

// ToneStart opens the gate.
func (t *Tone) ToneStart() {
	t.on.Store(true)
}

// ToneStop closes the gate.
func (t *Tone) ToneStop() {
	t.on.Store(false)
}

func (t *Tone) playing() bool {
	return t.on.Load()
}

func (t *Tone) stream(samples [][2]float64) (int, bool) {
	target := 0.0
	if t.playing() {
		target = 1
	}
	for i := range samples {
		switch {
		case t.gain < target:
			t.gain = math.Min(target, t.gain+t.gainStep)
		case t.gain > target:
			t.gain = math.Max(target, t.gain-t.gainStep)
		}
		v := 0.0
		if t.gain > 0 {
			v = math.Sin(t.phase) * t.gain
		}
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return len(samples), true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
