package audio

import (
	"math"
	"testing"
)

func peak(samples [][2]float64) float64 {
	maxVal := 0.0
	for _, s := range samples {
		maxVal = math.Max(maxVal, math.Abs(s[0]))
	}
	return maxVal
}

func TestToneGate(t *testing.T) {
	tone := NewTone(DefaultSampleRate, 600, 1)
	buf := make([][2]float64, 2048)

	if n, ok := tone.Streamer().Stream(buf); n != len(buf) || !ok {
		t.Fatalf("expected endless stream, got n=%d ok=%v", n, ok)
	}
	if p := peak(buf); p != 0 {
		t.Fatalf("expected silence while gate closed, got peak %f", p)
	}

	tone.ToneStart()
	if !tone.playing() {
		t.Fatalf("expected tone to be playing")
	}
	tone.Streamer().Stream(buf)
	if p := peak(buf); p < 0.9 {
		t.Fatalf("expected audible tone, got peak %f", p)
	}

	tone.ToneStop()
	tone.Streamer().Stream(buf)
	tone.Streamer().Stream(buf)
	if p := peak(buf); p != 0 {
		t.Fatalf("expected silence after release ramp, got peak %f", p)
	}
}

func TestToneVolume(t *testing.T) {
	tone := NewTone(DefaultSampleRate, 600, 0.5)
	tone.ToneStart()
	buf := make([][2]float64, 4096)
	tone.Streamer().Stream(buf)
	if p := peak(buf); p > 0.51 || p < 0.4 {
		t.Fatalf("expected half-scale peak, got %f", p)
	}

	muted := NewTone(DefaultSampleRate, 600, 0)
	muted.ToneStart()
	muted.Streamer().Stream(buf)
	if p := peak(buf); p != 0 {
		t.Fatalf("expected muted tone, got peak %f", p)
	}
}
