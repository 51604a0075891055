package tui

import (
	"testing"
	"time"

	"github.com/verte-zerg/tapmorse/internal/keyer"
	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/morse"
)

func decoded(code string, keying time.Duration) keyer.Decoded {
	seq, ok := morse.ParseSequence(code)
	if !ok {
		panic("bad sequence " + code)
	}
	d := keyer.Decoded{Sequence: seq, KeyingTime: keying}
	if r, ok := morse.Decode(seq); ok {
		d.Char = r
		d.OK = true
		d.Appended = true
	}
	return d
}

func TestSessionDrillScoring(t *testing.T) {
	s := newSession("standard", []rune("AN"))
	s.start(time.Unix(0, 0))

	s.record(decoded(".-", 300*time.Millisecond), 0)
	s.record(decoded("-.-.-.-", 0), 1)
	s.record(decoded(".", 50*time.Millisecond), 1)

	if s.correct != 1 || s.incorrect != 1 || s.unmatched != 1 {
		t.Fatalf("unexpected totals: correct=%d incorrect=%d unmatched=%d", s.correct, s.incorrect, s.unmatched)
	}
	if s.dots != 5 || s.dashes != 5 {
		t.Fatalf("unexpected symbol counts: dots=%d dashes=%d", s.dots, s.dashes)
	}
	a := s.charStats['A']
	if a == nil || a.correct != 1 || a.latencySumMs != 300 || a.latencyCount != 1 {
		t.Fatalf("unexpected stats for A: %+v", a)
	}
	n := s.charStats['N']
	if n == nil || n.incorrect != 2 {
		t.Fatalf("expected two misses on N, got %+v", n)
	}
	if _, ok := s.charStats['E']; ok {
		t.Fatalf("miskeyed char should not be tracked")
	}
}

func TestSessionFreeScoring(t *testing.T) {
	s := newSession("minimal", nil)
	s.record(decoded("...", 200*time.Millisecond), 0)
	s.record(decoded("........", 0), 0)
	if s.mode() != model.ModeFree {
		t.Fatalf("expected free mode, got %s", s.mode())
	}
	if s.correct != 1 || s.unmatched != 1 || s.incorrect != 0 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if entry := s.charStats['S']; entry == nil || entry.correct != 1 {
		t.Fatalf("expected S tracked as correct, got %+v", entry)
	}
}

func TestSessionFinish(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := newSession("standard", []rune("E"))
	s.start(start)
	s.start(start.Add(time.Hour))
	s.record(decoded(".", 0), 0)

	stats, chars := s.finish("E", start.Add(3*time.Second))
	if stats.Mode != model.ModeDrill || stats.Target != "E" || stats.Transcript != "E" {
		t.Fatalf("unexpected session stats: %+v", stats)
	}
	if stats.DurationMs != 3000 {
		t.Fatalf("expected 3000ms, got %d", stats.DurationMs)
	}
	if len(chars) != 1 || chars[0].Char != "E" || chars[0].Correct != 1 {
		t.Fatalf("unexpected char stats: %+v", chars)
	}
}
