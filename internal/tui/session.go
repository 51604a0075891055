package tui

import (
	"time"

	"github.com/verte-zerg/tapmorse/internal/keyer"
	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/morse"
)

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// session accumulates scoring for one free run or one drill target.
type session struct {
	profile string
	target  []rune

	started   bool
	startedAt time.Time

	correct   int
	incorrect int
	unmatched int
	dots      int
	dashes    int
	charStats map[rune]*charStat
}

func newSession(profile string, target []rune) *session {
	return &session{
		profile:   profile,
		target:    target,
		charStats: map[rune]*charStat{},
	}
}

func (s *session) mode() string {
	if len(s.target) > 0 {
		return model.ModeDrill
	}
	return model.ModeFree
}

func (s *session) start(now time.Time) {
	if s.started {
		return
	}
	s.started = true
	s.startedAt = now
}

// record scores a finalized character attempted at transcript position pos.
func (s *session) record(d keyer.Decoded, pos int) {
	for _, sym := range d.Sequence {
		if sym == morse.Dash {
			s.dashes++
		} else {
			s.dots++
		}
	}

	drill := len(s.target) > 0
	var expected rune
	if drill && pos >= 0 && pos < len(s.target) {
		expected = s.target[pos]
	}

	if !d.OK {
		s.unmatched++
		if expected != 0 {
			s.charEntry(expected).incorrect++
		}
		return
	}

	if !drill {
		s.correct++
		entry := s.charEntry(d.Char)
		entry.correct++
		s.addLatency(entry, d.KeyingTime)
		return
	}
	if expected == 0 {
		return
	}
	entry := s.charEntry(expected)
	if d.Char == expected {
		s.correct++
		entry.correct++
		s.addLatency(entry, d.KeyingTime)
		return
	}
	s.incorrect++
	entry.incorrect++
}

func (s *session) addLatency(entry *charStat, keying time.Duration) {
	entry.latencySumMs += keying.Milliseconds()
	entry.latencyCount++
}

func (s *session) charEntry(r rune) *charStat {
	entry, ok := s.charStats[r]
	if !ok {
		entry = &charStat{}
		s.charStats[r] = entry
	}
	return entry
}

// attempts reports whether anything worth saving happened.
func (s *session) attempts() int {
	return s.correct + s.incorrect + s.unmatched
}

func (s *session) finish(transcript string, endedAt time.Time) (model.SessionStats, []model.CharStats) {
	stats := model.SessionStats{
		StartedAt:  s.startedAt,
		EndedAt:    endedAt,
		Profile:    s.profile,
		Mode:       s.mode(),
		Target:     string(s.target),
		Transcript: transcript,
		Correct:    s.correct,
		Incorrect:  s.incorrect,
		Unmatched:  s.unmatched,
		Dots:       s.dots,
		Dashes:     s.dashes,
		DurationMs: endedAt.Sub(s.startedAt).Milliseconds(),
	}
	charStats := make([]model.CharStats, 0, len(s.charStats))
	for ch, entry := range s.charStats {
		charStats = append(charStats, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	return stats, charStats
}
