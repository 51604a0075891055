// Package model defines shared data structures.
package model

import "time"

// Session modes.
const (
	ModeFree  = "free"
	ModeDrill = "drill"
)

// Config defines keying and drill settings. Durations are in seconds, as
// written in the config file and on the command line.
type Config struct {
	Profile        string
	ClickThreshold float64
	CharDelay      float64
	Transcript     bool
	Audio          bool
	ToneFrequency  float64
	Volume         float64
	FrameRate      int

	DrillLength  int
	DrillCharset string
	WordList     string
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	WeakWindow   int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Profile     string
	Since       *time.Time
	Last        int
	CurveWindow int
	Chars       string
}

// SessionStats captures a finished keying session.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Profile    string
	Mode       string
	Target     string
	Transcript string
	Correct    int
	Incorrect  int
	Unmatched  int
	Dots       int
	Dashes     int
	DurationMs int64
}

// CharStats stores per-character stats for a session. Latency is the time
// spent keying the character.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Mode       string
	Correct    int
	Incorrect  int
	Unmatched  int
	DurationMs int64
}
