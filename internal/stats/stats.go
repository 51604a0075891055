// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tapmorse/internal/model"
)

const sparkChars = " .:-=+*#%@"

// charsPerWord follows the PARIS convention.
const charsPerWord = 5.0

// SessionMetrics computes WPM, CPM, and accuracy for a session.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / charsPerWord) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// AggregateMetrics computes SessionMetrics for a stored session, counting
// unmatched sequences as misses.
func AggregateMetrics(s model.SessionAggregate) (wpm, cpm, accuracy float64) {
	return SessionMetrics(s.Correct, s.Incorrect+s.Unmatched, s.DurationMs)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalCPM, totalAcc float64
	bestWPM := 0.0
	drills := 0
	unmatched := 0
	for _, s := range sessions {
		wpm, cpm, acc := AggregateMetrics(s)
		totalWPM += wpm
		totalCPM += cpm
		totalAcc += acc
		if wpm > bestWPM {
			bestWPM = wpm
		}
		if s.Mode == model.ModeDrill {
			drills++
		}
		unmatched += s.Unmatched
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%d drills)", len(sessions), drills),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg CPM: %.2f", totalCPM/count),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		fmt.Sprintf("Unmatched sequences: %d", unmatched),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCharTable prints per-character aggregates, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	cols := []column{
		{title: "Char"},
		{title: "Code"},
		{title: "Accuracy", right: true},
		{title: "Avg Keying (ms)", right: true},
		{title: "Correct", right: true},
		{title: "Missed", right: true},
	}
	ranks := RankChars(aggs)
	rows := make([][]string, 0, len(ranks))
	for _, r := range ranks {
		rows = append(rows, []string{
			r.Char,
			r.Code,
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%.1f", r.AvgKeyingMs),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Missed),
		})
	}
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
