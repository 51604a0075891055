package stats

import (
	"sort"
	"unicode/utf8"

	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/morse"
)

// CharRank is a per-character aggregate with derived figures.
type CharRank struct {
	Char        string
	Code        string
	Attempts    int
	Correct     int
	Missed      int
	Accuracy    float64
	AvgKeyingMs float64
}

// RankChars orders characters weakest first: lowest accuracy, then the
// slowest to key.
func RankChars(aggs []model.CharAggregate) []CharRank {
	ranks := make([]CharRank, 0, len(aggs))
	for _, agg := range aggs {
		r := CharRank{
			Char:     agg.Char,
			Code:     codeFor(agg.Char),
			Attempts: agg.Correct + agg.Incorrect,
			Correct:  agg.Correct,
			Missed:   agg.Incorrect,
			Accuracy: 1,
		}
		if r.Attempts > 0 {
			r.Accuracy = float64(agg.Correct) / float64(r.Attempts)
		}
		if agg.LatencyCount > 0 {
			r.AvgKeyingMs = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		ranks = append(ranks, r)
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		a, b := ranks[i], ranks[j]
		if a.Accuracy != b.Accuracy {
			return a.Accuracy < b.Accuracy
		}
		if a.AvgKeyingMs != b.AvgKeyingMs {
			return a.AvgKeyingMs > b.AvgKeyingMs
		}
		return a.Char < b.Char
	})
	return ranks
}

// SelectWeakChars picks up to top of the weakest characters that have been
// attempted. top <= 0 selects all of them.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	for _, r := range RankChars(aggs) {
		if top > 0 && len(weakSet) >= top {
			break
		}
		if r.Attempts == 0 {
			continue
		}
		if ch, _ := utf8.DecodeRuneInString(r.Char); ch != utf8.RuneError {
			weakSet[ch] = struct{}{}
		}
	}
	return weakSet
}

// TopCharsByFrequency returns the n most attempted characters.
func TopCharsByFrequency(aggs []model.CharAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	ranks := RankChars(aggs)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Attempts != ranks[j].Attempts {
			return ranks[i].Attempts > ranks[j].Attempts
		}
		return ranks[i].Char < ranks[j].Char
	})
	if n > len(ranks) {
		n = len(ranks)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = ranks[i].Char
	}
	return out
}

func codeFor(char string) string {
	r, _ := utf8.DecodeRuneInString(char)
	seq, ok := morse.Encode(r)
	if !ok {
		return "?"
	}
	return seq.String()
}
