package replay

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tapmorse/internal/keyer"
	"github.com/verte-zerg/tapmorse/internal/morse"
)

// Timing holds the durations used when writing a script.
type Timing struct {
	Dot     time.Duration
	Dash    time.Duration
	Gap     time.Duration
	CharGap time.Duration
}

// TimingFor returns durations that sit well inside cfg's thresholds.
func TimingFor(cfg keyer.Config) Timing {
	return Timing{
		Dot:     cfg.ClickThreshold / 2,
		Dash:    cfg.ClickThreshold * 2,
		Gap:     cfg.CharDelay / 2,
		CharGap: cfg.CharDelay * 2,
	}
}

// WriteScript writes a script that keys text. Characters outside the
// table, including spaces, are skipped and returned.
func WriteScript(w io.Writer, text string, timing Timing) ([]rune, error) {
	var skipped []rune
	for _, r := range text {
		seq, ok := morse.Encode(r)
		if !ok {
			skipped = append(skipped, r)
			continue
		}
		if _, err := fmt.Fprintf(w, "# %c %s\n", r, seq); err != nil {
			return nil, err
		}
		for i, sym := range seq {
			hold := timing.Dot
			if sym == morse.Dash {
				hold = timing.Dash
			}
			gap := timing.Gap
			if i == len(seq)-1 {
				gap = timing.CharGap
			}
			if _, err := fmt.Fprintf(w, "down %s\nup %s\n", hold, gap); err != nil {
				return nil, err
			}
		}
	}
	return skipped, nil
}
