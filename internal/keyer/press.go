package keyer

import (
	"time"

	"github.com/verte-zerg/tapmorse/internal/morse"
)

// pressTimer measures how long the key is held.
type pressTimer struct {
	threshold time.Duration
	held      bool
	elapsed   time.Duration
}

func (p *pressTimer) start() {
	p.elapsed = 0
	p.held = true
}

func (p *pressTimer) tick(dt time.Duration) {
	if p.held {
		p.elapsed += dt
	}
}

// end releases the key and classifies the hold.
func (p *pressTimer) end() morse.Symbol {
	p.held = false
	return Classify(p.elapsed, p.threshold)
}

// Classify maps a hold duration to a symbol. The boundary belongs to Dash.
func Classify(held, threshold time.Duration) morse.Symbol {
	if held < threshold {
		return morse.Dot
	}
	return morse.Dash
}
