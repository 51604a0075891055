package keyer

import "time"

// idleTimer closes a character after a quiet period.
type idleTimer struct {
	delay   time.Duration
	armed   bool
	elapsed time.Duration
}

func (t *idleTimer) arm() {
	t.elapsed = 0
	t.armed = true
}

func (t *idleTimer) disarm() {
	t.armed = false
}

// tick advances the timer and reports whether the delay was reached.
// It fires at most once per arm.
func (t *idleTimer) tick(dt time.Duration) bool {
	if !t.armed {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.delay {
		return false
	}
	t.armed = false
	return true
}
