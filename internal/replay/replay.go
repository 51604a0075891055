// Package replay drives a keyer from a text script instead of a live key.
//
// A script has one instruction per line:
//
//	down 100ms   press the key, then let 100ms pass
//	up 250ms     release the key, then let 250ms pass
//	wait 1s      let time pass
//	reset        clear the transcript
//	delete       remove the last transcript character
//
// Blank lines and lines starting with # are ignored.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/tapmorse/internal/keyer"
)

// Step is one script instruction. Event is zero for wait.
type Step struct {
	Event keyer.Event
	After time.Duration
}

var verbs = map[string]keyer.Event{
	"down":   keyer.PressStart,
	"up":     keyer.PressEnd,
	"wait":   0,
	"reset":  keyer.ResetTranscript,
	"delete": keyer.DeleteLast,
}

// Parse reads a script.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		ev, ok := verbs[strings.ToLower(fields[0])]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown instruction %q", lineNo, fields[0])
		}
		step := Step{Event: ev}
		switch len(fields) {
		case 1:
			if ev == 0 {
				return nil, fmt.Errorf("line %d: wait needs a duration", lineNo)
			}
		case 2:
			d, err := time.ParseDuration(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if d < 0 {
				return nil, fmt.Errorf("line %d: negative duration %s", lineNo, fields[1])
			}
			step.After = d
		default:
			return nil, fmt.Errorf("line %d: too many fields", lineNo)
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// Result is the outcome of a replay.
type Result struct {
	Snapshot keyer.Snapshot
	Decoded  []keyer.Decoded
	Elapsed  time.Duration
}

// Run feeds steps to c, advancing time in frame-sized increments.
func Run(c *keyer.Controller, steps []Step, frame time.Duration) Result {
	if frame <= 0 {
		frame = time.Second / 60
	}
	var res Result
	collect := func(f keyer.Frame) {
		res.Snapshot = f.Snapshot
		if f.Decoded != nil {
			res.Decoded = append(res.Decoded, *f.Decoded)
		}
	}
	collect(c.Step(0))
	for _, step := range steps {
		if step.Event != 0 {
			collect(c.Step(0, step.Event))
		}
		for remaining := step.After; remaining > 0; {
			dt := frame
			if remaining < dt {
				dt = remaining
			}
			collect(c.Step(dt))
			remaining -= dt
			res.Elapsed += dt
		}
	}
	return res
}
