package stats

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/verte-zerg/tapmorse/internal/model"
)

const (
	curveLabelWidth     = 10
	minCurveWidth       = 10
	terminalWidthBackup = 80
)

// CurveWidthFor computes the sparkline width that fits a terminal line.
func CurveWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidthBackup
	}
	width := totalWidth - curveLabelWidth - len(" | ") - len(" 000.0..000.0")
	if width < minCurveWidth {
		width = minCurveWidth
	}
	return width
}

// TerminalWidth returns the width of f, or a fallback when it is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderCurves prints moving-average sparklines for WPM and accuracy.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, totalWidth int) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, _, acc := AggregateMetrics(s)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	width := CurveWidthFor(totalWidth)
	if _, err := fmt.Fprintf(w, "Learning Curves (window %d)\n", window); err != nil {
		return err
	}
	for _, series := range []struct {
		name   string
		values []float64
	}{
		{name: "WPM", values: MovingAverage(wpms, window)},
		{name: "Accuracy", values: MovingAverage(accs, window)},
	} {
		if err := renderCurveLine(w, series.name, series.values, width); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderCurveLine(w io.Writer, name string, values []float64, width int) error {
	resampled := resample(values, width)
	minVal, maxVal := minMax(resampled)
	label := name
	if pad := curveLabelWidth - utf8.RuneCountInString(label); pad > 0 {
		label += fmt.Sprintf("%*s", pad, "")
	}
	_, err := fmt.Fprintf(w, "%s | %s %.1f..%.1f\n", label, Sparkline(resampled), minVal, maxVal)
	return err
}

// resample averages values into at most width buckets.
func resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
