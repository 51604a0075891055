package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s     string
	width int
}

// buildStyledRunes styles a drill target against what has been decoded so
// far. cursorIndex marks the next character to key, or -1.
func buildStyledRunes(targetRunes, inputRunes []rune, cursorIndex int) []styledRune {
	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		style := pendingStyle
		if i < len(inputRunes) {
			if inputRunes[i] == target {
				style = correctStyle
			} else {
				style = incorrectStyle
			}
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = cursorStyle
		}
		out = append(out, styledRune{
			s:     style.Render(string(target)),
			width: runewidth.RuneWidth(target),
		})
	}
	return out
}

// plainStyledRunes styles every rune the same way.
func plainStyledRunes(runes []rune, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(runes))
	for _, r := range runes {
		out = append(out, styledRune{s: style.Render(string(r)), width: runewidth.RuneWidth(r)})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width. Decoded
// text has no word spaces, so lines break at the width.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	lineWidth := 0
	for _, item := range runes {
		if lineWidth+item.width > width && lineWidth > 0 {
			out.WriteRune('\n')
			lineWidth = 0
		}
		out.WriteString(item.s)
		lineWidth += item.width
	}
	return out.String()
}
