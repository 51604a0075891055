package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ET")
	input := []rune("E")
	cursorIndex := len(input)

	runes := buildStyledRunes(target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("E") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != cursorStyle.Render("T") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("A"), []rune("A"), -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("A") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMiskey(t *testing.T) {
	runes := buildStyledRunes([]rune("AB"), []rune("AN"), 2)
	if runes[1].s != incorrectStyle.Render("B") {
		t.Fatalf("expected the target rune in incorrect style")
	}
}

func TestBuildStyledRunesPending(t *testing.T) {
	runes := buildStyledRunes([]rune("SOS"), nil, 0)
	if runes[0].s != cursorStyle.Render("S") {
		t.Fatalf("expected cursor on first rune")
	}
	if runes[2].s != pendingStyle.Render("S") {
		t.Fatalf("expected pending style for later runes")
	}
}

func TestWrapStyledRunesBreaksAtWidth(t *testing.T) {
	runes := plainStyledRunes([]rune("ABCDEFG"), pendingStyle)
	out := wrapStyledRunes(runes, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if lines[2] != pendingStyle.Render("G") {
		t.Fatalf("expected last line to hold G, got %q", lines[2])
	}
}

func TestWrapStyledRunesNoWidth(t *testing.T) {
	runes := plainStyledRunes([]rune("CQ"), pendingStyle)
	if got := wrapStyledRunes(runes, 0); got != renderStyledRunes(runes) {
		t.Fatalf("expected unwrapped output, got %q", got)
	}
}
