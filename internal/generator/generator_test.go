package generator

import (
	"strings"
	"testing"
)

func TestAlphabet(t *testing.T) {
	letters, err := Alphabet("letters")
	if err != nil {
		t.Fatalf("letters: %v", err)
	}
	if len(letters) != 26 || letters[0] != 'A' {
		t.Fatalf("unexpected letters: %q", string(letters))
	}
	mixed, err := Alphabet("digits, punct")
	if err != nil {
		t.Fatalf("digits,punct: %v", err)
	}
	if len(mixed) != 28 {
		t.Fatalf("expected 28 characters, got %d", len(mixed))
	}
	all, err := Alphabet("all,letters")
	if err != nil || len(all) != 54 {
		t.Fatalf("expected 54 unique characters, got %d (%v)", len(all), err)
	}
	if _, err := Alphabet("greek"); err == nil {
		t.Fatalf("expected unknown charset error")
	}
}

func TestGenerateUsesAlphabet(t *testing.T) {
	g := NewSeeded(1)
	out := g.Generate([]rune("ET"), 50)
	if len(out) != 50 {
		t.Fatalf("expected 50 characters, got %d", len(out))
	}
	if strings.Trim(out, "ET") != "" {
		t.Fatalf("unexpected characters in %q", out)
	}
	if g.Generate(nil, 5) != "" {
		t.Fatalf("expected empty output for empty alphabet")
	}
}

func TestGenerateWeightedFavorsWeak(t *testing.T) {
	g := NewSeeded(42)
	weak := map[rune]struct{}{'Q': {}}
	out := g.GenerateWeighted([]rune("EQ"), 2000, weak, 9)
	q := strings.Count(out, "Q")
	if q < 1500 {
		t.Fatalf("expected weak character to dominate, got %d of 2000", q)
	}
}

func TestGenerateWords(t *testing.T) {
	g := NewSeeded(7)
	words := []string{"CQ", "DE", "QRZ"}
	out := g.GenerateWords(words, 10, nil, 0)
	if len([]rune(out)) < 10 || len([]rune(out)) > 12 {
		t.Fatalf("expected 10-12 characters, got %q", out)
	}
	rest := out
	for rest != "" {
		matched := false
		for _, w := range words {
			if strings.HasPrefix(rest, w) {
				rest = rest[len(w):]
				matched = true
				break
			}
		}
		if !matched {
			t.Fatalf("%q is not built from the word list", out)
		}
	}
	if g.GenerateWords(nil, 5, nil, 0) != "" {
		t.Fatalf("expected empty output for empty list")
	}

	weighted := g.GenerateWords([]string{"EE", "QQ"}, 2000, map[rune]struct{}{'Q': {}}, 9)
	if q := strings.Count(weighted, "Q"); q < 1500 {
		t.Fatalf("expected weak words to dominate, got %d Q of %d", q, len(weighted))
	}
}
