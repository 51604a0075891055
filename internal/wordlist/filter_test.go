package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKeyable(t *testing.T) {
	for _, word := range []string{"cq", "K1ABC", "73", "R?"} {
		if !Keyable(word) {
			t.Fatalf("expected %q to be keyable", word)
		}
	}
	for _, word := range []string{"", "qrz de", "naïve", "don’t", "#1"} {
		if Keyable(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# q codes\nqth\n\n  qrz \nnaïve\nde k1abc\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 || words[0] != "QTH" || words[1] != "QRZ" {
		t.Fatalf("unexpected words: %v", words)
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("# nothing\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWords(empty); err == nil {
		t.Fatalf("expected error for a list without keyable words")
	}
}
