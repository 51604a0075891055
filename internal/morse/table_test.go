package morse

import (
	"strings"
	"testing"
)

func TestTableSize(t *testing.T) {
	if Len() != 54 {
		t.Fatalf("expected 54 entries, got %d", Len())
	}
	if len(byCode) != Len() || len(byChar) != Len() {
		t.Fatalf("duplicate code or char in table: codes=%d chars=%d", len(byCode), len(byChar))
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, r := range Chars() {
		seq, ok := Encode(r)
		if !ok {
			t.Fatalf("expected %q to encode", r)
		}
		got, ok := Decode(seq)
		if !ok || got != r {
			t.Fatalf("decode %s: expected %q, got %q (ok=%v)", seq, r, got, ok)
		}
	}
}

func TestLongestCode(t *testing.T) {
	longest := 0
	for _, e := range entries {
		if n := len([]rune(e.code)); n > longest {
			longest = n
		}
	}
	if longest != MaxSequenceLen {
		t.Fatalf("expected longest code %d, got %d", MaxSequenceLen, longest)
	}
}

// Codes are only unambiguous once the character gap terminates them, so
// prefix-freedom is checked on terminated codes.
func TestTerminatedCodesArePrefixFree(t *testing.T) {
	const gap = "|"
	for i, a := range entries {
		for j, b := range entries {
			if i == j {
				continue
			}
			if strings.HasPrefix(b.code+gap, a.code+gap) {
				t.Fatalf("%q (%s) is a prefix of %q (%s)", a.char, a.code, b.char, b.code)
			}
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name   string
		glyphs string
	}{
		{name: "empty", glyphs: ""},
		{name: "seven dashes", glyphs: "-------"},
		{name: "unassigned", glyphs: "••--"},
		{name: "overlong", glyphs: "••••••••"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq, ok := ParseSequence(tc.glyphs)
			if !ok {
				t.Fatalf("expected %q to parse", tc.glyphs)
			}
			if r, ok := Decode(seq); ok {
				t.Fatalf("expected no match, got %q", r)
			}
		})
	}
}

func TestParseSequenceAcceptsAsciiGlyphs(t *testing.T) {
	seq, ok := ParseSequence(".-_·")
	if !ok {
		t.Fatalf("expected ascii glyphs to parse")
	}
	if seq.String() != "•--•" {
		t.Fatalf("unexpected rendering: %q", seq.String())
	}
	if _, ok := ParseSequence("•x"); ok {
		t.Fatalf("expected invalid glyph to fail")
	}
}

func TestEncodeIsCaseInsensitive(t *testing.T) {
	seq, ok := Encode('q')
	if !ok || seq.String() != "--•-" {
		t.Fatalf("unexpected encoding for q: %q (ok=%v)", seq.String(), ok)
	}
	if _, ok := Encode('#'); ok {
		t.Fatalf("expected # to be unencodable")
	}
}

func TestEncodeText(t *testing.T) {
	out, skipped := EncodeText("sos  hi#")
	if out != "••• --- ••• / •••• ••" {
		t.Fatalf("unexpected encoding: %q", out)
	}
	if len(skipped) != 1 || skipped[0] != '#' {
		t.Fatalf("unexpected skipped runes: %q", string(skipped))
	}
}
