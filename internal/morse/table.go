// Package morse holds the Morse code table and sequence helpers.
package morse

import (
	"strings"
	"unicode"
)

// Symbol is a single Morse element.
type Symbol uint8

// Morse elements.
const (
	Dot Symbol = iota
	Dash
)

// Glyphs used when rendering sequences.
const (
	DotGlyph  = '•'
	DashGlyph = '-'
)

// String renders the symbol as its glyph.
func (s Symbol) String() string {
	if s == Dash {
		return string(DashGlyph)
	}
	return string(DotGlyph)
}

// Sequence is an ordered list of symbols composing one character.
type Sequence []Symbol

// String renders the sequence as dot/dash glyphs.
func (s Sequence) String() string {
	var b strings.Builder
	for _, sym := range s {
		if sym == Dash {
			b.WriteRune(DashGlyph)
		} else {
			b.WriteRune(DotGlyph)
		}
	}
	return b.String()
}

// ParseSequence parses glyphs into a sequence. It reports false on any
// rune that is neither a dot nor a dash.
func ParseSequence(glyphs string) (Sequence, bool) {
	seq := make(Sequence, 0, len(glyphs))
	for _, r := range glyphs {
		switch r {
		case DotGlyph, '.', '·':
			seq = append(seq, Dot)
		case DashGlyph, '_', '−':
			seq = append(seq, Dash)
		default:
			return nil, false
		}
	}
	return seq, true
}

type entry struct {
	char rune
	code string
}

// entries is the reference alphabet, in display order.
var entries = []entry{
	{'A', "•-"},
	{'B', "-•••"},
	{'C', "-•-•"},
	{'D', "-••"},
	{'E', "•"},
	{'F', "••-•"},
	{'G', "--•"},
	{'H', "••••"},
	{'I', "••"},
	{'J', "•---"},
	{'K', "-•-"},
	{'L', "•-••"},
	{'M', "--"},
	{'N', "-•"},
	{'O', "---"},
	{'P', "•--•"},
	{'Q', "--•-"},
	{'R', "•-•"},
	{'S', "•••"},
	{'T', "-"},
	{'U', "••-"},
	{'V', "•••-"},
	{'W', "•--"},
	{'X', "-••-"},
	{'Y', "-•--"},
	{'Z', "--••"},
	{'0', "-----"},
	{'1', "•----"},
	{'2', "••---"},
	{'3', "•••--"},
	{'4', "••••-"},
	{'5', "•••••"},
	{'6', "-••••"},
	{'7', "--•••"},
	{'8', "---••"},
	{'9', "----•"},
	{'.', "•-•-•-"},
	{',', "--••--"},
	{'?', "••--••"},
	{'\'', "•----•"},
	{'/', "-••-•"},
	{'!', "-•-•--"},
	{'(', "-•--•"},
	{')', "-•--•-"},
	{'&', "•-•••"},
	{':', "---•••"},
	{';', "-•-•-•"},
	{'=', "-•••-"},
	{'+', "•-•-•"},
	{'-', "-••••-"},
	{'_', "••--•-"},
	{'"', "•-••-•"},
	{'$', "•••-••-"},
	{'@', "•--•-•"},
}

// MaxSequenceLen is the length of the longest code in the table.
const MaxSequenceLen = 7

var (
	byCode = make(map[string]rune, len(entries))
	byChar = make(map[rune]string, len(entries))
	chars  = make([]rune, 0, len(entries))
)

func init() {
	for _, e := range entries {
		byCode[e.code] = e.char
		byChar[e.char] = e.code
		chars = append(chars, e.char)
	}
}

// Lookup returns the character encoded by seq.
func Lookup(seq Sequence) (rune, bool) {
	if len(seq) == 0 {
		return 0, false
	}
	r, ok := byCode[seq.String()]
	return r, ok
}

// Decode resolves a completed sequence. Empty, overlong and unknown
// sequences report false.
func Decode(seq Sequence) (rune, bool) {
	if len(seq) > MaxSequenceLen {
		return 0, false
	}
	return Lookup(seq)
}

// Encode returns the sequence for r. Letters are matched case-insensitively.
func Encode(r rune) (Sequence, bool) {
	code, ok := byChar[unicode.ToUpper(r)]
	if !ok {
		return nil, false
	}
	seq, _ := ParseSequence(code)
	return seq, true
}

// Chars returns the table characters in display order.
func Chars() []rune {
	out := make([]rune, len(chars))
	copy(out, chars)
	return out
}

// Len returns the number of table entries.
func Len() int {
	return len(entries)
}
