// Package generator builds drill targets from the Morse alphabet.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/tapmorse/internal/morse"
)

// Charsets accepted by Alphabet.
const (
	CharsetLetters = "letters"
	CharsetDigits  = "digits"
	CharsetPunct   = "punct"
	CharsetAll     = "all"
)

// Generator produces randomized drill targets.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Alphabet returns the table characters in a named charset. Several
// charsets may be joined with commas.
func Alphabet(charset string) ([]rune, error) {
	var out []rune
	seen := map[rune]struct{}{}
	for _, name := range strings.Split(charset, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		keep, err := charsetFilter(name)
		if err != nil {
			return nil, err
		}
		for _, r := range morse.Chars() {
			if _, ok := seen[r]; ok || !keep(r) {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out, nil
}

func charsetFilter(name string) (func(rune) bool, error) {
	switch name {
	case CharsetLetters:
		return unicode.IsLetter, nil
	case CharsetDigits:
		return unicode.IsDigit, nil
	case CharsetPunct:
		return func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }, nil
	case CharsetAll:
		return func(rune) bool { return true }, nil
	default:
		return nil, fmt.Errorf("unknown charset %q (available: letters, digits, punct, all)", name)
	}
}

// Generate picks count characters uniformly from alphabet.
func (g *Generator) Generate(alphabet []rune, count int) string {
	if len(alphabet) == 0 || count <= 0 {
		return ""
	}
	out := make([]rune, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, alphabet[g.rnd.Intn(len(alphabet))])
	}
	return string(out)
}

// GenerateWeighted picks count characters with weak characters weighted
// by 1+factor.
func (g *Generator) GenerateWeighted(alphabet []rune, count int, weakSet map[rune]struct{}, factor float64) string {
	if len(alphabet) == 0 || count <= 0 {
		return ""
	}
	weights := make([]float64, len(alphabet))
	total := 0.0
	for i, r := range alphabet {
		w := 1.0
		if _, ok := weakSet[r]; ok {
			w += factor
		}
		weights[i] = w
		total += w
	}

	out := make([]rune, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(alphabet) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		out = append(out, alphabet[idx])
	}
	return string(out)
}

// GenerateWords joins randomly picked words until the target holds at
// least count characters. Words are weighted by 1+factor per weak
// character they contain.
func (g *Generator) GenerateWords(words []string, count int, weakSet map[rune]struct{}, factor float64) string {
	if len(words) == 0 || count <= 0 {
		return ""
	}
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		weights[i] = 1.0 + float64(weakCount)*factor
		total += weights[i]
	}

	var b strings.Builder
	n := 0
	for n < count {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(words) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		b.WriteString(words[idx])
		n += len([]rune(words[idx]))
	}
	return b.String()
}
