package wordlist

import "github.com/verte-zerg/tapmorse/internal/morse"

// Keyable reports whether every character of word has a code.
func Keyable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if _, ok := morse.Encode(r); !ok {
			return false
		}
	}
	return true
}
