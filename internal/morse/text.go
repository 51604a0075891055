package morse

import "strings"

// EncodeText renders text as space-separated glyph groups, with " / "
// between words. Characters outside the table are skipped and returned.
func EncodeText(text string) (string, []rune) {
	var skipped []rune
	words := strings.Fields(text)
	encodedWords := make([]string, 0, len(words))
	for _, word := range words {
		codes := make([]string, 0, len(word))
		for _, r := range word {
			seq, ok := Encode(r)
			if !ok {
				skipped = append(skipped, r)
				continue
			}
			codes = append(codes, seq.String())
		}
		if len(codes) > 0 {
			encodedWords = append(encodedWords, strings.Join(codes, " "))
		}
	}
	return strings.Join(encodedWords, " / "), skipped
}
