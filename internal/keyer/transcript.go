package keyer

// Transcript is the ordered history of decoded characters.
type Transcript struct {
	runes []rune
}

// Append adds r to the end.
func (t *Transcript) Append(r rune) {
	t.runes = append(t.runes, r)
}

// Clear empties the transcript.
func (t *Transcript) Clear() {
	t.runes = t.runes[:0]
}

// RemoveLast drops the final character; it is a no-op when empty.
func (t *Transcript) RemoveLast() {
	if len(t.runes) == 0 {
		return
	}
	t.runes = t.runes[:len(t.runes)-1]
}

// Len returns the number of characters.
func (t *Transcript) Len() int {
	return len(t.runes)
}

func (t *Transcript) String() string {
	return string(t.runes)
}
