package utils

import "unicode"

// Clip returns at most maxRunes runes of text. When the text is longer it is
// cut at the last whitespace in the second half of the window, so words are
// not split.
func Clip(text string, maxRunes int) string {
	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return text
	}

	cut := maxRunes
	for i := maxRunes; i > maxRunes/2; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return string(runes[:cut])
}
