package dictionary

import (
	"slices"
	"unicode/utf8"
)

// SortKey returns word with its runes sorted ascending. It is the puzzle text
// of a single-word riddle and the key grouping its anagrams.
func SortKey(word string) string {
	runes := []rune(word)
	slices.Sort(runes)
	return string(runes)
}

// RuneLen is the length used for every word-length rule.
func RuneLen(s string) int { return utf8.RuneCountInString(s) }

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// ToKatakana converts Hiragana to Katakana.
func ToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x3041 && r <= 0x3096 {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}
