package wordsearch

import "strings"

// MinWordLength is the shortest word accepted from a word source.
const MinWordLength = 3

// NormalizeWord uppercases s and strips everything outside A-Z.
func NormalizeWord(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, s)
}

// NormalizeWords normalizes every word, drops those shorter than
// MinWordLength and removes repeats, keeping first occurrences in order.
func NormalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = NormalizeWord(w)
		if len(w) < MinWordLength || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
