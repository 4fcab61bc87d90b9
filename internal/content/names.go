package content

import (
	"strings"
	"unicode"
)

// DisplayName normalizes a user-entered name for display: the first letter
// of every word (and every hyphenated part, "maj-lis" -> "Maj-Lis") is
// upper-cased. Interior uppercase the user typed is preserved, so
// abbreviations like "Maja FN" survive; all-lowercase words get their tail
// lower-cased.
func DisplayName(name string) string {
	words := strings.Split(strings.TrimSpace(name), " ")
	for i, word := range words {
		if strings.Contains(word, "-") {
			parts := strings.Split(word, "-")
			for j, part := range parts {
				parts[j] = capitalize(part, false)
			}
			words[i] = strings.Join(parts, "-")
			continue
		}
		words[i] = capitalize(word, true)
	}
	return strings.Join(words, " ")
}

func capitalize(word string, lowerTail bool) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	head := string(unicode.ToUpper(runes[0]))
	tail := string(runes[1:])

	if lowerTail && !hasUpper(tail) {
		tail = strings.ToLower(tail)
	}
	return head + tail
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
