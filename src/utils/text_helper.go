package utils

import "strings"

type TextHelper struct {
}

// Normalize lowercases the text and strips everything except letters, digits
// and the pair separator.
func (t *TextHelper) Normalize(text string) string {
	var builder strings.Builder

	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '/' || r == ' ' {
			builder.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

// Words splits the normalized text, dropping tokens that are only a pair
// separator ("Euro / US Dollar" keeps "eur/usd" intact but not the bare "/").
func (t *TextHelper) Words(text string) []string {
	words := make([]string, 0)

	for _, word := range strings.Fields(t.Normalize(text)) {
		if strings.Trim(word, "/") == "" {
			continue
		}

		words = append(words, word)
	}

	return words
}

// Levenshtein is the textbook single-character insert/delete/substitute
// distance.
func (t *TextHelper) Levenshtein(a string, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		previous[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			current[j] = min(previous[j]+1, min(current[j-1]+1, previous[j-1]+cost))
		}

		previous, current = current, previous
	}

	return previous[len(b)]
}

func min(a int, b int) int {
	if a < b {
		return a
	}

	return b
}
