package content

import "strings"

// Readability scores text as 100 - (words/sentences)*5 clamped to [0, 100].
// Sentences are the non-empty segments between '.', '!' and '?', with a
// minimum of one. The formula is kept as-is for output compatibility.
func Readability(text string) float64 {
	words := len(strings.Fields(text))

	sentences := 0
	for _, seg := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(seg) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	return clamp(100-(float64(words)/float64(sentences))*5, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
