package stdlib

import "unicode"

// Graphemes splits s into user-perceived characters: a base rune
// followed by any trailing Unicode combining marks (Mn/Mc/Me). This is a
// deliberate approximation of full UAX#29 grapheme-cluster segmentation
// (it does not handle emoji ZWJ sequences, regional-indicator flag
// pairs, or Hangul jamo composition) — no library in the retrieval pack
// (golang.org/x/text included) implements full UAX#29 segmentation, so
// this hand-rolled approximation is the pragmatic fallback, documented
// in DESIGN.md.
func Graphemes(s string) []string {
	runes := []rune(s)
	var out []string
	i := 0
	for i < len(runes) {
		j := i + 1
		for j < len(runes) && isCombining(runes[j]) {
			j++
		}
		out = append(out, string(runes[i:j]))
		i = j
	}
	return out
}

func isCombining(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r)
}

// GraphemeLen is len(Graphemes(s)) without the intermediate allocation.
func GraphemeLen(s string) int {
	runes := []rune(s)
	n := 0
	i := 0
	for i < len(runes) {
		j := i + 1
		for j < len(runes) && isCombining(runes[j]) {
			j++
		}
		n++
		i = j
	}
	return n
}
