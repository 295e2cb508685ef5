package search

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeText trims, lowercases and collapses internal whitespace runs to
// a single space. Total over all inputs.
func normalizeText(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// normalizeKey derives the cross-provider dedup key for a (title, author)
// pair. Only word characters and CJK ideographs survive, so punctuation and
// casing differences between providers collapse to the same key. An empty
// key means the pair carries no usable identity.
func normalizeKey(title, author string) string {
	raw := normalizeText(title) + "|" + normalizeText(author)
	var b strings.Builder
	for _, r := range raw {
		if isWordRune(r) || isCJK(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isCJK reports whether r is in the CJK Unified Ideographs block.
func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func containsCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}

// truncateRunes cuts s to at most limit characters. Rune-based so CJK
// synopses are not split mid-character.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
