package location

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinContainmentRunes is the shortest key allowed to match anywhere
// inside another key. Shorter keys ("uk", "us") must appear as a whole word,
// so "uk (london branch)" matches while "ukraine" and "russia" do not.
const DefaultMinContainmentRunes = 3

// Comparator decides whether a key stored on an entity satisfies a requested key.
type Comparator func(entity, requested Key) bool

// Containment returns the default comparator: equality, or containment in
// either direction. A contained key shorter than minRunes only counts when it
// sits on word boundaries. Empty keys never match.
func Containment(minRunes int) Comparator {
	return func(entity, requested Key) bool {
		if entity == "" || requested == "" {
			return false
		}
		if entity == requested {
			return true
		}
		e, r := string(entity), string(requested)
		return contains(e, r, minRunes) || contains(r, e, minRunes)
	}
}

func contains(s, sub string, minRunes int) bool {
	if utf8.RuneCountInString(sub) >= minRunes {
		return strings.Contains(s, sub)
	}
	return containsWord(s, sub)
}

// containsWord reports whether sub occurs in s with no letter or digit
// directly before or after it.
func containsWord(s, sub string) bool {
	for i := 0; i <= len(s)-len(sub); {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(sub)
		if wordBoundaryBefore(s, start) && wordBoundaryAfter(s, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		i = start + size
	}
	return false
}

func wordBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
