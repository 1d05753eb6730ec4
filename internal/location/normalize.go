// Package location resolves free-text country/city requests against directory
// entities that carry a primary location and a list of service areas.
//
// The package is pure: no I/O, no shared mutable state. An AliasTable is built
// once at startup and injected into a Matcher, which is safe for concurrent use.
package location

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Key is a normalized, comparison-only form of a place name. Never displayed.
type Key string

// Normalize converts raw text into a Key: diacritics folded, lowercased,
// trimmed, internal whitespace collapsed to single spaces.
// Empty input yields "". Normalize(string(Normalize(s))) == Normalize(s).
func Normalize(raw string) Key {
	if raw == "" {
		return ""
	}

	decomposed := norm.NFKD.String(strings.ToLower(raw))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return Key(norm.NFC.String(collapsed))
}

func (k Key) String() string {
	return string(k)
}
