package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Key
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"lowercases", "GERMANY", "germany"},
		{"trims", "  Germany  ", "germany"},
		{"collapses internal whitespace", "United   Arab\tEmirates", "united arab emirates"},
		{"folds diacritics", "Türkiye", "turkiye"},
		{"folds composed and decomposed alike", "Côte d'Ivoire", "cote d'ivoire"},
		{"dotted capital i", "İstanbul", "istanbul"},
		{"non-breaking space", "Hong\u00a0Kong", "hong kong"},
		{"keeps punctuation", "UAE (Dubai Branch)", "uae (dubai branch)"},
		{"full-width letters", "ＵＡＥ", "uae"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Germany", "  München ", "São  Paulo", "ÅLAND", "Ελλάδα", "서울", "İstanbul",
		"\xff\xfe invalid", "Ǆ", "ﬁnland", "Łódź",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(string(once)), "input %q", in)
	}
}

func TestNormalizeInvalidUTF8DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Normalize("\xc3\x28 berlin")
	})
}
