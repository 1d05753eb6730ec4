package models

import (
	"strings"
	"unicode"

	"standsdir/internal/location"
)

// PageKind selects which global location pages to generate.
type PageKind string

const (
	PageKindCountry PageKind = "country"
	PageKindCity    PageKind = "city"
)

// IsValid reports whether k is a supported page kind.
func (k PageKind) IsValid() bool {
	return k == PageKindCountry || k == PageKindCity
}

// PageLocation is one entry of the location catalog. City is empty for
// country-only entries.
type PageLocation struct {
	Country string `yaml:"country" json:"country"`
	City    string `yaml:"city" json:"city,omitempty"`
}

// Request returns the location query for the page.
func (p PageLocation) Request() location.Request {
	return location.Request{Country: p.Country, City: p.City}
}

// Slug returns the URL path segment, e.g. "united-arab-emirates/dubai".
func (p PageLocation) Slug() string {
	s := slugify(p.Country)
	if p.City != "" {
		s += "/" + slugify(p.City)
	}
	return s
}

func slugify(raw string) string {
	key := location.Normalize(raw).String()
	var b strings.Builder
	dash := false
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// GlobalPage is the builder count behind one generated location page.
type GlobalPage struct {
	Kind         PageKind `json:"kind"`
	Country      string   `json:"country"`
	City         string   `json:"city,omitempty"`
	Slug         string   `json:"slug"`
	BuilderCount int      `json:"builder_count"`
}

// DefaultCatalog lists major trade-fair locations.
func DefaultCatalog() []PageLocation {
	return []PageLocation{
		{Country: "Germany", City: "Berlin"},
		{Country: "Germany", City: "Cologne"},
		{Country: "Germany", City: "Düsseldorf"},
		{Country: "Germany", City: "Frankfurt"},
		{Country: "Germany", City: "Hannover"},
		{Country: "Germany", City: "Munich"},
		{Country: "Germany", City: "Nuremberg"},
		{Country: "United Arab Emirates", City: "Dubai"},
		{Country: "United Arab Emirates", City: "Abu Dhabi"},
		{Country: "United Kingdom", City: "London"},
		{Country: "United Kingdom", City: "Birmingham"},
		{Country: "France", City: "Paris"},
		{Country: "Italy", City: "Milan"},
		{Country: "Spain", City: "Barcelona"},
		{Country: "Spain", City: "Madrid"},
		{Country: "Netherlands", City: "Amsterdam"},
		{Country: "Switzerland", City: "Geneva"},
		{Country: "Türkiye", City: "Istanbul"},
		{Country: "Saudi Arabia", City: "Riyadh"},
		{Country: "United States", City: "Las Vegas"},
		{Country: "United States", City: "Chicago"},
		{Country: "Singapore", City: "Singapore"},
		{Country: "China", City: "Shanghai"},
		{Country: "Hong Kong", City: "Hong Kong"},
	}
}

// Pages expands a catalog into the pages of the requested kind. Country pages
// are deduplicated by normalized country and keep catalog order.
func Pages(catalog []PageLocation, kind PageKind) []PageLocation {
	if kind == PageKindCity {
		out := make([]PageLocation, 0, len(catalog))
		for _, p := range catalog {
			if p.City != "" {
				out = append(out, p)
			}
		}
		return out
	}

	seen := make(map[location.Key]struct{}, len(catalog))
	out := make([]PageLocation, 0, len(catalog))
	for _, p := range catalog {
		k := location.Normalize(p.Country)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, PageLocation{Country: p.Country})
	}
	return out
}
