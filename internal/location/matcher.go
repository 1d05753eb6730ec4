package location

// EmptyCountryPolicy controls requests whose country normalizes to "".
type EmptyCountryPolicy string

const (
	// EmptyCountryMatchAll treats a missing country as "no country filter".
	// City refinement still applies.
	EmptyCountryMatchAll EmptyCountryPolicy = "match-all"
	// EmptyCountryMatchNone matches nothing when the country is missing.
	EmptyCountryMatchNone EmptyCountryPolicy = "match-none"
)

// ParseEmptyCountryPolicy accepts "match-all" or "match-none"; "" means match-all.
func ParseEmptyCountryPolicy(s string) (EmptyCountryPolicy, bool) {
	switch EmptyCountryPolicy(s) {
	case "", EmptyCountryMatchAll:
		return EmptyCountryMatchAll, true
	case EmptyCountryMatchNone:
		return EmptyCountryMatchNone, true
	default:
		return "", false
	}
}

// Matcher decides whether an entity satisfies a Request. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	aliases     *AliasTable
	compare     Comparator
	emptyPolicy EmptyCountryPolicy
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithComparator replaces the default containment comparator.
func WithComparator(c Comparator) MatcherOption {
	return func(m *Matcher) {
		if c != nil {
			m.compare = c
		}
	}
}

// WithEmptyCountryPolicy sets how a request without a country is handled.
func WithEmptyCountryPolicy(p EmptyCountryPolicy) MatcherOption {
	return func(m *Matcher) {
		if p != "" {
			m.emptyPolicy = p
		}
	}
}

// NewMatcher returns a Matcher using aliases. A nil table disables alias expansion.
func NewMatcher(aliases *AliasTable, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		aliases:     aliases,
		compare:     Containment(DefaultMinContainmentRunes),
		emptyPolicy: EmptyCountryMatchAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Aliases returns the table the matcher expands countries with.
func (m *Matcher) Aliases() *AliasTable {
	return m.aliases
}

// query is a Request normalized once and reused across entities.
type query struct {
	countryKeys []Key
	city        Key
	anyCountry  bool
	rejectAll   bool
}

func (m *Matcher) prepare(req Request) query {
	q := query{
		countryKeys: m.aliases.Expand(Normalize(req.Country)),
		city:        Normalize(req.City),
	}
	if len(q.countryKeys) == 0 {
		q.anyCountry = m.emptyPolicy == EmptyCountryMatchAll
		q.rejectAll = !q.anyCountry
	}
	return q
}

func (m *Matcher) countryMatches(raw string, q query) bool {
	if q.anyCountry {
		return true
	}
	c := Normalize(raw)
	if c == "" {
		return false
	}
	for _, k := range q.countryKeys {
		if c == k || m.compare(c, k) {
			return true
		}
	}
	return false
}

func (m *Matcher) cityMatches(raw string, q query) bool {
	return m.compare(Normalize(raw), q.city)
}

// Match reports whether e satisfies req and, if so, which location produced
// the match. Locations are scanned primary first, then service areas in
// order. With a city in the request, country and city must both hold on the
// same location. Status is not consulted.
func (m *Matcher) Match(e Entity, req Request) (MatchResult, bool) {
	return m.match(e, m.prepare(req))
}

func (m *Matcher) match(e Entity, q query) (MatchResult, bool) {
	if q.rejectAll {
		return MatchResult{}, false
	}

	if r, ok := m.matchLocation(e, PrimaryIndex, e.PrimaryCountry, e.PrimaryCity, q); ok {
		return r, true
	}
	for i, area := range e.ServiceAreas {
		if r, ok := m.matchLocation(e, i, area.Country, area.City, q); ok {
			return r, true
		}
	}
	return MatchResult{}, false
}

func (m *Matcher) matchLocation(e Entity, index int, country, city string, q query) (MatchResult, bool) {
	if !m.countryMatches(country, q) {
		return MatchResult{}, false
	}
	if q.city != "" && !m.cityMatches(city, q) {
		return MatchResult{}, false
	}

	via := ViaServiceArea
	if index == PrimaryIndex {
		via = ViaPrimary
	}
	return MatchResult{
		Entity:           e,
		MatchedVia:       via,
		MatchedCity:      q.city != "",
		ServiceAreaIndex: index,
	}, true
}
