package location

// LocationCheck is the predicate outcome for one location record.
type LocationCheck struct {
	Index        int    `json:"index"`
	Country      string `json:"country"`
	City         string `json:"city,omitempty"`
	CountryKey   Key    `json:"country_key"`
	CityKey      Key    `json:"city_key,omitempty"`
	CountryMatch bool   `json:"country_match"`
	CityMatch    bool   `json:"city_match"`
}

// Diagnosis explains how an entity was evaluated against a request.
type Diagnosis struct {
	EntityID     string          `json:"entity_id"`
	Inactive     bool            `json:"inactive"`
	CountryKeys  []Key           `json:"country_keys"`
	CityKey      Key             `json:"city_key,omitempty"`
	Primary      LocationCheck   `json:"primary"`
	ServiceAreas []LocationCheck `json:"service_areas"`
	Matched      bool            `json:"matched"`
	MatchedVia   Via             `json:"matched_via,omitempty"`
}

// Explain evaluates every location of e against req. Matched and MatchedVia
// agree with Match; Inactive is reported but does not affect Matched.
func (m *Matcher) Explain(e Entity, req Request) Diagnosis {
	q := m.prepare(req)
	d := Diagnosis{
		EntityID:     e.ID,
		Inactive:     e.IsInactive(),
		CountryKeys:  q.countryKeys,
		CityKey:      q.city,
		Primary:      m.check(PrimaryIndex, e.PrimaryCountry, e.PrimaryCity, q),
		ServiceAreas: make([]LocationCheck, 0, len(e.ServiceAreas)),
	}
	for i, area := range e.ServiceAreas {
		d.ServiceAreas = append(d.ServiceAreas, m.check(i, area.Country, area.City, q))
	}

	if r, ok := m.match(e, q); ok {
		d.Matched = true
		d.MatchedVia = r.MatchedVia
	}
	return d
}

func (m *Matcher) check(index int, country, city string, q query) LocationCheck {
	c := LocationCheck{
		Index:      index,
		Country:    country,
		City:       city,
		CountryKey: Normalize(country),
		CityKey:    Normalize(city),
	}
	if !q.rejectAll {
		c.CountryMatch = m.countryMatches(country, q)
		c.CityMatch = q.city != "" && m.cityMatches(city, q)
	}
	return c
}
