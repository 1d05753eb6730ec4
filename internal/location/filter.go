package location

// Report summarizes one Filter call.
type Report struct {
	TotalInput           int   `json:"total_input"`
	TotalMatched         int   `json:"total_matched"`
	AliasKeysUsed        []Key `json:"alias_keys_used"`
	SkippedInactive      int   `json:"skipped_inactive"`
	ViaPrimary           int   `json:"via_primary"`
	ViaServiceArea       int   `json:"via_service_area"`
	CityMatched          int   `json:"city_matched"`
	CountryFilterApplied bool  `json:"country_filter_applied"`
}

// Resolution is the ordered result set of a Filter call plus its report.
type Resolution struct {
	Results []MatchResult `json:"results"`
	Report  Report        `json:"report"`
}

// Filter returns the active entities matching req, in input order.
// Entities whose status is "inactive" are skipped before matching.
// Alias expansion happens once per call. The input slice is not modified.
func (m *Matcher) Filter(entities []Entity, req Request) Resolution {
	q := m.prepare(req)

	res := Resolution{
		Results: make([]MatchResult, 0),
		Report: Report{
			TotalInput:           len(entities),
			AliasKeysUsed:        append([]Key{}, q.countryKeys...),
			CountryFilterApplied: len(q.countryKeys) > 0,
		},
	}

	for _, e := range entities {
		if e.IsInactive() {
			res.Report.SkippedInactive++
			continue
		}
		r, ok := m.match(e, q)
		if !ok {
			continue
		}
		res.Results = append(res.Results, r)
		switch r.MatchedVia {
		case ViaPrimary:
			res.Report.ViaPrimary++
		case ViaServiceArea:
			res.Report.ViaServiceArea++
		}
		if r.MatchedCity {
			res.Report.CityMatched++
		}
	}

	res.Report.TotalMatched = len(res.Results)
	return res
}
