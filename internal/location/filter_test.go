package location

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(results []MatchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Entity.ID)
	}
	return out
}

func TestFilterScenarios(t *testing.T) {
	m := NewMatcher(DefaultAliasTable())

	t.Run("primary country match", func(t *testing.T) {
		res := m.Filter([]Entity{{ID: "1", PrimaryCountry: "Germany", Status: "active"}}, Request{Country: "germany"})
		require.Len(t, res.Results, 1)
		assert.Equal(t, ViaPrimary, res.Results[0].MatchedVia)
		assert.Equal(t, 1, res.Report.ViaPrimary)
	})

	t.Run("alias expansion", func(t *testing.T) {
		res := m.Filter([]Entity{{ID: "2", PrimaryCountry: "UAE", Status: "active"}}, Request{Country: "United Arab Emirates"})
		assert.Len(t, res.Results, 1)
		assert.Contains(t, res.Report.AliasKeysUsed, Key("uae"))
		assert.Contains(t, res.Report.AliasKeysUsed, Key("united arab emirates"))
	})

	berlin := Entity{
		ID:             "3",
		PrimaryCountry: "Germany",
		PrimaryCity:    "Berlin",
		ServiceAreas:   []ServiceArea{{Country: "Germany", City: "Munich"}},
		Status:         "active",
	}

	t.Run("city via service area", func(t *testing.T) {
		res := m.Filter([]Entity{berlin}, Request{Country: "Germany", City: "Munich"})
		require.Len(t, res.Results, 1)
		assert.Equal(t, ViaServiceArea, res.Results[0].MatchedVia)
		assert.True(t, res.Results[0].MatchedCity)
		assert.Equal(t, 1, res.Report.CityMatched)
		assert.Equal(t, 1, res.Report.ViaServiceArea)
	})

	t.Run("city on no location", func(t *testing.T) {
		res := m.Filter([]Entity{berlin}, Request{Country: "Germany", City: "Hamburg"})
		assert.Empty(t, res.Results)
		assert.Equal(t, 0, res.Report.TotalMatched)
	})

	t.Run("inactive entity excluded", func(t *testing.T) {
		res := m.Filter([]Entity{{ID: "4", PrimaryCountry: "France", Status: "inactive"}}, Request{Country: "France"})
		assert.Empty(t, res.Results)
		assert.Equal(t, 1, res.Report.SkippedInactive)
		assert.Equal(t, 1, res.Report.TotalInput)
	})

	t.Run("no match across a hundred records", func(t *testing.T) {
		countries := []string{"Germany", "France", "UAE", "Spain", "", "Italy"}
		statuses := []string{"active", "inactive", "pending", ""}
		entities := make([]Entity, 0, 100)
		for i := range 100 {
			entities = append(entities, Entity{
				ID:             fmt.Sprintf("e-%d", i),
				PrimaryCountry: countries[i%len(countries)],
				ServiceAreas:   []ServiceArea{{Country: countries[(i+1)%len(countries)], City: "Somewhere"}},
				Status:         statuses[i%len(statuses)],
			})
		}

		res := m.Filter(entities, Request{Country: "Japan"})
		assert.Equal(t, 0, res.Report.TotalMatched)
		assert.Equal(t, 100, res.Report.TotalInput)
		assert.Empty(t, res.Results)
		assert.NotNil(t, res.Results)
	})
}

func TestFilterEmptyInput(t *testing.T) {
	res := NewMatcher(nil).Filter(nil, Request{Country: "Germany"})
	assert.Empty(t, res.Results)
	assert.Equal(t, 0, res.Report.TotalInput)
	assert.Equal(t, []Key{"germany"}, res.Report.AliasKeysUsed)
	assert.True(t, res.Report.CountryFilterApplied)
}

func TestFilterIsStable(t *testing.T) {
	m := NewMatcher(DefaultAliasTable())
	matching := []Entity{
		{ID: "a", PrimaryCountry: "Germany"},
		{ID: "b", ServiceAreas: []ServiceArea{{Country: "Deutschland"}}},
		{ID: "c", PrimaryCountry: "GERMANY (Cologne)"},
	}
	noise := []Entity{
		{ID: "x", PrimaryCountry: "France"},
		{ID: "y", PrimaryCountry: "Germany", Status: "inactive"},
		{ID: "z"},
	}

	layouts := [][]Entity{
		{matching[0], matching[1], matching[2]},
		{noise[0], matching[0], noise[1], matching[1], noise[2], matching[2]},
		{matching[0], noise[2], noise[1], noise[0], matching[1], matching[2]},
		{noise[1], noise[0], noise[2], matching[0], matching[1], matching[2], noise[0]},
	}
	for i, entities := range layouts {
		res := m.Filter(entities, Request{Country: "germany"})
		assert.Equal(t, []string{"a", "b", "c"}, ids(res.Results), "layout %d", i)
	}
}

func TestFilterNeverReturnsInactive(t *testing.T) {
	m := NewMatcher(DefaultAliasTable())
	entities := []Entity{
		{ID: "1", PrimaryCountry: "Germany", Status: "inactive"},
		{ID: "2", PrimaryCountry: "Germany", Status: "INACTIVE"},
		{ID: "3", PrimaryCountry: "Germany", Status: " Inactive "},
		{ID: "4", PrimaryCountry: "Germany", Status: "suspended"},
		{ID: "5", PrimaryCountry: "Germany"},
	}

	res := m.Filter(entities, Request{Country: "Germany"})
	assert.Equal(t, []string{"4", "5"}, ids(res.Results))
	assert.Equal(t, 3, res.Report.SkippedInactive)
}

func TestFilterEmptyCountry(t *testing.T) {
	entities := []Entity{
		{ID: "1", PrimaryCountry: "Germany", PrimaryCity: "Berlin"},
		{ID: "2", PrimaryCountry: "France", PrimaryCity: "Paris"},
		{ID: "3", PrimaryCountry: "Italy", Status: "inactive"},
	}

	t.Run("match-all", func(t *testing.T) {
		res := NewMatcher(DefaultAliasTable()).Filter(entities, Request{})
		assert.Equal(t, []string{"1", "2"}, ids(res.Results))
		assert.False(t, res.Report.CountryFilterApplied)
		assert.Empty(t, res.Report.AliasKeysUsed)
	})

	t.Run("match-all with city", func(t *testing.T) {
		res := NewMatcher(DefaultAliasTable()).Filter(entities, Request{City: "paris"})
		assert.Equal(t, []string{"2"}, ids(res.Results))
	})

	t.Run("match-none", func(t *testing.T) {
		m := NewMatcher(DefaultAliasTable(), WithEmptyCountryPolicy(EmptyCountryMatchNone))
		res := m.Filter(entities, Request{City: "paris"})
		assert.Empty(t, res.Results)
		assert.Equal(t, 3, res.Report.TotalInput)
	})
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	entities := []Entity{{ID: "1", PrimaryCountry: "UAE", ServiceAreas: []ServiceArea{{Country: "Qatar"}}}}
	before := fmt.Sprintf("%#v", entities)

	NewMatcher(DefaultAliasTable()).Filter(entities, Request{Country: "Qatar"})
	assert.Equal(t, before, fmt.Sprintf("%#v", entities))
}

func TestFilterConcurrentUse(t *testing.T) {
	m := NewMatcher(DefaultAliasTable())
	entities := []Entity{
		{ID: "1", PrimaryCountry: "Germany"},
		{ID: "2", PrimaryCountry: "UAE"},
	}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			country := "Germany"
			if i%2 == 1 {
				country = "Emirates"
			}
			res := m.Filter(entities, Request{Country: country})
			assert.Len(t, res.Results, 1)
		}(i)
	}
	wg.Wait()
}
