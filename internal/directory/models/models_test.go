package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"standsdir/internal/location"
	id "standsdir/pkg/domain"
	dErrors "standsdir/pkg/domain-errors"
)

type ModelsSuite struct {
	suite.Suite
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

func (s *ModelsSuite) TestPlanCapacity() {
	s.Equal(5, PlanFree.Capacity())
	s.Equal(20, PlanProfessional.Capacity())
	s.Equal(100, PlanEnterprise.Capacity())
	s.Equal(5, Plan("gold").Capacity())
	s.Equal(5, Plan("").Capacity())
}

func (s *ModelsSuite) TestBuilderEntity() {
	b := &Builder{
		ID:                  id.NewBuilderID(),
		CompanyName:         "Expo Works",
		HeadquartersCountry: "Germany",
		HeadquartersCity:    "Berlin",
		ServiceLocations:    []location.ServiceArea{{Country: "UAE", City: "Dubai"}},
		Status:              "Inactive",
	}

	e := b.Entity()
	s.Equal(b.ID.String(), e.ID)
	s.Equal("Germany", e.PrimaryCountry)
	s.Equal("Berlin", e.PrimaryCity)
	s.Equal(b.ServiceLocations, e.ServiceAreas)
	s.True(b.IsInactive())
	s.Len(Entities([]*Builder{b, b}), 2)
}

func (s *ModelsSuite) TestNewLead() {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	s.Run("valid lead starts new", func() {
		lead, err := NewLead(id.NewLeadID(), " Acme ", "ops@acme.test", " Germany ", " Munich ", 25000, now)
		s.Require().NoError(err)
		s.Equal("Acme", lead.CompanyName)
		s.Equal("Germany", lead.Country)
		s.Equal("Munich", lead.City)
		s.Equal(LeadStatusNew, lead.Status)
		s.Equal(now, lead.CreatedAt)
		s.Equal(location.Request{Country: "Germany", City: "Munich"}, lead.Request())
	})

	s.Run("rejects invalid input", func() {
		cases := []struct {
			company, email, country string
			value                   float64
		}{
			{"", "ops@acme.test", "Germany", 0},
			{"Acme", "not-an-email", "Germany", 0},
			{"Acme", "ops@acme.test", "  ", 0},
			{"Acme", "ops@acme.test", "Germany", -1},
		}
		for _, c := range cases {
			_, err := NewLead(id.NewLeadID(), c.company, c.email, c.country, "", c.value, now)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		}
	})
}

func (s *ModelsSuite) TestLeadRouting() {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	lead, err := NewLead(id.NewLeadID(), "Acme", "ops@acme.test", "Germany", "", 0, created)
	s.Require().NoError(err)

	s.False(lead.CanReroute(created.Add(72*time.Hour)), "new leads are not rerouted")
	s.Zero(lead.AverageMatchScore())

	builderID := id.NewBuilderID()
	routedAt := created.Add(time.Hour)
	lead.ApplyRouting([]Assignment{{BuilderID: builderID, MatchScore: 80}, {BuilderID: id.NewBuilderID(), MatchScore: 90}}, routedAt)

	s.Equal(LeadStatusRouted, lead.Status)
	s.Require().NotNil(lead.RoutedAt)
	s.Equal(routedAt, *lead.RoutedAt)
	s.True(lead.AssignedTo(builderID))
	s.False(lead.AssignedTo(id.NewBuilderID()))
	s.InDelta(85.0, lead.AverageMatchScore(), 0.001)

	s.False(lead.CanReroute(routedAt.Add(-time.Minute)))
	s.True(lead.CanReroute(routedAt.Add(time.Minute)))
	lead.Rerouted = true
	s.False(lead.CanReroute(routedAt.Add(time.Minute)))
}

func (s *ModelsSuite) TestLeadStatusIsOpen() {
	for _, st := range []LeadStatus{LeadStatusNew, LeadStatusRouted, LeadStatusViewed, LeadStatusQuoted} {
		s.True(st.IsOpen(), st)
	}
	s.False(LeadStatusClosed.IsOpen())
}

func TestBuilderFromRecord(t *testing.T) {
	t.Run("nested camelCase document", func(t *testing.T) {
		var rec Record
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": "builder-42",
			"companyName": "Dubai Stands",
			"headquarters": {"country": "UAE", "city": "Dubai"},
			"serviceLocations": [{"country": "Saudi Arabia", "city": "Riyadh"}, "Qatar", {"foo": 1}],
			"verified": true,
			"premiumMember": "true",
			"planType": "Professional",
			"rating": "4.7",
			"contactInfo": {"primaryEmail": "hello@dubaistands.test"},
			"priceRange": {"averageProject": 40000}
		}`), &rec))

		b, err := BuilderFromRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, "Dubai Stands", b.CompanyName)
		assert.Equal(t, "UAE", b.HeadquartersCountry)
		assert.Equal(t, "Dubai", b.HeadquartersCity)
		assert.Equal(t, []location.ServiceArea{{Country: "Saudi Arabia", City: "Riyadh"}, {Country: "Qatar"}}, b.ServiceLocations)
		assert.True(t, b.Verified)
		assert.True(t, b.Premium)
		assert.Equal(t, PlanProfessional, b.Plan)
		assert.InDelta(t, 4.7, b.Rating, 0.0001)
		assert.Equal(t, "hello@dubaistands.test", b.ContactEmail)
		assert.InDelta(t, 40000, b.AverageProject, 0.0001)

		again, err := BuilderFromRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, b.ID, again.ID, "non-UUID ids map to a stable UUID")
	})

	t.Run("flat snake_case document", func(t *testing.T) {
		builderID := id.NewBuilderID()
		b, err := BuilderFromRecord(Record{
			"id":                   builderID.String(),
			"name":                 "Berlin Booths",
			"headquarters_country": "Germany",
			"service_locations":    []any{map[string]any{"country": "Austria", "city": "Vienna"}},
			"status":               "inactive",
		})
		require.NoError(t, err)
		assert.Equal(t, builderID, b.ID)
		assert.Equal(t, "Germany", b.HeadquartersCountry)
		assert.Empty(t, b.HeadquartersCity)
		assert.True(t, b.IsInactive())
	})

	t.Run("flat country and city keys", func(t *testing.T) {
		b, err := BuilderFromRecord(Record{"name": "Flat Stands", "country": "Germany", "city": "Berlin"})
		require.NoError(t, err)
		assert.Equal(t, "Germany", b.HeadquartersCountry)
		assert.Equal(t, "Berlin", b.HeadquartersCity)
		assert.Equal(t, "Germany", b.Entity().PrimaryCountry)
	})

	t.Run("headquarters keys win over flat country and city", func(t *testing.T) {
		b, err := BuilderFromRecord(Record{
			"name":                 "Both Stands",
			"headquarters_country": "Austria",
			"headquarters":         map[string]any{"city": "Vienna"},
			"country":              "Germany",
			"city":                 "Berlin",
		})
		require.NoError(t, err)
		assert.Equal(t, "Austria", b.HeadquartersCountry)
		assert.Equal(t, "Vienna", b.HeadquartersCity)
	})

	t.Run("missing location data is not an error", func(t *testing.T) {
		b, err := BuilderFromRecord(Record{"name": "Nowhere Ltd"})
		require.NoError(t, err)
		assert.Empty(t, b.Entity().PrimaryCountry)
		assert.Empty(t, b.ServiceLocations)
	})

	t.Run("record without id or name", func(t *testing.T) {
		_, err := BuilderFromRecord(Record{"country": "Germany"})
		assert.Error(t, err)
	})
}

func TestPages(t *testing.T) {
	catalog := []PageLocation{
		{Country: "Germany", City: "Berlin"},
		{Country: "germany ", City: "Düsseldorf"},
		{Country: "United Arab Emirates", City: "Abu Dhabi"},
		{Country: "Malta"},
	}

	assert.Equal(t, []PageLocation{
		{Country: "Germany"},
		{Country: "United Arab Emirates"},
		{Country: "Malta"},
	}, Pages(catalog, PageKindCountry))

	cities := Pages(catalog, PageKindCity)
	require.Len(t, cities, 3)
	assert.Equal(t, "germany/dusseldorf", cities[1].Slug())
	assert.Equal(t, "united-arab-emirates/abu-dhabi", cities[2].Slug())
	assert.Equal(t, "cote-d-ivoire", PageLocation{Country: "Côte d'Ivoire"}.Slug())

	assert.True(t, PageKindCity.IsValid())
	assert.False(t, PageKind("region").IsValid())
	assert.NotEmpty(t, DefaultCatalog())
}
