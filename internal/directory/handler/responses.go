package handler

import (
	"time"

	"standsdir/internal/directory/models"
	"standsdir/internal/location"
	id "standsdir/pkg/domain"
)

// BuilderResponse is the public view of a matched builder. Contact details
// are withheld; clients reach builders through leads.
type BuilderResponse struct {
	ID                  id.BuilderID           `json:"id"`
	CompanyName         string                 `json:"company_name"`
	Slug                string                 `json:"slug,omitempty"`
	HeadquartersCountry string                 `json:"headquarters_country,omitempty"`
	HeadquartersCity    string                 `json:"headquarters_city,omitempty"`
	ServiceLocations    []location.ServiceArea `json:"service_locations"`
	Verified            bool                   `json:"verified"`
	Premium             bool                   `json:"premium_member"`
	Rating              float64                `json:"rating"`
	MatchedVia          location.Via           `json:"matched_via"`
	MatchedCity         bool                   `json:"matched_city"`
	ServiceAreaIndex    int                    `json:"service_area_index"`
}

type ListBuildersResponse struct {
	Country  string            `json:"country"`
	City     string            `json:"city,omitempty"`
	Total    int               `json:"total"`
	Builders []BuilderResponse `json:"builders"`
	Report   location.Report   `json:"report"`
}

type GlobalPagesResponse struct {
	Type  models.PageKind     `json:"type"`
	Pages []models.GlobalPage `json:"pages"`
}

type SubmitLeadResponse struct {
	LeadID      id.LeadID             `json:"lead_id"`
	Status      models.LeadStatus     `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	Routing     *models.RoutingResult `json:"routing"`
	Assignments int                   `json:"assignments"`
}

func toBuilderResponse(m models.BuilderMatch) BuilderResponse {
	b := m.Builder
	areas := b.ServiceLocations
	if areas == nil {
		areas = []location.ServiceArea{}
	}
	return BuilderResponse{
		ID:                  b.ID,
		CompanyName:         b.CompanyName,
		Slug:                b.Slug,
		HeadquartersCountry: b.HeadquartersCountry,
		HeadquartersCity:    b.HeadquartersCity,
		ServiceLocations:    areas,
		Verified:            b.Verified,
		Premium:             b.Premium,
		Rating:              b.Rating,
		MatchedVia:          m.MatchedVia,
		MatchedCity:         m.MatchedCity,
		ServiceAreaIndex:    m.ServiceAreaIndex,
	}
}

func toListBuildersResponse(l *models.Listing) ListBuildersResponse {
	builders := make([]BuilderResponse, 0, len(l.Builders))
	for _, m := range l.Builders {
		builders = append(builders, toBuilderResponse(m))
	}
	return ListBuildersResponse{
		Country:  l.Request.Country,
		City:     l.Request.City,
		Total:    l.Report.TotalMatched,
		Builders: builders,
		Report:   l.Report,
	}
}
