package models

import (
	"time"

	"standsdir/internal/location"
	id "standsdir/pkg/domain"
)

// Plan is the builder's subscription tier. It bounds how many open leads the
// builder may hold at once.
type Plan string

const (
	PlanFree         Plan = "free"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

var planCapacity = map[Plan]int{
	PlanFree:         5,
	PlanProfessional: 20,
	PlanEnterprise:   100,
}

// Capacity returns the maximum number of open leads for the plan.
// Unknown plans get the free-tier capacity.
func (p Plan) Capacity() int {
	if c, ok := planCapacity[p]; ok {
		return c
	}
	return planCapacity[PlanFree]
}

// Builder is a directory listing for an exhibition-stand builder.
//
// Status is free text; only "inactive" hides the builder from listings.
// Location fields may be empty when the source record omitted them.
type Builder struct {
	ID                  id.BuilderID           `json:"id"`
	CompanyName         string                 `json:"company_name"`
	Slug                string                 `json:"slug,omitempty"`
	ContactEmail        string                 `json:"contact_email,omitempty"`
	HeadquartersCountry string                 `json:"headquarters_country,omitempty"`
	HeadquartersCity    string                 `json:"headquarters_city,omitempty"`
	ServiceLocations    []location.ServiceArea `json:"service_locations,omitempty"`
	Status              string                 `json:"status,omitempty"`
	Verified            bool                   `json:"verified"`
	Premium             bool                   `json:"premium_member"`
	Plan                Plan                   `json:"plan,omitempty"`
	Rating              float64                `json:"rating"`
	AverageProject      float64                `json:"average_project,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
}

// Entity projects the builder into the matchable record used by location.Matcher.
func (b *Builder) Entity() location.Entity {
	return location.Entity{
		ID:             b.ID.String(),
		Name:           b.CompanyName,
		PrimaryCountry: b.HeadquartersCountry,
		PrimaryCity:    b.HeadquartersCity,
		ServiceAreas:   b.ServiceLocations,
		Status:         b.Status,
	}
}

// IsInactive mirrors location.Entity.IsInactive.
func (b *Builder) IsInactive() bool {
	return b.Entity().IsInactive()
}

// Entities projects builders in order.
func Entities(builders []*Builder) []location.Entity {
	out := make([]location.Entity, 0, len(builders))
	for _, b := range builders {
		out = append(out, b.Entity())
	}
	return out
}
