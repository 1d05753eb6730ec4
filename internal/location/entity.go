package location

import "strings"

// StatusInactive is the only status value excluded from results.
const StatusInactive = "inactive"

// ServiceArea is a secondary location an entity serves. Empty fields are absent.
type ServiceArea struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
}

// Entity is a matchable directory record. It is built once at the ingestion
// boundary and never mutated by this package.
type Entity struct {
	ID             string        `json:"id"`
	Name           string        `json:"name,omitempty"`
	PrimaryCountry string        `json:"primary_country,omitempty"`
	PrimaryCity    string        `json:"primary_city,omitempty"`
	ServiceAreas   []ServiceArea `json:"service_areas,omitempty"`
	Status         string        `json:"status,omitempty"`
}

// IsInactive reports whether the entity's status marks it as inactive.
// Status is an open set; anything but "inactive" counts as active.
func (e Entity) IsInactive() bool {
	return strings.EqualFold(strings.TrimSpace(e.Status), StatusInactive)
}

// Request is a location query. Country may be empty; City is optional.
type Request struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
}

// Via names the location record that produced a match.
type Via string

const (
	ViaPrimary     Via = "primary"
	ViaServiceArea Via = "service-area"
)

// PrimaryIndex is the ServiceAreaIndex reported for primary-location matches.
const PrimaryIndex = -1

// MatchResult is one matched entity.
type MatchResult struct {
	Entity           Entity `json:"entity"`
	MatchedVia       Via    `json:"matched_via"`
	MatchedCity      bool   `json:"matched_city"`
	ServiceAreaIndex int    `json:"service_area_index"`
}
