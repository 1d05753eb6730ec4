package models

import (
	"time"

	"standsdir/internal/location"
	id "standsdir/pkg/domain"
)

// BuilderMatch is a builder selected by a location resolution.
type BuilderMatch struct {
	Builder          *Builder     `json:"builder"`
	MatchedVia       location.Via `json:"matched_via"`
	MatchedCity      bool         `json:"matched_city"`
	ServiceAreaIndex int          `json:"service_area_index"`
}

// Listing is the result of resolving builders for a location.
type Listing struct {
	Request  location.Request `json:"request"`
	Builders []BuilderMatch   `json:"builders"`
	Report   location.Report  `json:"report"`
}

// DebugReport explains a resolution for operators.
type DebugReport struct {
	Request           location.Request    `json:"request"`
	TotalBuilders     int                 `json:"total_builders"`
	FilteredBuilders  int                 `json:"filtered_builders"`
	SampleBuilders    []BuilderMatch      `json:"sample_builders"`
	CountryVariations []location.Key      `json:"country_variations"`
	Report            location.Report     `json:"report"`
	FirstBuilder      *location.Diagnosis `json:"first_builder,omitempty"`
	Timestamp         time.Time           `json:"timestamp"`
}

// RoutingResult summarizes one RouteLead call. Errors lists per-builder
// problems that did not abort routing.
type RoutingResult struct {
	LeadID             id.LeadID      `json:"lead_id"`
	AssignmentsCreated int            `json:"assignments_created"`
	NotificationsSent  int            `json:"notifications_sent"`
	MatchedBuilders    []id.BuilderID `json:"matched_builders"`
	Errors             []string       `json:"errors,omitempty"`
}

// RerouteSummary summarizes a RerouteStale pass.
type RerouteSummary struct {
	Checked  int `json:"checked"`
	Rerouted int `json:"rerouted"`
	Failed   int `json:"failed"`
}

// RoutingAnalytics aggregates routing outcomes across all leads.
type RoutingAnalytics struct {
	TotalLeads         int            `json:"total_leads"`
	RoutedLeads        int            `json:"routed_leads"`
	ActiveAssignments  int            `json:"active_assignments"`
	AverageMatchScore  int            `json:"average_match_score"`
	BuilderUtilization map[string]int `json:"builder_utilization"`
}
