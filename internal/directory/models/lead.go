package models

import (
	"net/mail"
	"strings"
	"time"

	"standsdir/internal/location"
	id "standsdir/pkg/domain"
	dErrors "standsdir/pkg/domain-errors"
)

// LeadStatus tracks a lead through routing.
type LeadStatus string

const (
	LeadStatusNew    LeadStatus = "new"
	LeadStatusRouted LeadStatus = "routed"
	LeadStatusViewed LeadStatus = "viewed"
	LeadStatusQuoted LeadStatus = "quoted"
	LeadStatusClosed LeadStatus = "closed"
)

// IsOpen reports whether a lead in this status still occupies builder capacity.
func (s LeadStatus) IsOpen() bool {
	switch s {
	case LeadStatusNew, LeadStatusRouted, LeadStatusViewed, LeadStatusQuoted:
		return true
	default:
		return false
	}
}

// Assignment links a lead to one builder it was routed to.
type Assignment struct {
	BuilderID        id.BuilderID `json:"builder_id"`
	BuilderEmail     string       `json:"builder_email,omitempty"`
	MatchScore       int          `json:"match_score"`
	MatchedVia       location.Via `json:"matched_via"`
	MatchedCity      bool         `json:"matched_city"`
	AssignedAt       time.Time    `json:"assigned_at"`
	NotificationSent bool         `json:"notification_sent"`
}

// Lead is a client's quote request for an exhibition stand.
//
// Invariants:
//   - CompanyName and Country are non-empty
//   - ContactEmail is a valid address
//   - EstimatedValue is not negative
//   - Rerouted is set at most once and never cleared
type Lead struct {
	ID             id.LeadID    `json:"id"`
	CompanyName    string       `json:"company_name"`
	ContactEmail   string       `json:"contact_email"`
	TradeShowName  string       `json:"trade_show_name,omitempty"`
	Country        string       `json:"country"`
	City           string       `json:"city,omitempty"`
	EstimatedValue float64      `json:"estimated_value,omitempty"`
	StandSize      string       `json:"stand_size,omitempty"`
	EventDate      string       `json:"event_date,omitempty"`
	Status         LeadStatus   `json:"status"`
	Assignments    []Assignment `json:"assignments,omitempty"`
	RoutedAt       *time.Time   `json:"routed_at,omitempty"`
	Rerouted       bool         `json:"rerouted"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NewLead validates the invariants and returns a lead in status "new".
func NewLead(leadID id.LeadID, companyName, contactEmail, country, city string, estimatedValue float64, now time.Time) (*Lead, error) {
	companyName = strings.TrimSpace(companyName)
	country = strings.TrimSpace(country)
	if companyName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company name cannot be empty")
	}
	if country == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "country cannot be empty")
	}
	if _, err := mail.ParseAddress(contactEmail); err != nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact email is invalid")
	}
	if estimatedValue < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "estimated value cannot be negative")
	}
	return &Lead{
		ID:             leadID,
		CompanyName:    companyName,
		ContactEmail:   contactEmail,
		Country:        country,
		City:           strings.TrimSpace(city),
		EstimatedValue: estimatedValue,
		Status:         LeadStatusNew,
		CreatedAt:      now,
	}, nil
}

// Request returns the location query for this lead.
func (l *Lead) Request() location.Request {
	return location.Request{Country: l.Country, City: l.City}
}

// AssignedTo reports whether the lead already holds an assignment for builderID.
func (l *Lead) AssignedTo(builderID id.BuilderID) bool {
	for _, a := range l.Assignments {
		if a.BuilderID == builderID {
			return true
		}
	}
	return false
}

// ApplyRouting appends assignments and marks the lead routed.
func (l *Lead) ApplyRouting(assignments []Assignment, now time.Time) {
	l.Assignments = append(l.Assignments, assignments...)
	l.Status = LeadStatusRouted
	routedAt := now
	l.RoutedAt = &routedAt
}

// CanReroute checks whether the lead is due for a second routing pass.
func (l *Lead) CanReroute(cutoff time.Time) bool {
	if l.Status != LeadStatusRouted || l.Rerouted {
		return false
	}
	since := l.CreatedAt
	if l.RoutedAt != nil {
		since = *l.RoutedAt
	}
	return since.Before(cutoff)
}

// AverageMatchScore is the mean score over the lead's assignments, 0 when none.
func (l *Lead) AverageMatchScore() float64 {
	if len(l.Assignments) == 0 {
		return 0
	}
	total := 0
	for _, a := range l.Assignments {
		total += a.MatchScore
	}
	return float64(total) / float64(len(l.Assignments))
}
