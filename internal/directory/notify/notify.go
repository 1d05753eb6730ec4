// Package notify delivers lead assignment notifications to builders.
package notify

import (
	"context"
	"time"

	id "standsdir/pkg/domain"
)

// EventLeadAssigned is the event type carried by every notification.
const EventLeadAssigned = "lead.assigned"

// Notification tells one builder about a lead routed to it.
type Notification struct {
	Event         string       `json:"event"`
	LeadID        id.LeadID    `json:"lead_id"`
	BuilderID     id.BuilderID `json:"builder_id"`
	BuilderName   string       `json:"builder_name"`
	BuilderEmail  string       `json:"builder_email"`
	ClientCompany string       `json:"client_company"`
	ProjectName   string       `json:"project_name"`
	Location      string       `json:"location"`
	Budget        float64      `json:"budget,omitempty"`
	StandSize     string       `json:"stand_size,omitempty"`
	EventDate     string       `json:"event_date,omitempty"`
	MatchScore    int          `json:"match_score"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// Publisher sends a notification. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}
