package notify

import (
	"context"
	"log/slog"
)

// LogPublisher records notifications in the structured log. It is the sink
// when no broker is configured and the fallback while the broker is down.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, n Notification) error {
	p.logger.InfoContext(ctx, "lead notification",
		"event", n.Event,
		"lead_id", n.LeadID.String(),
		"builder_id", n.BuilderID.String(),
		"builder_email", n.BuilderEmail,
		"match_score", n.MatchScore,
	)
	return nil
}
