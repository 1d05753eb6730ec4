package notify

import (
	"context"
	"log/slog"

	"standsdir/internal/directory/metrics"
	"standsdir/pkg/platform/circuit"
)

// ResilientPublisher sends to a primary sink behind a circuit breaker and
// falls back to a secondary sink while the breaker is open or the primary
// fails. An error is returned only when both sinks fail.
type ResilientPublisher struct {
	primary     Publisher
	fallback    Publisher
	primaryName string
	breaker     *circuit.Breaker
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures a ResilientPublisher.
type Option func(*ResilientPublisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *ResilientPublisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *ResilientPublisher) {
		p.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(p *ResilientPublisher) {
		if b != nil {
			p.breaker = b
		}
	}
}

func NewResilientPublisher(primaryName string, primary, fallback Publisher, opts ...Option) *ResilientPublisher {
	p := &ResilientPublisher{
		primary:     primary,
		fallback:    fallback,
		primaryName: primaryName,
		breaker:     circuit.New(primaryName),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ResilientPublisher) Publish(ctx context.Context, n Notification) error {
	if p.breaker.Allow() {
		err := p.primary.Publish(ctx, n)
		if err == nil {
			_, change := p.breaker.RecordSuccess()
			if change.Closed {
				p.logger.InfoContext(ctx, "notification breaker closed", "sink", p.primaryName)
				p.metrics.SetBreakerOpen(false)
			}
			p.metrics.IncrementNotification(p.primaryName, "sent")
			return nil
		}

		p.metrics.IncrementNotification(p.primaryName, "failed")
		_, change := p.breaker.RecordFailure()
		if change.Opened {
			p.logger.WarnContext(ctx, "notification breaker opened", "sink", p.primaryName, "error", err)
			p.metrics.SetBreakerOpen(true)
		} else {
			p.logger.WarnContext(ctx, "notification publish failed, using fallback",
				"sink", p.primaryName,
				"lead_id", n.LeadID.String(),
				"error", err,
			)
		}
	}

	if err := p.fallback.Publish(ctx, n); err != nil {
		p.metrics.IncrementNotification("fallback", "failed")
		return err
	}
	p.metrics.IncrementNotification("fallback", "sent")
	return nil
}
