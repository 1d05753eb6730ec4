package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module.
// All methods are safe to call on a nil receiver.
type Metrics struct {
	// Resolutions by outcome: "matched" or "empty"
	Resolutions *prometheus.CounterVec
	// Matches by source: "primary" or "service-area"
	MatchesVia       *prometheus.CounterVec
	ResolveDuration  prometheus.Histogram
	ResolvedBuilders prometheus.Histogram

	LeadsRouted      prometheus.Counter
	AssignmentsTotal prometheus.Counter
	MatchScore       prometheus.Histogram
	RouteDuration    prometheus.Histogram

	// Notifications by sink and outcome
	Notifications *prometheus.CounterVec
	BreakerOpen   prometheus.Gauge
}

// New registers the directory metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "standsdir_resolutions_total",
			Help: "Total location resolutions by outcome",
		}, []string{"outcome"}),
		MatchesVia: f.NewCounterVec(prometheus.CounterOpts{
			Name: "standsdir_matches_total",
			Help: "Matched builders by the location record that produced the match",
		}, []string{"via"}),
		ResolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "standsdir_resolve_duration_seconds",
			Help:    "Duration of a resolution including the builder fetch",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ResolvedBuilders: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "standsdir_resolved_builders",
			Help:    "Number of builders returned per resolution",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		LeadsRouted: f.NewCounter(prometheus.CounterOpts{
			Name: "standsdir_leads_routed_total",
			Help: "Total leads routed to at least one builder",
		}),
		AssignmentsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "standsdir_lead_assignments_total",
			Help: "Total lead-to-builder assignments created",
		}),
		MatchScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "standsdir_lead_match_score",
			Help:    "Distribution of assignment match scores",
			Buckets: []float64{60, 70, 80, 90, 100},
		}),
		RouteDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "standsdir_route_lead_duration_seconds",
			Help:    "Duration of RouteLead including notifications",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "standsdir_notifications_total",
			Help: "Lead notifications by sink and outcome",
		}, []string{"sink", "outcome"}),
		BreakerOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "standsdir_notification_breaker_open",
			Help: "1 while the notification circuit breaker is open",
		}),
	}
}

// ObserveResolution records one resolution and how its matches were produced.
func (m *Metrics) ObserveResolution(start time.Time, matched, viaPrimary, viaServiceArea int) {
	if m == nil {
		return
	}
	m.ResolveDuration.Observe(time.Since(start).Seconds())
	m.ResolvedBuilders.Observe(float64(matched))
	outcome := "matched"
	if matched == 0 {
		outcome = "empty"
	}
	m.Resolutions.WithLabelValues(outcome).Inc()
	m.MatchesVia.WithLabelValues("primary").Add(float64(viaPrimary))
	m.MatchesVia.WithLabelValues("service-area").Add(float64(viaServiceArea))
}

// ObserveRouting records a completed RouteLead call.
func (m *Metrics) ObserveRouting(start time.Time, scores []int) {
	if m == nil {
		return
	}
	m.RouteDuration.Observe(time.Since(start).Seconds())
	if len(scores) == 0 {
		return
	}
	m.LeadsRouted.Inc()
	m.AssignmentsTotal.Add(float64(len(scores)))
	for _, s := range scores {
		m.MatchScore.Observe(float64(s))
	}
}

// IncrementNotification records a notification attempt.
func (m *Metrics) IncrementNotification(sink, outcome string) {
	if m != nil {
		m.Notifications.WithLabelValues(sink, outcome).Inc()
	}
}

// SetBreakerOpen mirrors the notification breaker state.
func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerOpen.Set(1)
		return
	}
	m.BreakerOpen.Set(0)
}
