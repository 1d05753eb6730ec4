package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"standsdir/internal/directory/metrics"
	"standsdir/internal/directory/models"
	"standsdir/internal/directory/notify"
	"standsdir/internal/location"
	id "standsdir/pkg/domain"
)

type BuilderStore interface {
	List(ctx context.Context) ([]*models.Builder, error)
	FindByID(ctx context.Context, builderID id.BuilderID) (*models.Builder, error)
}

type LeadStore interface {
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	FindByID(ctx context.Context, leadID id.LeadID) (*models.Lead, error)
	List(ctx context.Context) ([]*models.Lead, error)
	ListRerouteCandidates(ctx context.Context, cutoff time.Time) ([]*models.Lead, error)
	OpenLeadCounts(ctx context.Context) (map[id.BuilderID]int, error)
}

type LoadStore interface {
	Increment(ctx context.Context, builderID id.BuilderID, delta int) (int, error)
	Counts(ctx context.Context, builderIDs []id.BuilderID) (map[id.BuilderID]int, error)
	Set(ctx context.Context, counts map[id.BuilderID]int) error
}

type Publisher interface {
	Publish(ctx context.Context, n notify.Notification) error
}

const (
	// DefaultMaxAssignments caps how many builders receive one lead.
	DefaultMaxAssignments = 8
	// DefaultRerouteAfter is how long a routed lead waits before a second pass.
	DefaultRerouteAfter = 48 * time.Hour
	// DefaultDebugCountry is used by Debug when no country is given.
	DefaultDebugCountry = "Germany"

	debugSampleSize    = 5
	defaultPageWorkers = 8
)

// Service resolves builders for locations and routes leads to them.
type Service struct {
	builders  BuilderStore
	leads     LeadStore
	load      LoadStore
	matcher   *location.Matcher
	publisher Publisher
	catalog   []models.PageLocation

	maxAssignments int
	pageWorkers    int

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithCatalog replaces the default location catalog used for global pages.
func WithCatalog(catalog []models.PageLocation) Option {
	return func(s *Service) {
		if len(catalog) > 0 {
			s.catalog = catalog
		}
	}
}

func WithMaxAssignments(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAssignments = n
		}
	}
}

// WithPageWorkers bounds the goroutines evaluating global pages.
func WithPageWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageWorkers = n
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New constructs a Service. Builders, leads, load and matcher are required.
func New(builders BuilderStore, leads LeadStore, load LoadStore, matcher *location.Matcher, opts ...Option) (*Service, error) {
	if builders == nil {
		return nil, errors.New("builder store is required")
	}
	if leads == nil {
		return nil, errors.New("lead store is required")
	}
	if load == nil {
		return nil, errors.New("load store is required")
	}
	if matcher == nil {
		return nil, errors.New("location matcher is required")
	}

	s := &Service{
		builders:       builders,
		leads:          leads,
		load:           load,
		matcher:        matcher,
		catalog:        models.DefaultCatalog(),
		maxAssignments: DefaultMaxAssignments,
		pageWorkers:    defaultPageWorkers,
		logger:         slog.Default(),
		tracer:         otel.Tracer("standsdir/internal/directory/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher == nil {
		s.publisher = notify.NewLogPublisher(s.logger)
	}
	return s, nil
}
