package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"standsdir/internal/directory/models"
	"standsdir/internal/location"
	dErrors "standsdir/pkg/domain-errors"
	"standsdir/pkg/requestcontext"
)

// Resolve returns the active builders serving req, in store order. A limit of
// zero or less returns every match; the report always covers the full set.
func (s *Service) Resolve(ctx context.Context, req location.Request, limit int) (*models.Listing, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "directory.Resolve", trace.WithAttributes(
		attribute.String("location.country", req.Country),
		attribute.String("location.city", req.City),
	))
	defer span.End()

	builders, res, err := s.resolve(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		return nil, err
	}

	matches := toMatches(builders, res.Results)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	span.SetAttributes(
		attribute.Int("builders.total", res.Report.TotalInput),
		attribute.Int("builders.matched", res.Report.TotalMatched),
	)
	s.metrics.ObserveResolution(start, res.Report.TotalMatched, res.Report.ViaPrimary, res.Report.ViaServiceArea)
	s.logger.DebugContext(ctx, "builders resolved",
		"country", req.Country,
		"city", req.City,
		"total", res.Report.TotalInput,
		"matched", res.Report.TotalMatched,
		"request_id", requestcontext.RequestID(ctx),
	)

	return &models.Listing{Request: req, Builders: matches, Report: res.Report}, nil
}

// Debug resolves req and returns counts, alias keys, a small sample and a
// per-location diagnosis of the first builder. An empty country means
// DefaultDebugCountry.
func (s *Service) Debug(ctx context.Context, req location.Request) (*models.DebugReport, error) {
	if location.Normalize(req.Country) == "" {
		req.Country = DefaultDebugCountry
	}
	ctx, span := s.tracer.Start(ctx, "directory.Debug")
	defer span.End()

	builders, res, err := s.resolve(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "debug resolve failed")
		return nil, err
	}

	matches := toMatches(builders, res.Results)
	sample := matches[:min(debugSampleSize, len(matches))]

	report := &models.DebugReport{
		Request:           req,
		TotalBuilders:     len(builders),
		FilteredBuilders:  len(matches),
		SampleBuilders:    sample,
		CountryVariations: res.Report.AliasKeysUsed,
		Report:            res.Report,
		Timestamp:         requestcontext.Now(ctx),
	}
	if len(builders) > 0 {
		d := s.matcher.Explain(builders[0].Entity(), req)
		report.FirstBuilder = &d
		s.logger.InfoContext(ctx, "first builder filtering details",
			"builder_id", d.EntityID,
			"primary_country_match", d.Primary.CountryMatch,
			"primary_city_match", d.Primary.CityMatch,
			"service_areas", len(d.ServiceAreas),
			"matched", d.Matched,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return report, nil
}

func (s *Service) resolve(ctx context.Context, req location.Request) ([]*models.Builder, location.Resolution, error) {
	builders, err := s.builders.List(ctx)
	if err != nil {
		return nil, location.Resolution{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load builders")
	}
	return builders, s.matcher.Filter(models.Entities(builders), req), nil
}

// toMatches pairs match results with their builders. Entities are projected
// one-to-one from builders, so results are looked up by entity ID.
func toMatches(builders []*models.Builder, results []location.MatchResult) []models.BuilderMatch {
	byID := make(map[string]*models.Builder, len(builders))
	for _, b := range builders {
		byID[b.ID.String()] = b
	}

	out := make([]models.BuilderMatch, 0, len(results))
	for _, r := range results {
		b, ok := byID[r.Entity.ID]
		if !ok {
			continue
		}
		out = append(out, models.BuilderMatch{
			Builder:          b,
			MatchedVia:       r.MatchedVia,
			MatchedCity:      r.MatchedCity,
			ServiceAreaIndex: r.ServiceAreaIndex,
		})
	}
	return out
}
