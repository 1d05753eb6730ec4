package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"standsdir/internal/directory/models"
	dErrors "standsdir/pkg/domain-errors"
)

// GlobalPages counts active builders for every catalog location of the given
// kind. Builders are fetched once; locations are evaluated concurrently over
// the shared read-only snapshot. Output follows catalog order.
func (s *Service) GlobalPages(ctx context.Context, kind models.PageKind) ([]models.GlobalPage, error) {
	if !kind.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "type must be country or city")
	}
	ctx, span := s.tracer.Start(ctx, "directory.GlobalPages")
	defer span.End()
	span.SetAttributes(attribute.String("pages.kind", string(kind)))

	builders, err := s.builders.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list builders failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load builders")
	}
	entities := models.Entities(builders)

	locations := models.Pages(s.catalog, kind)
	pages := make([]models.GlobalPage, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.pageWorkers)
	for i, loc := range locations {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.matcher.Filter(entities, loc.Request())
			pages[i] = models.GlobalPage{
				Kind:         kind,
				Country:      loc.Country,
				City:         loc.City,
				Slug:         loc.Slug(),
				BuilderCount: res.Report.TotalMatched,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "global page generation cancelled")
	}

	span.SetAttributes(attribute.Int("pages.count", len(pages)))
	return pages, nil
}
