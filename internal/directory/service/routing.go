package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"standsdir/internal/directory/models"
	"standsdir/internal/directory/notify"
	id "standsdir/pkg/domain"
	dErrors "standsdir/pkg/domain-errors"
	"standsdir/pkg/platform/sentinel"
	"standsdir/pkg/requestcontext"
)

// SubmitLeadCommand carries a new lead from the HTTP layer.
type SubmitLeadCommand struct {
	CompanyName    string
	ContactEmail   string
	TradeShowName  string
	Country        string
	City           string
	EstimatedValue float64
	StandSize      string
	EventDate      string
}

// SubmitLead stores a new lead and routes it immediately.
func (s *Service) SubmitLead(ctx context.Context, cmd SubmitLeadCommand) (*models.Lead, *models.RoutingResult, error) {
	lead, err := models.NewLead(id.NewLeadID(), cmd.CompanyName, cmd.ContactEmail, cmd.Country, cmd.City, cmd.EstimatedValue, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, nil, err
	}
	lead.TradeShowName = cmd.TradeShowName
	lead.StandSize = cmd.StandSize
	lead.EventDate = cmd.EventDate

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save lead")
	}
	s.logger.InfoContext(ctx, "lead submitted",
		"lead_id", lead.ID.String(),
		"country", lead.Country,
		"city", lead.City,
		"request_id", requestcontext.RequestID(ctx),
	)

	result, err := s.RouteLead(ctx, lead.ID)
	if err != nil {
		return nil, nil, err
	}
	routed, err := s.leads.FindByID(ctx, lead.ID)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reload lead")
	}
	return routed, result, nil
}

type candidate struct {
	match models.BuilderMatch
	load  int
}

// RouteLead assigns the lead to up to maxAssignments qualified builders that
// do not already hold it, persists the assignments and notifies each builder.
// Qualified means: matched by the location matcher, verified, and below the
// open-lead capacity of its plan. Notification failures are reported in the
// result, not returned as errors.
func (s *Service) RouteLead(ctx context.Context, leadID id.LeadID) (*models.RoutingResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "directory.RouteLead")
	defer span.End()
	span.SetAttributes(attribute.String("lead.id", leadID.String()))

	lead, err := s.leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "lead not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load lead")
	}

	selected, err := s.selectBuilders(ctx, lead)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select builders failed")
		return nil, err
	}

	result := &models.RoutingResult{LeadID: lead.ID, MatchedBuilders: []id.BuilderID{}}
	if len(selected) == 0 {
		result.Errors = []string{"no qualified builders in the area"}
		s.logger.InfoContext(ctx, "no qualified builders for lead",
			"lead_id", lead.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		s.metrics.ObserveRouting(start, nil)
		return result, nil
	}

	now := requestcontext.Now(ctx)
	assignments := make([]models.Assignment, 0, len(selected))
	scores := make([]int, 0, len(selected))
	for _, c := range selected {
		score := MatchScore(c.match, lead, c.load)
		assignments = append(assignments, models.Assignment{
			BuilderID:    c.match.Builder.ID,
			BuilderEmail: c.match.Builder.ContactEmail,
			MatchScore:   score,
			MatchedVia:   c.match.MatchedVia,
			MatchedCity:  c.match.MatchedCity,
			AssignedAt:   now,
		})
		scores = append(scores, score)
		result.MatchedBuilders = append(result.MatchedBuilders, c.match.Builder.ID)
	}

	firstNew := len(lead.Assignments)
	lead.ApplyRouting(assignments, now)
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save lead assignments")
	}
	result.AssignmentsCreated = len(assignments)

	for _, c := range selected {
		if _, err := s.load.Increment(ctx, c.match.Builder.ID, 1); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("update load for builder %s: %v", c.match.Builder.ID, err))
		}
	}

	for i, c := range selected {
		if err := s.notify(ctx, lead, c.match.Builder, scores[i]); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		lead.Assignments[firstNew+i].NotificationSent = true
		result.NotificationsSent++
	}
	if result.NotificationsSent > 0 {
		if err := s.leads.Update(ctx, lead); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record notification status: %v", err))
		}
	}

	s.metrics.ObserveRouting(start, scores)
	span.SetAttributes(
		attribute.Int("lead.assignments", result.AssignmentsCreated),
		attribute.Int("lead.notifications", result.NotificationsSent),
	)
	s.logger.InfoContext(ctx, "lead routed",
		"lead_id", lead.ID.String(),
		"assignments", result.AssignmentsCreated,
		"notifications_sent", result.NotificationsSent,
		"errors", len(result.Errors),
		"request_id", requestcontext.RequestID(ctx),
	)
	return result, nil
}

func (s *Service) selectBuilders(ctx context.Context, lead *models.Lead) ([]candidate, error) {
	builders, res, err := s.resolve(ctx, lead.Request())
	if err != nil {
		return nil, err
	}
	matches := toMatches(builders, res.Results)

	eligible := make([]models.BuilderMatch, 0, len(matches))
	ids := make([]id.BuilderID, 0, len(matches))
	for _, m := range matches {
		if !m.Builder.Verified || lead.AssignedTo(m.Builder.ID) {
			continue
		}
		eligible = append(eligible, m)
		ids = append(ids, m.Builder.ID)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	loads, err := s.load.Counts(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load builder capacity")
	}

	candidates := make([]candidate, 0, len(eligible))
	for _, m := range eligible {
		n := loads[m.Builder.ID]
		if n >= m.Builder.Plan.Capacity() {
			continue
		}
		candidates = append(candidates, candidate{match: m, load: n})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].match.Builder, candidates[j].match.Builder
		if a.Premium != b.Premium {
			return a.Premium
		}
		return a.Rating > b.Rating
	})

	if len(candidates) > s.maxAssignments {
		candidates = candidates[:s.maxAssignments]
	}
	return candidates, nil
}

// MatchScore rates how well a builder fits a lead on a 0-100 scale.
//
//	base 60
//	+30 city matched, else +20 country only
//	+10 verified, +10 premium, +5 rating >= 4.5
//	+10 no open leads, +5 at most two
//	+10 budget within 0.8-1.2 of the builder's average project, +5 within 0.6-1.5
func MatchScore(m models.BuilderMatch, lead *models.Lead, openLeads int) int {
	b := m.Builder
	score := 60

	if m.MatchedCity {
		score += 30
	} else {
		score += 20
	}
	if b.Verified {
		score += 10
	}
	if b.Premium {
		score += 10
	}
	if b.Rating >= 4.5 {
		score += 5
	}

	switch {
	case openLeads == 0:
		score += 10
	case openLeads <= 2:
		score += 5
	}

	if lead.EstimatedValue > 0 && b.AverageProject > 0 {
		ratio := lead.EstimatedValue / b.AverageProject
		switch {
		case ratio >= 0.8 && ratio <= 1.2:
			score += 10
		case ratio >= 0.6 && ratio <= 1.5:
			score += 5
		}
	}

	return min(100, max(0, score))
}

func (s *Service) notify(ctx context.Context, lead *models.Lead, b *models.Builder, score int) error {
	if b.ContactEmail == "" {
		return fmt.Errorf("no email found for builder %s", b.ID)
	}
	project := lead.TradeShowName
	if project == "" {
		project = "Exhibition Project"
	}
	where := lead.Country
	if lead.City != "" {
		where = lead.City + ", " + lead.Country
	}

	n := notify.Notification{
		Event:         notify.EventLeadAssigned,
		LeadID:        lead.ID,
		BuilderID:     b.ID,
		BuilderName:   b.CompanyName,
		BuilderEmail:  b.ContactEmail,
		ClientCompany: lead.CompanyName,
		ProjectName:   project,
		Location:      where,
		Budget:        lead.EstimatedValue,
		StandSize:     lead.StandSize,
		EventDate:     lead.EventDate,
		MatchScore:    score,
		OccurredAt:    requestcontext.Now(ctx),
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		return fmt.Errorf("failed to notify %s: %w", b.ContactEmail, err)
	}
	return nil
}

// RerouteStale gives routed leads older than olderThan one more routing pass
// to additional builders. Each lead is marked before routing so it is never
// rerouted twice. Per-lead failures are logged and counted.
func (s *Service) RerouteStale(ctx context.Context, olderThan time.Duration) (*models.RerouteSummary, error) {
	if olderThan <= 0 {
		olderThan = DefaultRerouteAfter
	}
	cutoff := requestcontext.Now(ctx).Add(-olderThan)

	stale, err := s.leads.ListRerouteCandidates(ctx, cutoff)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list stale leads")
	}

	summary := &models.RerouteSummary{Checked: len(stale)}
	for _, lead := range stale {
		if err := ctx.Err(); err != nil {
			return summary, dErrors.Wrap(err, dErrors.CodeTimeout, "reroute cancelled")
		}
		lead.Rerouted = true
		if err := s.leads.Update(ctx, lead); err != nil {
			summary.Failed++
			s.logger.ErrorContext(ctx, "failed to mark lead rerouted", "lead_id", lead.ID.String(), "error", err)
			continue
		}
		if _, err := s.RouteLead(ctx, lead.ID); err != nil {
			summary.Failed++
			s.logger.ErrorContext(ctx, "failed to reroute lead", "lead_id", lead.ID.String(), "error", err)
			continue
		}
		summary.Rerouted++
	}

	s.logger.InfoContext(ctx, "stale leads rerouted",
		"checked", summary.Checked,
		"rerouted", summary.Rerouted,
		"failed", summary.Failed,
	)
	return summary, nil
}

// Analytics aggregates lead routing across all leads and builders.
func (s *Service) Analytics(ctx context.Context) (*models.RoutingAnalytics, error) {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list leads")
	}
	builders, err := s.builders.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load builders")
	}

	out := &models.RoutingAnalytics{
		TotalLeads:         len(leads),
		BuilderUtilization: make(map[string]int, len(builders)),
	}
	var scoreSum float64
	for _, l := range leads {
		if len(l.Assignments) == 0 {
			continue
		}
		out.RoutedLeads++
		out.ActiveAssignments += len(l.Assignments)
		scoreSum += l.AverageMatchScore()
	}
	if out.RoutedLeads > 0 {
		out.AverageMatchScore = int(math.Round(scoreSum / float64(out.RoutedLeads)))
	}

	ids := make([]id.BuilderID, 0, len(builders))
	for _, b := range builders {
		ids = append(ids, b.ID)
	}
	loads, err := s.load.Counts(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load builder utilization")
	}
	for builderID, n := range loads {
		out.BuilderUtilization[builderID.String()] = n
	}
	return out, nil
}

// SyncLoad rebuilds the builder load counters from the lead store.
func (s *Service) SyncLoad(ctx context.Context) error {
	counts, err := s.leads.OpenLeadCounts(ctx)
	if err != nil {
		return fmt.Errorf("count open leads: %w", err)
	}
	builders, err := s.builders.List(ctx)
	if err != nil {
		return fmt.Errorf("list builders: %w", err)
	}
	for _, b := range builders {
		if _, ok := counts[b.ID]; !ok {
			counts[b.ID] = 0
		}
	}
	if err := s.load.Set(ctx, counts); err != nil {
		return fmt.Errorf("set builder loads: %w", err)
	}
	s.logger.InfoContext(ctx, "builder load synced", "builders", len(counts))
	return nil
}

// RunRerouter calls RerouteStale every interval until ctx is cancelled.
func (s *Service) RunRerouter(ctx context.Context, interval, olderThan time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RerouteStale(ctx, olderThan); err != nil {
				s.logger.ErrorContext(ctx, "reroute pass failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
