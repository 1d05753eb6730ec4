package lead

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"standsdir/internal/directory/models"
	id "standsdir/pkg/domain"
	"standsdir/pkg/platform/sentinel"
)

type InMemoryLeadStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestInMemoryLeadStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryLeadStoreSuite))
}

func (s *InMemoryLeadStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryLeadStoreSuite) newLead() *models.Lead {
	l, err := models.NewLead(id.NewLeadID(), "Acme", "ops@acme.test", "Germany", "Berlin", 10000, s.now)
	s.Require().NoError(err)
	return l
}

func (s *InMemoryLeadStoreSuite) TestCreateAndFind() {
	l := s.newLead()
	s.Require().NoError(s.store.Create(s.ctx, l))
	s.ErrorIs(s.store.Create(s.ctx, l), sentinel.ErrConflict)

	found, err := s.store.FindByID(s.ctx, l.ID)
	s.Require().NoError(err)
	s.Equal(l.CompanyName, found.CompanyName)

	_, err = s.store.FindByID(s.ctx, id.NewLeadID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryLeadStoreSuite) TestUpdate() {
	l := s.newLead()
	s.ErrorIs(s.store.Update(s.ctx, l), sentinel.ErrNotFound)

	s.Require().NoError(s.store.Create(s.ctx, l))
	l.ApplyRouting([]models.Assignment{{BuilderID: id.NewBuilderID(), MatchScore: 70}}, s.now)
	s.Require().NoError(s.store.Update(s.ctx, l))

	// mutations after Update do not leak into the store
	l.Assignments[0].MatchScore = 1

	found, err := s.store.FindByID(s.ctx, l.ID)
	s.Require().NoError(err)
	s.Equal(models.LeadStatusRouted, found.Status)
	s.Equal(70, found.Assignments[0].MatchScore)
}

func (s *InMemoryLeadStoreSuite) TestListRerouteCandidates() {
	stale := s.newLead()
	stale.ApplyRouting([]models.Assignment{{BuilderID: id.NewBuilderID()}}, s.now.Add(-72*time.Hour))
	fresh := s.newLead()
	fresh.ApplyRouting([]models.Assignment{{BuilderID: id.NewBuilderID()}}, s.now.Add(-time.Hour))
	done := s.newLead()
	done.ApplyRouting(nil, s.now.Add(-72*time.Hour))
	done.Rerouted = true
	unrouted := s.newLead()

	for _, l := range []*models.Lead{stale, fresh, done, unrouted} {
		s.Require().NoError(s.store.Create(s.ctx, l))
	}

	got, err := s.store.ListRerouteCandidates(s.ctx, s.now.Add(-48*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(stale.ID, got[0].ID)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 4)
	s.Equal(stale.ID, all[0].ID)
}

func (s *InMemoryLeadStoreSuite) TestOpenLeadCounts() {
	shared := id.NewBuilderID()
	other := id.NewBuilderID()

	first := s.newLead()
	first.ApplyRouting([]models.Assignment{{BuilderID: shared}, {BuilderID: other}}, s.now)
	second := s.newLead()
	second.ApplyRouting([]models.Assignment{{BuilderID: shared}}, s.now)
	closed := s.newLead()
	closed.ApplyRouting([]models.Assignment{{BuilderID: shared}}, s.now)
	closed.Status = models.LeadStatusClosed

	for _, l := range []*models.Lead{first, second, closed} {
		s.Require().NoError(s.store.Create(s.ctx, l))
	}

	counts, err := s.store.OpenLeadCounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[id.BuilderID]int{shared: 2, other: 1}, counts)
}
