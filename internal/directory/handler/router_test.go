package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standsdir/internal/directory/models"
	"standsdir/internal/directory/service"
	builderstore "standsdir/internal/directory/store/builder"
	leadstore "standsdir/internal/directory/store/lead"
	loadstore "standsdir/internal/directory/store/load"
	"standsdir/internal/location"
	rlmiddleware "standsdir/internal/ratelimit/middleware"
	rlmodels "standsdir/internal/ratelimit/models"
	"standsdir/internal/ratelimit/store/bucket"
	"standsdir/pkg/testutil"
)

func newDirectoryRouter(t *testing.T, builders []*models.Builder, opts ...Option) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bs := builderstore.NewInMemory()
	require.NoError(t, builderstore.Seed(context.Background(), bs, builders, time.Now()))

	svc, err := service.New(bs, leadstore.NewInMemory(), loadstore.NewInMemory(),
		location.NewMatcher(location.DefaultAliasTable()),
		service.WithLogger(logger))
	require.NoError(t, err)

	r := chi.NewRouter()
	New(svc, logger, adminToken, opts...).Register(r)
	return r
}

func TestRouter_ListingScenarios(t *testing.T) {
	builders := []*models.Builder{
		{CompanyName: "Gulf Stands", HeadquartersCountry: "United Arab Emirates", HeadquartersCity: "Dubai", Verified: true},
		{CompanyName: "Emirates Expo", HeadquartersCountry: "UAE", HeadquartersCity: "Abu Dhabi", Verified: true},
		{CompanyName: "Rhein Messebau", HeadquartersCountry: "Germany", HeadquartersCity: "Cologne",
			ServiceLocations: []location.ServiceArea{{Country: "UAE", City: "Dubai"}}, Verified: true},
		{CompanyName: "Closed Co", HeadquartersCountry: "UAE", HeadquartersCity: "Dubai", Status: "inactive"},
	}
	router := newDirectoryRouter(t, builders)

	list := func(t *testing.T, query string) *ListBuildersResponse {
		t.Helper()
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/builders?"+query))
		testutil.AssertStatus(t, rr, http.StatusOK)
		return testutil.UnmarshalResponse[ListBuildersResponse](t, rr)
	}
	names := func(resp *ListBuildersResponse) []string {
		out := make([]string, 0, len(resp.Builders))
		for _, b := range resp.Builders {
			out = append(out, b.CompanyName)
		}
		return out
	}

	testutil.When(t, "listing by alias country", func(t *testing.T) {
		resp := list(t, "country=uae")
		testutil.Then(t, "all active aliases and service areas match in store order", func(t *testing.T) {
			assert.Equal(t, []string{"Gulf Stands", "Emirates Expo", "Rhein Messebau"}, names(resp))
			assert.Equal(t, 1, resp.Report.SkippedInactive)
		})
	})

	testutil.When(t, "listing by country and city", func(t *testing.T) {
		resp := list(t, "country=United%20Arab%20Emirates&city=dubai")
		testutil.Then(t, "city must hold on the same location", func(t *testing.T) {
			assert.Equal(t, []string{"Gulf Stands", "Rhein Messebau"}, names(resp))
			assert.Equal(t, location.ViaServiceArea, resp.Builders[1].MatchedVia)
			assert.Equal(t, 0, resp.Builders[1].ServiceAreaIndex)
		})
	})

	testutil.When(t, "listing a country nobody serves", func(t *testing.T) {
		resp := list(t, "country=Japan")
		testutil.Then(t, "the list is empty", func(t *testing.T) {
			assert.NotNil(t, resp.Builders)
			assert.Empty(t, resp.Builders)
		})
	})
}

func TestRouter_LeadLifecycle(t *testing.T) {
	router := newDirectoryRouter(t, []*models.Builder{
		{CompanyName: "Berlin Stands", ContactEmail: "hello@berlin-stands.example",
			HeadquartersCountry: "Deutschland", HeadquartersCity: "Berlin", Verified: true, Rating: 4.7},
	})

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/leads", map[string]any{
		"company_name":  "Acme",
		"contact_email": "events@acme.example",
		"country":       "Germany",
		"city":          "Berlin",
	}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[SubmitLeadResponse](t, rr)
	assert.Equal(t, models.LeadStatusRouted, created.Status)
	assert.Equal(t, 1, created.Routing.AssignmentsCreated)
	assert.Equal(t, 1, created.Routing.NotificationsSent)

	rerouteReq := testutil.WithAdminToken(testutil.NewRequest(t, http.MethodPost, "/admin/leads/"+created.LeadID.String()+"/route"), adminToken)
	rr = testutil.DoRequest(router, rerouteReq)
	testutil.AssertStatus(t, rr, http.StatusOK)
	again := testutil.UnmarshalResponse[models.RoutingResult](t, rr)
	assert.Zero(t, again.AssignmentsCreated)

	analyticsReq := testutil.WithAdminToken(testutil.NewRequest(t, http.MethodGet, "/admin/routing/analytics"), adminToken)
	rr = testutil.DoRequest(router, analyticsReq)
	testutil.AssertStatus(t, rr, http.StatusOK)
	analytics := testutil.UnmarshalResponse[models.RoutingAnalytics](t, rr)
	assert.Equal(t, 1, analytics.TotalLeads)
	assert.Equal(t, 1, analytics.RoutedLeads)
	assert.Equal(t, 1, analytics.ActiveAssignments)
}

func TestRouter_LeadIntakeRateLimited(t *testing.T) {
	limiter := rlmiddleware.New(bucket.NewInMemoryBucketStore(), slog.New(slog.NewTextHandler(io.Discard, nil)),
		rlmiddleware.WithLimit(rlmodels.ClassLeadSubmit, rlmodels.Limit{Requests: 1, Window: time.Hour}),
	)
	router := newDirectoryRouter(t, nil, WithLeadMiddleware(limiter.RateLimit(rlmodels.ClassLeadSubmit)))

	submit := func() int {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/leads", map[string]any{
			"company_name":  "Acme",
			"contact_email": "events@acme.example",
			"country":       "Germany",
		})
		req.RemoteAddr = "203.0.113.9:51000"
		return testutil.DoRequest(router, req).Code
	}

	testutil.When(t, "one client submits twice inside the window", func(t *testing.T) {
		first, second := submit(), submit()
		testutil.Then(t, "the second submission is throttled", func(t *testing.T) {
			assert.Equal(t, http.StatusCreated, first)
			assert.Equal(t, http.StatusTooManyRequests, second)
		})
	})

	testutil.When(t, "the public listing has no limiter", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/builders?country=Germany"))
		testutil.Then(t, "it is served", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusOK)
		})
	})
}
