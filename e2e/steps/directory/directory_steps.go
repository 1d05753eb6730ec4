// Package directory holds listing and diagnostics steps.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/cucumber/godog"
)

type TestContext interface {
	GET(path string, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &directorySteps{tc: tc}
	ctx.Step(`^I list builders for country "([^"]*)"$`, steps.listCountry)
	ctx.Step(`^I list builders for country "([^"]*)" and city "([^"]*)"$`, steps.listCountryCity)
	ctx.Step(`^the listing should contain exactly "([^"]*)"$`, steps.listingShouldContainExactly)
	ctx.Step(`^the listing should be empty$`, steps.listingShouldBeEmpty)
	ctx.Step(`^builder "([^"]*)" should be matched via "([^"]*)"$`, steps.matchedVia)
	ctx.Step(`^no builder should expose a contact email$`, steps.noContactEmail)
}

type directorySteps struct {
	tc      TestContext
	listing *listing
}

type listing struct {
	Total    int              `json:"total"`
	Builders []map[string]any `json:"builders"`
}

func (s *directorySteps) listCountry(ctx context.Context, country string) error {
	return s.list(url.Values{"country": {country}})
}

func (s *directorySteps) listCountryCity(ctx context.Context, country, city string) error {
	return s.list(url.Values{"country": {country}, "city": {city}})
}

func (s *directorySteps) list(q url.Values) error {
	if err := s.tc.GET("/builders?"+q.Encode(), nil); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("list builders: status %d: %s", status, s.tc.GetLastResponseBody())
	}
	var l listing
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &l); err != nil {
		return fmt.Errorf("decode listing: %w", err)
	}
	s.listing = &l
	return nil
}

func (s *directorySteps) names() []string {
	out := make([]string, 0, len(s.listing.Builders))
	for _, b := range s.listing.Builders {
		out = append(out, fmt.Sprint(b["company_name"]))
	}
	return out
}

func (s *directorySteps) listingShouldContainExactly(ctx context.Context, csv string) error {
	var want []string
	for _, n := range strings.Split(csv, ",") {
		want = append(want, strings.TrimSpace(n))
	}
	if got := s.names(); !slices.Equal(got, want) {
		return fmt.Errorf("expected builders %v, got %v", want, got)
	}
	return nil
}

func (s *directorySteps) listingShouldBeEmpty(ctx context.Context) error {
	if len(s.listing.Builders) != 0 {
		return fmt.Errorf("expected no builders, got %v", s.names())
	}
	return nil
}

func (s *directorySteps) matchedVia(ctx context.Context, name, via string) error {
	for _, b := range s.listing.Builders {
		if b["company_name"] == name {
			if got := fmt.Sprint(b["matched_via"]); got != via {
				return fmt.Errorf("%s matched via %q, want %q", name, got, via)
			}
			return nil
		}
	}
	return fmt.Errorf("builder %s not in listing", name)
}

func (s *directorySteps) noContactEmail(ctx context.Context) error {
	for _, b := range s.listing.Builders {
		if _, ok := b["contact_email"]; ok {
			return fmt.Errorf("builder %v exposes contact_email", b["company_name"])
		}
	}
	return nil
}
