// Package leads holds lead intake and routing steps.
package leads

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

type TestContext interface {
	POST(path string, body any) error
	AdminPOST(path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	Remember(key, value string)
	Recall(key string) string
}

func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &leadSteps{tc: tc}
	ctx.Step(`^I submit a lead from "([^"]*)" for "([^"]*)", "([^"]*)"$`, steps.submitLead)
	ctx.Step(`^I submit a lead without a contact email$`, steps.submitLeadWithoutEmail)
	ctx.Step(`^I submit (\d+) leads for "([^"]*)"$`, steps.submitManyLeads)
	ctx.Step(`^the lead should have at least (\d+) assignments?$`, steps.atLeastAssignments)
	ctx.Step(`^I route the lead again as an operator$`, steps.routeAgain)
}

type leadSteps struct {
	tc TestContext
}

func (s *leadSteps) submitLead(ctx context.Context, company, city, country string) error {
	if err := s.tc.POST("/leads", map[string]any{
		"company_name":    company,
		"contact_email":   "events@example.com",
		"trade_show_name": "E2E Expo",
		"country":         country,
		"city":            city,
		"estimated_value": 25000,
	}); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() == 201 {
		leadID, err := s.tc.GetResponseField("lead_id")
		if err != nil {
			return err
		}
		s.tc.Remember("lead_id", fmt.Sprint(leadID))
	}
	return nil
}

func (s *leadSteps) submitLeadWithoutEmail(ctx context.Context) error {
	return s.tc.POST("/leads", map[string]any{
		"company_name": "No Email GmbH",
		"country":      "Germany",
	})
}

func (s *leadSteps) submitManyLeads(ctx context.Context, n int, country string) error {
	for i := 0; i < n; i++ {
		if err := s.tc.POST("/leads", map[string]any{
			"company_name":  fmt.Sprintf("Burst %d", i),
			"contact_email": "burst@example.com",
			"country":       country,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *leadSteps) atLeastAssignments(ctx context.Context, n int) error {
	v, err := s.tc.GetResponseField("assignments")
	if err != nil {
		return err
	}
	got, ok := v.(float64)
	if !ok || int(got) < n {
		return fmt.Errorf("expected at least %d assignments, got %v", n, v)
	}
	return nil
}

func (s *leadSteps) routeAgain(ctx context.Context) error {
	leadID := s.tc.Recall("lead_id")
	if leadID == "" {
		return fmt.Errorf("no lead submitted in this scenario")
	}
	return s.tc.AdminPOST("/admin/leads/"+leadID+"/route", nil)
}
