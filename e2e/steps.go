package e2e

import (
	"github.com/cucumber/godog"

	"standsdir/e2e/steps/common"
	"standsdir/e2e/steps/directory"
	"standsdir/e2e/steps/leads"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	directory.RegisterSteps(ctx, tc)
	leads.RegisterSteps(ctx, tc)
}
