package e2e

import (
	"github.com/cucumber/godog"

	"facilities/e2e/steps/reload"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	reload.RegisterSteps(ctx, tc)
}
