package reload

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	POSTRaw(path, body string) error
	GET(path string) error
	LastStatus() int
	DecodeResponse(v any) error
	FacilityID(prefix, name string) string
}

const (
	pushPath = "/internal/management/reload/facilities"
	lastPath = "/internal/management/reload/last"
)

// RegisterSteps registers reload-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &reloadSteps{tc: tc}

	ctx.Step(`^I push facilities "([^"]*)"$`, steps.pushFacilities)
	ctx.Step(`^I push an empty facility list$`, steps.pushEmpty)
	ctx.Step(`^I push the raw body "([^"]*)"$`, steps.pushRaw)
	ctx.Step(`^I request the last reload report$`, steps.requestLast)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^facility "([^"]*)" should be reported as (created|updated|missing|removed|revived)$`, steps.facilityReportedAs)
	ctx.Step(`^there should be a problem "([^"]*)" for raw id "([^"]*)"$`, steps.problemForRawID)
	ctx.Step(`^the report should match the previous push$`, steps.reportMatchesPrevious)
}

type report struct {
	ReloadID          string    `json:"reloadId"`
	FacilitiesCreated []string  `json:"facilitiesCreated"`
	FacilitiesUpdated []string  `json:"facilitiesUpdated"`
	FacilitiesMissing []string  `json:"facilitiesMissing"`
	FacilitiesRemoved []string  `json:"facilitiesRemoved"`
	FacilitiesRevived []string  `json:"facilitiesRevived"`
	Problems          []problem `json:"problems"`
}

type problem struct {
	FacilityID  string `json:"facilityId"`
	Description string `json:"description"`
}

type reloadSteps struct {
	tc         TestContext
	lastPushID string
}

// expand turns "vha:A" into a namespaced facility id.
func (s *reloadSteps) expand(ref string) string {
	prefix, name, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		return ref
	}
	return s.tc.FacilityID(prefix, name)
}

func (s *reloadSteps) pushFacilities(ctx context.Context, refs string) error {
	var body []map[string]any
	for _, ref := range strings.Split(refs, ",") {
		body = append(body, map[string]any{
			"id":   s.expand(ref),
			"type": "va_facilities",
			"attributes": map[string]any{
				"address": map[string]any{
					"physical": map[string]any{"state": "FL", "zip": "32803-1234"},
				},
			},
		})
	}
	return s.push(body)
}

func (s *reloadSteps) pushEmpty(ctx context.Context) error {
	return s.push([]map[string]any{})
}

func (s *reloadSteps) push(body any) error {
	if err := s.tc.POST(pushPath, body); err != nil {
		return err
	}
	var r report
	if s.tc.LastStatus() == 200 {
		if err := s.tc.DecodeResponse(&r); err != nil {
			return err
		}
		s.lastPushID = r.ReloadID
	}
	return nil
}

func (s *reloadSteps) pushRaw(ctx context.Context, body string) error {
	return s.tc.POSTRaw(pushPath, body)
}

func (s *reloadSteps) requestLast(ctx context.Context) error {
	return s.tc.GET(lastPath)
}

func (s *reloadSteps) statusShouldBe(ctx context.Context, status int) error {
	if got := s.tc.LastStatus(); got != status {
		return fmt.Errorf("expected status %d, got %d", status, got)
	}
	return nil
}

func (s *reloadSteps) facilityReportedAs(ctx context.Context, ref, outcome string) error {
	var r report
	if err := s.tc.DecodeResponse(&r); err != nil {
		return err
	}
	lists := map[string][]string{
		"created": r.FacilitiesCreated,
		"updated": r.FacilitiesUpdated,
		"missing": r.FacilitiesMissing,
		"removed": r.FacilitiesRemoved,
		"revived": r.FacilitiesRevived,
	}
	facilityID := s.expand(ref)
	if !slices.Contains(lists[outcome], facilityID) {
		return fmt.Errorf("expected %s in %s, got %v", facilityID, outcome, lists[outcome])
	}
	return nil
}

func (s *reloadSteps) problemForRawID(ctx context.Context, description, rawID string) error {
	var r report
	if err := s.tc.DecodeResponse(&r); err != nil {
		return err
	}
	want := problem{FacilityID: rawID, Description: description}
	if !slices.Contains(r.Problems, want) {
		return fmt.Errorf("expected problem %+v, got %+v", want, r.Problems)
	}
	return nil
}

func (s *reloadSteps) reportMatchesPrevious(ctx context.Context) error {
	var r report
	if err := s.tc.DecodeResponse(&r); err != nil {
		return err
	}
	if r.ReloadID != s.lastPushID {
		return fmt.Errorf("expected last report %s, got %s", s.lastPushID, r.ReloadID)
	}
	return nil
}
