package reload

import (
	"context"
	"log/slog"
)

// changeEvents flattens a report into one event per facility transition,
// stamped with the pass clock.
func changeEvents(report *Report) []ChangeEvent {
	groups := []struct {
		change outcome
		ids    []string
	}{
		{outcomeCreated, report.FacilitiesCreated},
		{outcomeUpdated, report.FacilitiesUpdated},
		{outcomeRevived, report.FacilitiesRevived},
		{outcomeMissing, report.FacilitiesMissing},
		{outcomeRemoved, report.FacilitiesRemoved},
	}

	var events []ChangeEvent
	for _, group := range groups {
		for _, facilityID := range group.ids {
			events = append(events, ChangeEvent{
				ReloadID:   report.ReloadID,
				FacilityID: facilityID,
				Change:     string(group.change),
				OccurredAt: report.Timing.CompleteCollection,
			})
		}
	}
	return events
}

// publishChanges forwards the transitions of a pass, including an aborted
// one, since every recorded outcome was durably written. Failures are logged only.
func (s *Service) publishChanges(ctx context.Context, logger *slog.Logger, report *Report) {
	if s.publisher == nil {
		return
	}
	events := changeEvents(report)
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events); err != nil {
		logger.WarnContext(ctx, "failed to publish facility changes",
			"events", len(events),
			"error", err,
		)
	}
}
