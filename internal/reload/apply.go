package reload

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"facilities/internal/facility/models"
	"facilities/internal/facility/projector"
	id "facilities/pkg/domain"
	"facilities/pkg/platform/sentinel"
)

const (
	problemCannotParseID = "Cannot parse ID"
	problemDuplicateID   = "Duplicate ID"
	problemMissingZip    = "Missing zip"
	problemMissingState  = "Missing state"
	problemSaveFailed    = "Failed to save record: "
	problemMoveFailed    = "Failed to move facility to graveyard: "
)

// applyAll runs the per-facility apply concurrently. It returns the set of ids
// that parsed, which is what the missing computation treats as reported.
// The first store failure stops further dispatch; in-flight work finishes.
func (s *Service) applyAll(ctx context.Context, facilities []models.Facility, now time.Time, result *Result) (map[id.FacilityID]struct{}, error) {
	ctx, span := s.tracer.Start(ctx, "reload.apply")
	defer span.End()
	span.SetAttributes(attribute.Int("reload.facilities", len(facilities)))

	// reported is only touched by this dispatching goroutine.
	reported := make(map[id.FacilityID]struct{}, len(facilities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range facilities {
		if gctx.Err() != nil {
			break
		}
		f := &facilities[i]
		facilityID, err := id.ParseFacilityID(f.ID)
		if err != nil {
			result.addProblem(f.ID, problemCannotParseID)
			continue
		}

		if _, duplicate := reported[facilityID]; duplicate {
			result.addProblem(f.ID, problemDuplicateID)
			continue
		}
		reported[facilityID] = struct{}{}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			return s.applyFacility(ctx, facilityID, f, now, result)
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return reported, nil
}

// applyFacility creates, updates or revives the record for one reported
// facility. Outcomes are recorded only once the write has succeeded.
func (s *Service) applyFacility(ctx context.Context, facilityID id.FacilityID, f *models.Facility, now time.Time, result *Result) error {
	rec, kind, err := s.target(ctx, facilityID)
	if err != nil {
		return err
	}

	payload, err := s.codec.Marshal(f)
	if err != nil {
		result.addProblem(facilityID.String(), problemSaveFailed+err.Error())
		return storeFailure("serialize facility", facilityID, err)
	}
	projection := projector.Project(f)
	rec.Apply(projection, payload, now)

	if projection.Zip == nil {
		result.addProblem(facilityID.String(), problemMissingZip)
	}
	if projection.State == nil {
		result.addProblem(facilityID.String(), problemMissingState)
	}

	if kind == outcomeRevived {
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			if _, err := s.facilities.Save(txCtx, rec); err != nil {
				return err
			}
			return s.graveyard.Delete(txCtx, facilityID)
		})
	} else {
		_, err = s.facilities.Save(ctx, rec)
	}
	if err != nil {
		result.addProblem(facilityID.String(), problemSaveFailed+err.Error())
		return storeFailure("save facility", facilityID, err)
	}

	result.record(kind, facilityID)
	return nil
}

// target returns the record to mutate and the outcome it will produce. A
// graveyarded facility comes back with only its CMS overlay carried forward.
func (s *Service) target(ctx context.Context, facilityID id.FacilityID) (*models.FacilityRecord, outcome, error) {
	existing, err := s.facilities.FindByID(ctx, facilityID)
	if err == nil {
		return existing, outcomeUpdated, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, "", storeFailure("load facility", facilityID, err)
	}

	grave, err := s.graveyard.FindByID(ctx, facilityID)
	if err == nil {
		return &models.FacilityRecord{ID: facilityID, CMSOverlay: grave.CMSOverlay}, outcomeRevived, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, "", storeFailure("load graveyard facility", facilityID, err)
	}
	return &models.FacilityRecord{ID: facilityID}, outcomeCreated, nil
}
