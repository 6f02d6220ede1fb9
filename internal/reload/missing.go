package reload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"facilities/internal/facility/models"
	id "facilities/pkg/domain"
	"facilities/pkg/platform/sentinel"
)

// transitionAllMissing moves every stored facility that was not reported one
// step along Active -> PendingGraveyard -> Graveyarded. Each id is handled by
// exactly one worker.
func (s *Service) transitionAllMissing(ctx context.Context, reported map[id.FacilityID]struct{}, now time.Time, result *Result) error {
	ctx, span := s.tracer.Start(ctx, "reload.missing")
	defer span.End()

	stored, err := s.facilities.ListIDs(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("list facility ids: %w", err)
	}
	missing := make([]id.FacilityID, 0)
	for _, facilityID := range stored {
		if _, ok := reported[facilityID]; !ok {
			missing = append(missing, facilityID)
		}
	}
	span.SetAttributes(attribute.Int("reload.missing", len(missing)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, facilityID := range missing {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			return s.transitionMissing(ctx, facilityID, now, result)
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// transitionMissing applies the missing-state rule to one unreported facility:
// first miss sets MissingSince, within the grace period the record is
// refreshed, past it the record is retired to the graveyard.
func (s *Service) transitionMissing(ctx context.Context, facilityID id.FacilityID, now time.Time, result *Result) error {
	rec, err := s.facilities.FindByID(ctx, facilityID)
	if err != nil {
		// The id came from ListIDs, so not-found here is a store inconsistency.
		return storeFailure("load missing facility", facilityID, err)
	}

	switch {
	case !rec.IsMissing():
		rec.MissingSince = &now
		if _, err := s.facilities.Save(ctx, rec); err != nil {
			result.addProblem(facilityID.String(), problemSaveFailed+err.Error())
			return storeFailure("flag missing facility", facilityID, err)
		}
		result.record(outcomeMissing, facilityID)

	case rec.MissingFor(now) <= s.gracePeriod:
		if err := s.refreshMissing(ctx, rec); err != nil {
			result.addProblem(facilityID.String(), problemSaveFailed+err.Error())
			return storeFailure("refresh missing facility", facilityID, err)
		}
		result.record(outcomeMissing, facilityID)

	default:
		if err := s.moveToGraveyard(ctx, rec, now); err != nil {
			result.addProblem(facilityID.String(), problemMoveFailed+err.Error())
			return storeFailure("move facility to graveyard", facilityID, err)
		}
		result.record(outcomeRemoved, facilityID)
	}
	return nil
}

// refreshMissing re-saves a record that is still inside its grace period.
// Nothing changes but the store-owned version, which gives downstream readers
// a per-pass heartbeat for pending removals. MissingSince is never touched.
func (s *Service) refreshMissing(ctx context.Context, rec *models.FacilityRecord) error {
	_, err := s.facilities.Save(ctx, rec)
	return err
}

// moveToGraveyard writes the graveyard entry and then deletes the main record,
// both inside one transaction. A stale graveyard entry with the same id is
// overwritten.
func (s *Service) moveToGraveyard(ctx context.Context, rec *models.FacilityRecord, now time.Time) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		grave := models.NewGraveyardRecord(rec, now)
		stale, err := s.graveyard.FindByID(txCtx, rec.ID)
		switch {
		case err == nil:
			grave.Version = stale.Version
		case !errors.Is(err, sentinel.ErrNotFound):
			return err
		}

		if _, err := s.graveyard.Save(txCtx, grave); err != nil {
			return err
		}
		return s.facilities.Delete(txCtx, rec.ID)
	})
}
