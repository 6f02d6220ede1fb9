package reload

import (
	"context"
	"time"

	"facilities/internal/facility/models"
	id "facilities/pkg/domain"
)

// Collector supplies the full current facility list for a pull-triggered pass.
// Any error aborts the pass before it starts.
type Collector interface {
	CollectFacilities(ctx context.Context) ([]models.Facility, error)
}

// FacilityStore is the main record keyspace. Save inserts when Version is zero
// and otherwise compares versions, returning sentinel.ErrConflict when stale.
type FacilityStore interface {
	FindByID(ctx context.Context, facilityID id.FacilityID) (*models.FacilityRecord, error)
	ListIDs(ctx context.Context) ([]id.FacilityID, error)
	Save(ctx context.Context, rec *models.FacilityRecord) (*models.FacilityRecord, error)
	Delete(ctx context.Context, facilityID id.FacilityID) error
}

// GraveyardStore is the retired record keyspace, with the same contract.
type GraveyardStore interface {
	FindByID(ctx context.Context, facilityID id.FacilityID) (*models.GraveyardRecord, error)
	ListIDs(ctx context.Context) ([]id.FacilityID, error)
	Save(ctx context.Context, rec *models.GraveyardRecord) (*models.GraveyardRecord, error)
	Delete(ctx context.Context, facilityID id.FacilityID) error
}

// StoreTx groups writes across both keyspaces. Stores called with the ctx
// passed to fn join the transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReportStore keeps the most recent pass report.
type ReportStore interface {
	SaveLast(ctx context.Context, report *Report) error
	Last(ctx context.Context) (*Report, error)
}

// ChangeEvent announces one facility transition made by a pass.
type ChangeEvent struct {
	ReloadID   string    `json:"reloadId"`
	FacilityID string    `json:"facilityId"`
	Change     string    `json:"change"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ChangePublisher forwards change events downstream.
type ChangePublisher interface {
	Publish(ctx context.Context, events []ChangeEvent) error
}
