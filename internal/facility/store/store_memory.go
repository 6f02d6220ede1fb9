package store

import (
	"context"
	"fmt"
	"sync"

	"facilities/internal/facility/models"
	id "facilities/pkg/domain"
	"facilities/pkg/platform/sentinel"
)

// InMemoryFacilityStore is a thread-safe in-memory FacilityStore. Records are
// cloned on the way in and out so callers never share state with the store.
type InMemoryFacilityStore struct {
	mu      sync.RWMutex
	records map[id.FacilityID]*models.FacilityRecord
}

// NewInMemoryFacilityStore creates an empty in-memory facility store.
func NewInMemoryFacilityStore() *InMemoryFacilityStore {
	return &InMemoryFacilityStore{records: make(map[id.FacilityID]*models.FacilityRecord)}
}

func (s *InMemoryFacilityStore) FindByID(_ context.Context, facilityID id.FacilityID) (*models.FacilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[facilityID]
	if !ok {
		return nil, fmt.Errorf("facility %s: %w", facilityID, sentinel.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (s *InMemoryFacilityStore) ListIDs(_ context.Context) ([]id.FacilityID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]id.FacilityID, 0, len(s.records))
	for facilityID := range s.records {
		ids = append(ids, facilityID)
	}
	return ids, nil
}

// Save inserts when rec.Version is zero, otherwise replaces the stored record
// only if its version still matches. The returned copy carries the new version.
func (s *InMemoryFacilityStore) Save(_ context.Context, rec *models.FacilityRecord) (*models.FacilityRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("facility record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.currentVersion(rec.ID)
	if err := checkVersion(rec.ID, rec.Version, current, exists); err != nil {
		return nil, err
	}
	saved := rec.Clone()
	saved.Version = rec.Version + 1
	s.records[rec.ID] = saved
	return saved.Clone(), nil
}

func (s *InMemoryFacilityStore) Delete(_ context.Context, facilityID id.FacilityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[facilityID]; !ok {
		return fmt.Errorf("delete facility %s: %w", facilityID, sentinel.ErrNotFound)
	}
	delete(s.records, facilityID)
	return nil
}

func (s *InMemoryFacilityStore) currentVersion(facilityID id.FacilityID) (int64, bool) {
	rec, ok := s.records[facilityID]
	if !ok {
		return 0, false
	}
	return rec.Version, true
}

// InMemoryGraveyardStore is the in-memory keyspace for retired facilities.
type InMemoryGraveyardStore struct {
	mu      sync.RWMutex
	records map[id.FacilityID]*models.GraveyardRecord
}

// NewInMemoryGraveyardStore creates an empty in-memory graveyard store.
func NewInMemoryGraveyardStore() *InMemoryGraveyardStore {
	return &InMemoryGraveyardStore{records: make(map[id.FacilityID]*models.GraveyardRecord)}
}

func (s *InMemoryGraveyardStore) FindByID(_ context.Context, facilityID id.FacilityID) (*models.GraveyardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[facilityID]
	if !ok {
		return nil, fmt.Errorf("graveyard facility %s: %w", facilityID, sentinel.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (s *InMemoryGraveyardStore) ListIDs(_ context.Context) ([]id.FacilityID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]id.FacilityID, 0, len(s.records))
	for facilityID := range s.records {
		ids = append(ids, facilityID)
	}
	return ids, nil
}

func (s *InMemoryGraveyardStore) Save(_ context.Context, rec *models.GraveyardRecord) (*models.GraveyardRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("graveyard record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := int64(0), false
	if existing, ok := s.records[rec.ID]; ok {
		current, exists = existing.Version, true
	}
	if err := checkVersion(rec.ID, rec.Version, current, exists); err != nil {
		return nil, err
	}
	saved := rec.Clone()
	saved.Version = rec.Version + 1
	s.records[rec.ID] = saved
	return saved.Clone(), nil
}

func (s *InMemoryGraveyardStore) Delete(_ context.Context, facilityID id.FacilityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[facilityID]; !ok {
		return fmt.Errorf("delete graveyard facility %s: %w", facilityID, sentinel.ErrNotFound)
	}
	delete(s.records, facilityID)
	return nil
}

// checkVersion enforces insert-when-zero and compare-and-swap otherwise.
func checkVersion(facilityID id.FacilityID, want int64, current int64, exists bool) error {
	switch {
	case want == 0 && exists:
		return fmt.Errorf("insert %s: already exists: %w", facilityID, sentinel.ErrConflict)
	case want != 0 && !exists:
		return fmt.Errorf("update %s: no longer stored: %w", facilityID, sentinel.ErrConflict)
	case want != 0 && want != current:
		return fmt.Errorf("update %s: stale version %d (current %d): %w", facilityID, want, current, sentinel.ErrConflict)
	}
	return nil
}

// InMemoryTx serializes transactional sections with a single lock. The
// in-memory stores have no rollback, so fn's writes are applied as they happen.
type InMemoryTx struct {
	mu sync.Mutex
}

func NewInMemoryTx() *InMemoryTx {
	return &InMemoryTx{}
}

func (t *InMemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
