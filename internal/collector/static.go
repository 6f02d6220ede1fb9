package collector

import (
	"context"
	"sync"

	"facilities/internal/facility/models"
)

// Static serves a fixed facility list. Used for local runs, seeding and tests.
type Static struct {
	mu         sync.RWMutex
	facilities []models.Facility
	err        error
}

func NewStatic(facilities ...models.Facility) *Static {
	return &Static{facilities: facilities}
}

// Set replaces the facilities returned by later collections.
func (s *Static) Set(facilities ...models.Facility) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facilities = facilities
	s.err = nil
}

// Fail makes later collections return err.
func (s *Static) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Static) CollectFacilities(_ context.Context) ([]models.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Facility, len(s.facilities))
	copy(out, s.facilities)
	return out, nil
}
