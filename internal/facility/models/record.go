package models

import (
	"time"

	id "facilities/pkg/domain"
)

// FacilityRecord is the stored row for an actively tracked facility.
//
// MissingSince is set once the facility has gone unreported for at least one
// pass and stays set until it is reported again or moved to the graveyard.
// Version is owned by the store: zero means "never saved".
type FacilityRecord struct {
	ID           id.FacilityID
	Latitude     *float64
	Longitude    *float64
	State        *string
	Zip          *string
	ServiceTypes []string
	Payload      []byte
	CMSOverlay   []byte
	MissingSince *time.Time
	LastUpdated  *time.Time
	Version      int64
}

// IsMissing reports whether the record has been flagged as unreported.
func (r *FacilityRecord) IsMissing() bool {
	return r.MissingSince != nil
}

// MissingFor returns how long the record has been unreported as of now,
// or zero when it is not missing.
func (r *FacilityRecord) MissingFor(now time.Time) time.Duration {
	if r.MissingSince == nil {
		return 0
	}
	return now.Sub(*r.MissingSince)
}

// Apply overwrites the projected fields and payload and marks the record as
// reported at now.
func (r *FacilityRecord) Apply(p Projection, payload []byte, now time.Time) {
	r.Latitude = p.Latitude
	r.Longitude = p.Longitude
	r.State = p.State
	r.Zip = p.Zip
	r.ServiceTypes = p.ServiceTypes
	r.Payload = payload
	r.MissingSince = nil
	r.LastUpdated = &now
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (r *FacilityRecord) Clone() *FacilityRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Latitude = clonePtr(r.Latitude)
	c.Longitude = clonePtr(r.Longitude)
	c.State = clonePtr(r.State)
	c.Zip = clonePtr(r.Zip)
	c.MissingSince = clonePtr(r.MissingSince)
	c.LastUpdated = clonePtr(r.LastUpdated)
	c.ServiceTypes = cloneSlice(r.ServiceTypes)
	c.Payload = cloneSlice(r.Payload)
	c.CMSOverlay = cloneSlice(r.CMSOverlay)
	return &c
}

// GraveyardRecord is a facility retired after staying unreported past the
// grace period. It keeps what is needed to revive the facility later.
type GraveyardRecord struct {
	ID           id.FacilityID
	Payload      []byte
	CMSOverlay   []byte
	MissingSince *time.Time
	LastUpdated  *time.Time
	Version      int64
}

// NewGraveyardRecord retires rec at now, carrying its payload, overlay and
// original MissingSince forward.
func NewGraveyardRecord(rec *FacilityRecord, now time.Time) *GraveyardRecord {
	return &GraveyardRecord{
		ID:           rec.ID,
		Payload:      cloneSlice(rec.Payload),
		CMSOverlay:   cloneSlice(rec.CMSOverlay),
		MissingSince: clonePtr(rec.MissingSince),
		LastUpdated:  &now,
	}
}

func (g *GraveyardRecord) Clone() *GraveyardRecord {
	if g == nil {
		return nil
	}
	c := *g
	c.Payload = cloneSlice(g.Payload)
	c.CMSOverlay = cloneSlice(g.CMSOverlay)
	c.MissingSince = clonePtr(g.MissingSince)
	c.LastUpdated = clonePtr(g.LastUpdated)
	return &c
}

// Projection holds the storage fields derived from a canonical facility.
type Projection struct {
	Latitude     *float64
	Longitude    *float64
	State        *string
	Zip          *string
	ServiceTypes []string
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
