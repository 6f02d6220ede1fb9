// Package projector derives the storage columns of a facility record from the
// canonical facility document. It does no I/O and is safe for concurrent use.
package projector

import (
	"strings"

	"facilities/internal/facility/models"
	pkgstrings "facilities/pkg/platform/strings"
)

// zipLength is the number of leading zip characters kept; the +4 routing
// suffix is discarded.
const zipLength = 5

// Project returns the storage fields for f. Missing blocks project to nil
// fields and an empty service set; a nil facility yields an empty projection.
func Project(f *models.Facility) models.Projection {
	p := models.Projection{ServiceTypes: []string{}}
	if f == nil || f.Attributes == nil {
		return p
	}
	attrs := f.Attributes

	p.Latitude = copyFloat(attrs.Latitude)
	p.Longitude = copyFloat(attrs.Longitude)

	if physical := physicalAddress(attrs); physical != nil {
		p.State = state(physical.State)
		p.Zip = zip(physical.Zip)
	}

	if svc := attrs.Services; svc != nil {
		p.ServiceTypes = pkgstrings.SortedUnion(svc.Health, svc.Benefits, svc.Other)
	}
	return p
}

func physicalAddress(attrs *models.FacilityAttributes) *models.Address {
	if attrs.Address == nil {
		return nil
	}
	return attrs.Address.Physical
}

func state(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

// zip counts characters, not bytes, so a truncated zip stays valid UTF-8.
func zip(raw string) *string {
	runes := []rune(raw)
	if len(runes) < zipLength {
		return nil
	}
	z := string(runes[:zipLength])
	return &z
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
