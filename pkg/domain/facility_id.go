package domain

import (
	"errors"
	"strings"

	dErrors "facilities/pkg/domain-errors"
)

// FacilityType is the closed set of facility kinds a station can belong to.
type FacilityType string

const (
	FacilityTypeHealth    FacilityType = "health"
	FacilityTypeBenefits  FacilityType = "benefits"
	FacilityTypeCemetery  FacilityType = "cemetery"
	FacilityTypeVetCenter FacilityType = "vet-center"
)

// idPrefixes maps the upstream id prefix to its facility type.
// Prefix is the single source of truth for the canonical string form.
var idPrefixes = map[string]FacilityType{
	"vha": FacilityTypeHealth,
	"vba": FacilityTypeBenefits,
	"nca": FacilityTypeCemetery,
	"vc":  FacilityTypeVetCenter,
}

var typePrefixes = map[FacilityType]string{
	FacilityTypeHealth:    "vha",
	FacilityTypeBenefits:  "vba",
	FacilityTypeCemetery:  "nca",
	FacilityTypeVetCenter: "vc",
}

// ErrMalformedID is the cause of every ParseFacilityID failure.
var ErrMalformedID = errors.New("malformed facility id")

// IsValid reports whether t is one of the supported facility types.
func (t FacilityType) IsValid() bool {
	_, ok := typePrefixes[t]
	return ok
}

// Prefix returns the upstream id prefix for the type.
func (t FacilityType) Prefix() string {
	return typePrefixes[t]
}

func (t FacilityType) String() string {
	return string(t)
}

// FacilityID identifies a facility by its type and station number.
// Storage identity and equality are defined by this pair only.
type FacilityID struct {
	Type          FacilityType
	StationNumber string
}

// ParseFacilityID parses the external "{prefix}_{stationNumber}" form.
//
// Errors: returns CodeMalformedID wrapping ErrMalformedID when the separator is
// missing, the prefix is unknown, or the station number is empty.
func ParseFacilityID(s string) (FacilityID, error) {
	prefix, station, ok := strings.Cut(strings.TrimSpace(s), "_")
	if !ok {
		return FacilityID{}, dErrors.Wrap(ErrMalformedID, dErrors.CodeMalformedID, "facility id is missing the type separator")
	}
	facilityType, ok := parseFacilityType(prefix)
	if !ok {
		return FacilityID{}, dErrors.Wrap(ErrMalformedID, dErrors.CodeMalformedID, "facility id has an unknown type")
	}
	if station == "" {
		return FacilityID{}, dErrors.Wrap(ErrMalformedID, dErrors.CodeMalformedID, "facility id has an empty station number")
	}
	return FacilityID{Type: facilityType, StationNumber: station}, nil
}

// MustParseFacilityID is ParseFacilityID for literals in tests and seed data.
func MustParseFacilityID(s string) FacilityID {
	id, err := ParseFacilityID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// parseFacilityType accepts either the upstream prefix or the type name.
func parseFacilityType(s string) (FacilityType, bool) {
	s = strings.ToLower(s)
	if t, ok := idPrefixes[s]; ok {
		return t, true
	}
	t := FacilityType(s)
	return t, t.IsValid()
}

// String returns the canonical "{prefix}_{stationNumber}" form.
func (id FacilityID) String() string {
	return id.Type.Prefix() + "_" + id.StationNumber
}

// IsNil returns true for the zero FacilityID.
func (id FacilityID) IsNil() bool {
	return id == FacilityID{}
}
