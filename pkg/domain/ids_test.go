package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "facilities/pkg/domain-errors"
)

// TestParseFacilityID_Invariants validates the parsing invariant:
// "IDs are {type}_{stationNumber} with a known type and a non-empty station"
//
// Justification: This is a pure function enforcing a domain invariant at the
// collector trust boundary.
func TestParseFacilityID_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FacilityID
		wantErr bool
	}{
		{"health prefix", "vha_402", FacilityID{FacilityTypeHealth, "402"}, false},
		{"benefits prefix", "vba_306e", FacilityID{FacilityTypeBenefits, "306e"}, false},
		{"cemetery prefix", "nca_s1032", FacilityID{FacilityTypeCemetery, "s1032"}, false},
		{"vet center prefix", "vc_0101V", FacilityID{FacilityTypeVetCenter, "0101V"}, false},
		{"type name accepted", "vet-center_0101V", FacilityID{FacilityTypeVetCenter, "0101V"}, false},
		{"prefix is case-insensitive", "VHA_402", FacilityID{FacilityTypeHealth, "402"}, false},
		{"station keeps later separators", "vha_402_GA", FacilityID{FacilityTypeHealth, "402_GA"}, false},

		{"no separator", "notvalid", FacilityID{}, true},
		{"unknown type", "xyz_402", FacilityID{}, true},
		{"empty station", "vha_", FacilityID{}, true},
		{"empty string", "", FacilityID{}, true},
		{"whitespace only", "   ", FacilityID{}, true},
		{"oversized garbage", strings.Repeat("a", 1000), FacilityID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFacilityID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformedID))
				assert.ErrorIs(t, err, ErrMalformedID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFacilityID_String(t *testing.T) {
	t.Run("canonical form uses upstream prefix", func(t *testing.T) {
		id := FacilityID{Type: FacilityTypeVetCenter, StationNumber: "0101V"}
		assert.Equal(t, "vc_0101V", id.String())
	})

	t.Run("equality is by pair only", func(t *testing.T) {
		a := MustParseFacilityID("health_402")
		b := MustParseFacilityID("vha_402")
		assert.Equal(t, a, b)
		assert.Equal(t, a.String(), b.String())
	})

	t.Run("lenient prefixes canonicalise to the upstream form", func(t *testing.T) {
		for _, raw := range []string{"health_1", "HEALTH_1", "VHA_1", "vha_1"} {
			assert.Equal(t, "vha_1", MustParseFacilityID(raw).String(), raw)
		}
		assert.Equal(t, "vc_0101V", MustParseFacilityID("Vet-Center_0101V").String())
	})

	t.Run("zero value is nil", func(t *testing.T) {
		assert.True(t, FacilityID{}.IsNil())
		assert.False(t, MustParseFacilityID("vha_1").IsNil())
	})
}
