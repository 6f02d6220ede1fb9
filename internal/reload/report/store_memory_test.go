package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilities/internal/reload"
	"facilities/pkg/platform/sentinel"
)

func sampleReport(reloadID string) *reload.Report {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &reload.Report{
		ReloadID:          reloadID,
		TotalFacilities:   2,
		FacilitiesCreated: []string{"vha_402"},
		FacilitiesUpdated: []string{},
		FacilitiesMissing: []string{"nca_888"},
		FacilitiesRemoved: []string{},
		FacilitiesRevived: []string{},
		Problems:          []reload.Problem{{FacilityID: "vha_402", Description: "Missing zip"}},
		Timing: reload.Timing{
			Start:               start,
			CompleteCollection:  start.Add(time.Second),
			Complete:            start.Add(2 * time.Second),
			TotalDurationMillis: 2000,
		},
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	_, err := store.Last(ctx)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	first := sampleReport("reload-1")
	require.NoError(t, store.SaveLast(ctx, first))
	require.NoError(t, store.SaveLast(ctx, sampleReport("reload-2")))

	last, err := store.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reload-2", last.ReloadID)
	assert.Equal(t, first.Problems, last.Problems)
	assert.True(t, first.Timing.Start.Equal(last.Timing.Start))

	first.FacilitiesCreated[0] = "mutated"
	again, err := store.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"vha_402"}, again.FacilitiesCreated)

	assert.Error(t, store.SaveLast(ctx, nil))
}
