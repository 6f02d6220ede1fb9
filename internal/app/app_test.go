package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilities/internal/collector"
	"facilities/internal/platform/config"
	dErrors "facilities/pkg/domain-errors"
)

func TestBuildInMemory(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer a.Close(ctx)

	assert.NotNil(t, a.Service)
	assert.NotNil(t, a.Scheduler)
	assert.Empty(t, a.Checks)

	rep, err := a.Service.ReloadFacilities(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, rep.TotalFacilities)

	last, err := a.Service.LastReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, rep.ReloadID, last.ReloadID)
}

func TestUnconfiguredCollectorIsAnOutage(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = a.Service.Reload(ctx)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	assert.Equal(t, collector.ErrorOutage, collector.CategoryOf(err))
}
