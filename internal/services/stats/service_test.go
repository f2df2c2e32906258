package stats

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/phambaophuc/image-crop/internal/config"
	"github.com/phambaophuc/image-crop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*StatsService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	svc := NewStatsService(config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { svc.Close() })
	return svc, mr
}

func TestSnapshot_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	counters, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, counters, len(models.Outcomes))
	for _, outcome := range models.Outcomes {
		assert.Zero(t, counters[outcome], outcome)
	}
}

func TestRecord(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, models.OutcomeSuccess))
	require.NoError(t, svc.Record(ctx, models.OutcomeSuccess))
	require.NoError(t, svc.Record(ctx, models.OutcomeRejected))

	counters, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), counters[models.OutcomeSuccess])
	assert.Equal(t, int64(1), counters[models.OutcomeRejected])
	assert.Equal(t, int64(0), counters[models.OutcomeFailed])
	assert.Equal(t, "2", mr.HGet(DefaultKey, models.OutcomeSuccess))

	mr.Del(DefaultKey)
	counters, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, counters[models.OutcomeSuccess])
}

func TestSnapshot_CorruptCounter(t *testing.T) {
	svc, mr := newTestService(t)
	mr.HSet(DefaultKey, models.OutcomeFailed, "many")

	_, err := svc.Snapshot(context.Background())
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	svc, mr := newTestService(t)

	assert.Equal(t, models.StatusHealthy, svc.HealthCheck(context.Background()))

	mr.Close()
	status := svc.HealthCheck(context.Background())
	assert.True(t, strings.HasPrefix(status, models.StatusUnhealthy), status)
}
