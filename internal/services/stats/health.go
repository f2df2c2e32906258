package stats

import (
	"context"

	"github.com/phambaophuc/image-crop/internal/models"
)

func (s *StatsService) HealthCheck(ctx context.Context) string {
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return models.StatusUnhealthy + ": " + err.Error()
	}
	return models.StatusHealthy
}
