package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/phambaophuc/image-crop/internal/models"
)

// Record increments the counter for outcome.
func (s *StatsService) Record(ctx context.Context, outcome string) error {
	if err := s.redisClient.HIncrBy(ctx, s.key, outcome, 1).Err(); err != nil {
		return fmt.Errorf("failed to record %s: %w", outcome, err)
	}
	return nil
}

// Snapshot returns every known outcome counter, zero when never recorded.
func (s *StatsService) Snapshot(ctx context.Context) (map[string]int64, error) {
	raw, err := s.redisClient.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("stats get error: %w", err)
	}

	counters := make(map[string]int64, len(models.Outcomes))
	for _, outcome := range models.Outcomes {
		counters[outcome] = 0
	}

	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid counter %s=%q: %w", field, value, err)
		}
		counters[field] = n
	}

	return counters, nil
}
