package stats

import (
	"time"

	"github.com/phambaophuc/image-crop/internal/config"
	"github.com/redis/go-redis/v9"
)

const DefaultKey = "crop_stats"

// StatsService keeps per-outcome crop counters in a Redis hash.
type StatsService struct {
	redisClient *redis.Client
	key         string
}

type ServiceOptions struct {
	Key        string
	MaxRetries int
	Timeout    time.Duration
}

var DefaultOptions = ServiceOptions{
	Key:        DefaultKey,
	MaxRetries: 3,
	Timeout:    5 * time.Second,
}

func NewStatsService(cfg config.RedisConfig, opts ...ServiceOptions) *StatsService {
	options := DefaultOptions
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Key == "" {
		options.Key = DefaultKey
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   options.MaxRetries,
		DialTimeout:  options.Timeout,
		ReadTimeout:  options.Timeout,
		WriteTimeout: options.Timeout,
	})

	return &StatsService{
		redisClient: redisClient,
		key:         options.Key,
	}
}

func (s *StatsService) Close() error {
	return s.redisClient.Close()
}
