package models

import "time"

type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

const (
	StatusHealthy       = "healthy"
	StatusUnhealthy     = "unhealthy"
	StatusNotConfigured = "not configured"
)

type Stats struct {
	Counters  map[string]int64       `json:"counters"`
	Queue     map[string]interface{} `json:"queue,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
