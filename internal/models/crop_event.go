package models

import "time"

// CropEvent describes the outcome of one crop request. It never carries
// image bytes.
type CropEvent struct {
	ID           string        `json:"id"`
	RequestID    string        `json:"request_id,omitempty"`
	Outcome      string        `json:"outcome"`
	Crop         *CropRequest  `json:"crop,omitempty"`
	SourceFormat string        `json:"source_format,omitempty"`
	OutputBytes  int64         `json:"output_bytes,omitempty"`
	Duration     time.Duration `json:"duration"`
	CreatedAt    time.Time     `json:"created_at"`
	Error        string        `json:"error,omitempty"`
}

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeTooLarge = "too_large"
)

// Outcomes lists every outcome in reporting order.
var Outcomes = []string{OutcomeSuccess, OutcomeRejected, OutcomeFailed, OutcomeTooLarge}
