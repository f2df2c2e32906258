package services

import (
	"context"
	"sync"
	"time"

	"github.com/phambaophuc/image-crop/internal/models"
	"go.uber.org/zap"
)

const DefaultRecordTimeout = 5 * time.Second

type CounterStore interface {
	Record(ctx context.Context, outcome string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event *models.CropEvent) error
}

// EventRecorder fans crop events out to the statistics store and the event
// queue in the background. Either sink may be nil. Failures are logged and
// never reach the request that produced the event.
type EventRecorder struct {
	counters  CounterStore
	publisher EventPublisher
	logger    *zap.Logger
	timeout   time.Duration
	wg        sync.WaitGroup
}

func NewEventRecorder(counters CounterStore, publisher EventPublisher, logger *zap.Logger) *EventRecorder {
	return &EventRecorder{
		counters:  counters,
		publisher: publisher,
		logger:    logger,
		timeout:   DefaultRecordTimeout,
	}
}

func (r *EventRecorder) Record(event *models.CropEvent) {
	if r.counters == nil && r.publisher == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if r.counters != nil {
			if err := r.counters.Record(ctx, event.Outcome); err != nil {
				r.logger.Warn("Failed to record crop stats",
					zap.String("event_id", event.ID),
					zap.Error(err))
			}
		}

		if r.publisher != nil {
			if err := r.publisher.PublishEvent(ctx, event); err != nil {
				r.logger.Warn("Failed to publish crop event",
					zap.String("event_id", event.ID),
					zap.Error(err))
			}
		}
	}()
}

// Wait blocks until every event recorded so far has been delivered or dropped.
func (r *EventRecorder) Wait() {
	r.wg.Wait()
}
