package services

import (
	"context"
	"time"

	"playstats/internal/metrics"
	"playstats/internal/models"

	"github.com/sirupsen/logrus"
)

// joinWriter is the slice of EventRepository the queue needs.
type joinWriter interface {
	InsertBatch(events []models.JoinEvent) error
}

// JoinQueue decouples join ingestion from storage: producers enqueue
// into a buffered channel and a single processor goroutine writes
// batches. A full queue or a failed batch never fails the login flow.
type JoinQueue struct {
	events chan models.JoinEvent
	repo   joinWriter
	logger *logrus.Logger
}

func NewJoinQueue(repo joinWriter, logger *logrus.Logger, bufferSize int) *JoinQueue {
	return &JoinQueue{
		events: make(chan models.JoinEvent, bufferSize),
		repo:   repo,
		logger: logger,
	}
}

func (q *JoinQueue) Enqueue(event models.JoinEvent) bool {
	select {
	case q.events <- event:
		return true
	default:
		q.logger.Warn("Join queue is full, dropping event")
		return false
	}
}

func (q *JoinQueue) Len() int {
	return len(q.events)
}

func (q *JoinQueue) StartProcessor(ctx context.Context) {
	batchSize := 100
	batchTimeout := 5 * time.Second
	batch := make([]models.JoinEvent, 0, batchSize)
	timer := time.NewTimer(batchTimeout)

	for {
		select {
		case <-ctx.Done():
			// Flush remaining events
			if len(batch) > 0 {
				q.processBatch(batch)
			}
			return
		case event := <-q.events:
			batch = append(batch, event)
			if len(batch) >= batchSize {
				q.processBatch(batch)
				batch = batch[:0]
				timer.Reset(batchTimeout)
			}
		case <-timer.C:
			if len(batch) > 0 {
				q.processBatch(batch)
				batch = batch[:0]
			}
			timer.Reset(batchTimeout)
		}
	}
}

func (q *JoinQueue) processBatch(events []models.JoinEvent) {
	if len(events) == 0 {
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		if err := q.repo.InsertBatch(events); err != nil {
			if i == maxRetries-1 {
				q.logger.WithError(err).Error("Dropping join batch after all retries")
				return
			}
			q.logger.WithError(err).Warnf("Failed to insert join batch (attempt %d/%d)", i+1, maxRetries)
			time.Sleep(time.Duration(i+1) * time.Second)
			continue
		}
		metrics.JoinsProcessed.Add(float64(len(events)))
		break
	}
}
