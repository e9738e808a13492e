package repository

import (
	"fmt"
	"time"

	"playstats/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EventRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewEventRepository(db *gorm.DB, logger *logrus.Logger) *EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// RecordJoin appends a single join event. The async ingest path goes
// through InsertBatch; this is the synchronous fallback.
func (r *EventRepository) RecordJoin(event *models.JoinEvent) error {
	if event.Hostname == "" {
		return ErrEmptyHostname
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := r.db.Create(event).Error; err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"player_id": event.PlayerID,
			"hostname":  event.Hostname,
		}).Error("Failed to record join event")
		return fmt.Errorf("failed to record join event: %w", err)
	}
	return nil
}

// InsertBatch appends a batch of join events in one statement.
func (r *EventRepository) InsertBatch(events []models.JoinEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := r.db.Create(&events).Error; err != nil {
		return fmt.Errorf("failed to insert join batch: %w", err)
	}
	return nil
}
