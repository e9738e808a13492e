package repository

import (
	"time"

	"playstats/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MaintenanceRepository owns the retention purge over the append-only
// event tables. Campaigns and their bindings are never purged.
type MaintenanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewMaintenanceRepository(db *gorm.DB, logger *logrus.Logger) *MaintenanceRepository {
	return &MaintenanceRepository{
		db:     db,
		logger: logger,
	}
}

// PurgeOldData deletes events older than the given number of days.
// Each table is purged independently; one failure does not stop the
// others.
func (r *MaintenanceRepository) PurgeOldData(days int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	targets := []struct {
		name   string
		column string
		model  interface{}
	}{
		{"joins", "timestamp", &models.JoinEvent{}},
		{"revenue", "timestamp", &models.RevenueEntry{}},
		{"session_stats", "start_time", &models.Session{}},
		{"player_counts", "timestamp", &models.PlayerCountSample{}},
	}

	var firstErr error
	for _, t := range targets {
		res := r.db.Where(t.column+" < ?", cutoff).Delete(t.model)
		if res.Error != nil {
			r.logger.WithError(res.Error).WithField("table", t.name).Error("Failed to purge old data")
			if firstErr == nil {
				firstErr = res.Error
			}
			continue
		}
		if res.RowsAffected > 0 {
			r.logger.WithFields(logrus.Fields{
				"table":   t.name,
				"deleted": res.RowsAffected,
			}).Info("Purged old records")
		}
	}
	return firstErr
}
