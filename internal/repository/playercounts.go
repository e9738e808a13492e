package repository

import (
	"errors"
	"fmt"
	"time"

	"playstats/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// averageWindows are the fixed rolling windows reported by Stats.
var averageWindows = []struct {
	label string
	span  time.Duration
}{
	{"24h", 24 * time.Hour},
	{"7d", 7 * 24 * time.Hour},
	{"14d", 14 * 24 * time.Hour},
	{"30d", 30 * 24 * time.Hour},
}

type PlayerCountRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewPlayerCountRepository(db *gorm.DB, logger *logrus.Logger) *PlayerCountRepository {
	return &PlayerCountRepository{
		db:     db,
		logger: logger,
	}
}

// Insert writes one tick's worth of samples.
func (r *PlayerCountRepository) Insert(samples []models.PlayerCountSample) error {
	if len(samples) == 0 {
		return nil
	}
	if err := r.db.Create(&samples).Error; err != nil {
		return fmt.Errorf("failed to insert player count samples: %w", err)
	}
	return nil
}

// Stats summarizes the sample series for a hostname: latest count,
// rolling averages over the fixed windows, and the all-time peak with
// its timestamp. The reserved "global" hostname carries the summed
// series written by the sampler, so its peak is the peak of the summed
// counts, not the max of any single hostname's peak.
func (r *PlayerCountRepository) Stats(hostname string) models.PlayerCountStats {
	stats := models.PlayerCountStats{
		Hostname: hostname,
		Averages: make(map[string]float64, len(averageWindows)),
	}
	for _, w := range averageWindows {
		stats.Averages[w.label] = 0
	}

	var latest models.PlayerCountSample
	err := r.db.Where("hostname = ?", hostname).
		Order("timestamp DESC").
		First(&latest).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WithError(err).WithField("hostname", hostname).Error("Failed to get current player count")
		}
		return stats
	}
	stats.Current = latest.Count

	now := time.Now().UTC()
	for _, w := range averageWindows {
		var avg float64
		err := r.db.Model(&models.PlayerCountSample{}).
			Select("COALESCE(AVG(count), 0)").
			Where("hostname = ? AND timestamp >= ?", hostname, now.Add(-w.span)).
			Scan(&avg).Error
		if err != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{
				"hostname": hostname,
				"window":   w.label,
			}).Error("Failed to get player count average")
			continue
		}
		stats.Averages[w.label] = avg
	}

	var peak models.PlayerCountSample
	err = r.db.Where("hostname = ?", hostname).
		Order("count DESC, timestamp ASC").
		First(&peak).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WithError(err).WithField("hostname", hostname).Error("Failed to get peak player count")
		}
		return stats
	}
	stats.PeakCount = peak.Count
	peakTime := peak.Timestamp
	stats.PeakTime = &peakTime

	return stats
}
