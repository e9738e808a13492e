package repository

import (
	"fmt"
	"time"

	"playstats/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewSessionRepository(db *gorm.DB, logger *logrus.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a closed session.
func (r *SessionRepository) Insert(session models.Session) error {
	if err := r.db.Create(&session).Error; err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"player_id": session.PlayerID,
			"hostname":  session.Hostname,
		}).Error("Failed to persist session")
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// HostAggregate is the running session total for one hostname, used to
// seed the in-memory tracker with history at startup.
type HostAggregate struct {
	Hostname      string
	Sessions      int64
	TotalDuration int64
}

func (r *SessionRepository) HostnameAggregates() (map[string]HostAggregate, error) {
	var rows []HostAggregate
	err := r.db.Model(&models.Session{}).
		Select("hostname, COUNT(*) as sessions, COALESCE(SUM(duration), 0) as total_duration").
		Where("end_time IS NOT NULL").
		Group("hostname").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load session aggregates: %w", err)
	}

	aggregates := make(map[string]HostAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.Hostname] = row
	}
	return aggregates, nil
}

// Stats returns the session aggregate for a hostname, optionally
// restricted to sessions started at or after since. Read failures are
// logged and return zeros.
func (r *SessionRepository) Stats(hostname string, since *time.Time) models.SessionStats {
	var stats models.SessionStats
	q := r.db.Model(&models.Session{}).
		Select(`COUNT(DISTINCT player_id) as unique_players,
			COUNT(*) as total_sessions,
			COALESCE(AVG(duration), 0) as avg_duration,
			COALESCE(SUM(duration), 0) as total_duration`).
		Where("hostname = ?", hostname)
	if since != nil {
		q = q.Where("start_time >= ?", *since)
	}

	if err := q.Scan(&stats).Error; err != nil {
		r.logger.WithError(err).WithField("hostname", hostname).Error("Failed to get session stats")
		return models.SessionStats{}
	}
	return stats
}
