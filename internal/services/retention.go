package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type purger interface {
	PurgeOldData(days int) error
}

// Janitor deletes event data older than the retention window once a
// day. A retention of 0 days disables purging entirely.
type Janitor struct {
	repo   purger
	days   int
	logger *logrus.Logger
}

func NewJanitor(repo purger, days int, logger *logrus.Logger) *Janitor {
	return &Janitor{
		repo:   repo,
		days:   days,
		logger: logger,
	}
}

func (j *Janitor) Run(ctx context.Context) {
	if j.days <= 0 {
		return
	}

	// Purge once at startup, then daily.
	j.purge()

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.purge()
		}
	}
}

func (j *Janitor) purge() {
	if err := j.repo.PurgeOldData(j.days); err != nil {
		j.logger.WithError(err).WithField("retention_days", j.days).Error("Retention purge failed")
	}
}
