package services

import (
	"context"
	"time"

	"playstats/internal/metrics"
	"playstats/internal/models"

	"github.com/sirupsen/logrus"
)

// CountSource exposes live per-hostname player counts; the session
// tracker satisfies it.
type CountSource interface {
	ActiveCounts() map[string]int
}

type sampleWriter interface {
	Insert(samples []models.PlayerCountSample) error
}

// Sampler snapshots concurrent player counts on a fixed interval,
// writing one sample per hostname plus a "global" sample carrying the
// summed count, all sharing the tick's timestamp. A failed write is
// logged and skipped; the next tick proceeds normally.
type Sampler struct {
	source   CountSource
	repo     sampleWriter
	interval time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

func NewSampler(source CountSource, repo sampleWriter, interval time.Duration, logger *logrus.Logger) *Sampler {
	return &Sampler{
		source:   source,
		repo:     repo,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

func (s *Sampler) sample() {
	counts := s.source.ActiveCounts()
	timestamp := s.now().UTC()

	samples := make([]models.PlayerCountSample, 0, len(counts)+1)
	total := 0
	for hostname, count := range counts {
		samples = append(samples, models.PlayerCountSample{
			Hostname:  hostname,
			Count:     count,
			Timestamp: timestamp,
		})
		total += count
	}
	samples = append(samples, models.PlayerCountSample{
		Hostname:  models.GlobalHostname,
		Count:     total,
		Timestamp: timestamp,
	})

	metrics.ActivePlayers.Set(float64(total))

	if err := s.repo.Insert(samples); err != nil {
		s.logger.WithError(err).Error("Failed to write player count samples")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"hostnames": len(counts),
		"total":     total,
	}).Debug("Sampled player counts")
}
