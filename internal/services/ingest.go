package services

import (
	"fmt"
	"time"

	"playstats/internal/metrics"
	"playstats/internal/models"
	"playstats/internal/repository"
	"playstats/internal/session"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Ingestor is the single entry point for raw player notifications,
// shared by the HTTP ingest endpoints and the Kafka consumer.
type Ingestor struct {
	tracker    *session.Tracker
	queue      *JoinQueue
	events     *repository.EventRepository
	revenue    *repository.RevenueRepository
	classifier ClientClassifier
	logger     *logrus.Logger
}

func NewIngestor(
	tracker *session.Tracker,
	queue *JoinQueue,
	events *repository.EventRepository,
	revenue *repository.RevenueRepository,
	classifier ClientClassifier,
	logger *logrus.Logger,
) *Ingestor {
	if classifier == nil {
		classifier = NewDefaultClassifier()
	}
	return &Ingestor{
		tracker:    tracker,
		queue:      queue,
		events:     events,
		revenue:    revenue,
		classifier: classifier,
		logger:     logger,
	}
}

// Join records a login. The write is asynchronous and never fails the
// login flow: a full queue falls back to a synchronous insert, and
// even that failure is only logged.
func (i *Ingestor) Join(playerID uuid.UUID, hostname, clientType string, country, countryTier *string) error {
	if hostname == "" {
		return repository.ErrEmptyHostname
	}
	if clientType == "" {
		clientType = i.classifier.Classify(playerID, hostname)
	}

	event := models.JoinEvent{
		PlayerID:    playerID.String(),
		Hostname:    hostname,
		ClientType:  clientType,
		Country:     country,
		CountryTier: countryTier,
		Timestamp:   time.Now().UTC(),
	}

	if !i.queue.Enqueue(event) {
		if err := i.events.RecordJoin(&event); err != nil {
			// Persistence must not break the login path.
			i.logger.WithError(err).WithField("player_id", playerID).Warn("Join event lost")
		}
	}
	metrics.QueueSize.Set(float64(i.queue.Len()))
	return nil
}

// StartSession opens the in-memory session for a player.
func (i *Ingestor) StartSession(playerID uuid.UUID, hostname string) error {
	if hostname == "" {
		return repository.ErrEmptyHostname
	}
	i.tracker.Start(playerID, hostname)
	return nil
}

// EndSession closes and persists a player's session; no open session
// is a no-op.
func (i *Ingestor) EndSession(playerID uuid.UUID, hostname string) error {
	return i.tracker.End(playerID, hostname)
}

// Revenue records a revenue notification with campaign attribution.
func (i *Ingestor) Revenue(hostname string, amount float64, currency string) error {
	if currency == "" {
		return fmt.Errorf("currency must not be empty")
	}
	return i.revenue.Record(hostname, amount, currency)
}
