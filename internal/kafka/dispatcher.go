package kafka

import (
	"context"
	"encoding/json"
	"errors"

	"playstats/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Event types carried by envelopes.
const (
	TypeJoin         = "join"
	TypeSessionStart = "session_start"
	TypeSessionEnd   = "session_end"
	TypeRevenue      = "revenue"
)

// Envelope is the wire format of raw player notifications. Only the
// fields relevant to the event type are populated.
type Envelope struct {
	Type        string  `json:"type"`
	PlayerID    string  `json:"player_id,omitempty"`
	Hostname    string  `json:"hostname"`
	ClientType  string  `json:"client_type,omitempty"`
	Country     *string `json:"country,omitempty"`
	CountryTier *string `json:"country_tier,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Timestamp   int64   `json:"timestamp,omitempty"`
}

// HandlerFunc consumes one decoded envelope.
type HandlerFunc func(ctx context.Context, env Envelope) error

// Dispatcher routes envelopes to handlers by event type through a
// registration table.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   *logrus.Logger
}

func NewDispatcher(logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

func (d *Dispatcher) Register(eventType string, handler HandlerFunc) {
	d.handlers[eventType] = handler
}

// Dispatch decodes and routes a single message payload. Unknown event
// types are logged and dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, payload []byte) error {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		d.logger.WithError(err).Warn("Dropping malformed event payload")
		return err
	}

	handler, ok := d.handlers[env.Type]
	if !ok {
		d.logger.WithField("type", env.Type).Warn("Dropping event with unknown type")
		return errors.New("unknown event type: " + env.Type)
	}

	metrics.EventsReceived.WithLabelValues(env.Type).Inc()
	return handler(ctx, env)
}

// Run consumes messages until the context is cancelled. Handler errors
// are logged; consumption continues.
func (d *Dispatcher) Run(ctx context.Context, consumer *Consumer) {
	for {
		message, err := consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			d.logger.WithError(err).Error("Failed to read from Kafka")
			continue
		}
		if err := d.Dispatch(ctx, message.Value); err != nil {
			d.logger.WithError(err).WithField("key", string(message.Key)).Error("Failed to handle event")
		}
	}
}
