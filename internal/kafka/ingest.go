package kafka

import (
	"context"
	"fmt"

	"playstats/internal/services"

	"github.com/google/uuid"
)

// RegisterIngestHandlers binds the four raw notification types to the
// ingestor.
func RegisterIngestHandlers(d *Dispatcher, ingestor *services.Ingestor) {
	d.Register(TypeJoin, func(_ context.Context, env Envelope) error {
		playerID, err := uuid.Parse(env.PlayerID)
		if err != nil {
			return fmt.Errorf("invalid player_id %q: %w", env.PlayerID, err)
		}
		return ingestor.Join(playerID, env.Hostname, env.ClientType, env.Country, env.CountryTier)
	})

	d.Register(TypeSessionStart, func(_ context.Context, env Envelope) error {
		playerID, err := uuid.Parse(env.PlayerID)
		if err != nil {
			return fmt.Errorf("invalid player_id %q: %w", env.PlayerID, err)
		}
		return ingestor.StartSession(playerID, env.Hostname)
	})

	d.Register(TypeSessionEnd, func(_ context.Context, env Envelope) error {
		playerID, err := uuid.Parse(env.PlayerID)
		if err != nil {
			return fmt.Errorf("invalid player_id %q: %w", env.PlayerID, err)
		}
		return ingestor.EndSession(playerID, env.Hostname)
	})

	d.Register(TypeRevenue, func(_ context.Context, env Envelope) error {
		return ingestor.Revenue(env.Hostname, env.Amount, env.Currency)
	})
}
