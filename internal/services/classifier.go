package services

import (
	"github.com/google/uuid"

	"playstats/internal/models"
)

// ClientClassifier decides which client variant a joining player is
// using when the notification itself does not say. A real classifier
// (e.g. one backed by a proxy that speaks both protocols) is injected
// at construction; without one the default applies.
type ClientClassifier interface {
	Classify(playerID uuid.UUID, hostname string) string
}

type defaultClassifier struct{}

func (defaultClassifier) Classify(uuid.UUID, string) string {
	return models.ClientJava
}

// NewDefaultClassifier returns the fallback classifier, which reports
// every player as a Java client.
func NewDefaultClassifier() ClientClassifier {
	return defaultClassifier{}
}
