package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "PORT", "KAFKA_BROKER", "KAFKA_TOPIC", "KAFKA_OUT_TOPIC", "KAFKA_GROUP_ID", "SAMPLE_INTERVAL", "RETENTION_DAYS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "player-events", cfg.KafkaTopic)
	assert.Equal(t, "player-events-out", cfg.KafkaOutTopic)
	assert.Equal(t, 5*time.Minute, cfg.SampleInterval)
	assert.Equal(t, 0, cfg.RetentionDays)
}

// The consumed topic and the republish topic must never collide: the
// dispatcher would re-ingest every event the API mirrors, recording
// each HTTP join twice.
func TestLoad_ConsumeAndOutTopicsDistinct(t *testing.T) {
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("KAFKA_OUT_TOPIC", "")

	cfg := Load()
	assert.NotEqual(t, cfg.KafkaTopic, cfg.KafkaOutTopic)
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("RETENTION_DAYS", "not-a-number")
	assert.Equal(t, 90, GetEnvInt("RETENTION_DAYS", 90))
}

func TestGetEnvDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SAMPLE_INTERVAL", "soon")
	assert.Equal(t, time.Minute, GetEnvDuration("SAMPLE_INTERVAL", time.Minute))
}
