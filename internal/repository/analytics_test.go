package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"playstats/internal/models"
)

func strPtr(s string) *string { return &s }

func insertJoin(t *testing.T, db *gorm.DB, hostname, clientType string, country, tier *string, age time.Duration) {
	t.Helper()
	event := models.JoinEvent{
		PlayerID:    uuid.NewString(),
		Hostname:    hostname,
		ClientType:  clientType,
		Country:     country,
		CountryTier: tier,
		Timestamp:   time.Now().UTC().Add(-age),
	}
	require.NoError(t, db.Create(&event).Error)
}

func TestAnalyticsRepository_PlatformStats_TotalSumsClientTypes(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalyticsRepository(db, testLogger())

	insertJoin(t, db, "a", models.ClientJava, nil, nil, time.Hour)
	insertJoin(t, db, "a", models.ClientJava, nil, nil, time.Hour)
	insertJoin(t, db, "a", models.ClientBedrock, nil, nil, time.Hour)
	insertJoin(t, db, "other", models.ClientJava, nil, nil, time.Hour)

	stats := repo.PlatformStats("a", nil)
	assert.Equal(t, int64(2), stats["java"])
	assert.Equal(t, int64(1), stats["bedrock"])

	var sum int64
	for key, count := range stats {
		if key != "total" {
			sum += count
		}
	}
	assert.Equal(t, sum, stats["total"])
}

func TestAnalyticsRepository_PlatformStats_WindowBoundaries(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalyticsRepository(db, testLogger())

	insertJoin(t, db, "a", models.ClientJava, nil, nil, 2*time.Hour)
	insertJoin(t, db, "a", models.ClientJava, nil, nil, 48*time.Hour)

	// All time.
	stats := repo.PlatformStats("a", WindowSince(nil))
	assert.Equal(t, int64(2), stats["total"])

	// Trailing day.
	days := 1
	stats = repo.PlatformStats("a", WindowSince(&days))
	assert.Equal(t, int64(1), stats["total"])

	// Zero-day window starts at the current instant: past events are out.
	days = 0
	stats = repo.PlatformStats("a", WindowSince(&days))
	assert.Equal(t, int64(0), stats["total"])
}

func TestAnalyticsRepository_PlatformStats_EmptyHostname(t *testing.T) {
	repo := NewAnalyticsRepository(newTestDB(t), testLogger())

	stats := repo.PlatformStats("nothing-here", nil)
	assert.Equal(t, models.PlatformStats{"total": 0}, stats)
}

func TestAnalyticsRepository_CountryStats_ExcludesMissingGeo(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalyticsRepository(db, testLogger())

	insertJoin(t, db, "a", models.ClientJava, strPtr("DE"), strPtr("1"), time.Hour)
	insertJoin(t, db, "a", models.ClientBedrock, strPtr("DE"), strPtr("1"), time.Hour)
	insertJoin(t, db, "a", models.ClientJava, strPtr("BR"), strPtr("3"), time.Hour)
	insertJoin(t, db, "a", models.ClientJava, nil, nil, time.Hour)
	insertJoin(t, db, "a", models.ClientJava, strPtr("US"), nil, time.Hour)

	stats := repo.CountryStats("a", nil)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(1), stats["1"]["DE"]["java"])
	assert.Equal(t, int64(1), stats["1"]["DE"]["bedrock"])
	assert.Equal(t, int64(1), stats["3"]["BR"]["java"])
}

func TestAnalyticsRepository_RevenueStats_GroupedByCurrency(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalyticsRepository(db, testLogger())

	now := time.Now().UTC()
	for _, entry := range []models.RevenueEntry{
		{Hostname: "a", Amount: 10, Currency: "USD", Timestamp: now},
		{Hostname: "a", Amount: 5.5, Currency: "USD", Timestamp: now},
		{Hostname: "a", Amount: 3, Currency: "EUR", Timestamp: now},
		{Hostname: "other", Amount: 99, Currency: "USD", Timestamp: now},
	} {
		require.NoError(t, db.Create(&entry).Error)
	}

	stats := repo.RevenueStats("a", nil)
	assert.InDelta(t, 15.5, stats["USD"], 0.001)
	assert.InDelta(t, 3.0, stats["EUR"], 0.001)
	assert.Len(t, stats, 2)
}

func TestAnalyticsRepository_CampaignJoinStats_UsesCurrentBindings(t *testing.T) {
	db := newTestDB(t)
	analytics := NewAnalyticsRepository(db, testLogger())
	campaigns := NewCampaignRepository(db, testLogger())

	require.NoError(t, campaigns.Create(newCampaign("launch", 100, "USD")))
	_, err := campaigns.BindHostname("launch", "a")
	require.NoError(t, err)

	insertJoin(t, db, "a", models.ClientJava, nil, nil, time.Hour)
	insertJoin(t, db, "b", models.ClientJava, nil, nil, time.Hour)

	stats := analytics.CampaignJoinStats("launch", nil)
	assert.Equal(t, int64(1), stats["total"])

	// Binding b now brings its existing joins into scope.
	_, err = campaigns.BindHostname("launch", "b")
	require.NoError(t, err)
	stats = analytics.CampaignJoinStats("launch", nil)
	assert.Equal(t, int64(2), stats["total"])

	// Unbinding removes them again.
	_, err = campaigns.UnbindHostname("launch", "a")
	require.NoError(t, err)
	stats = analytics.CampaignJoinStats("launch", nil)
	assert.Equal(t, int64(1), stats["total"])
}
