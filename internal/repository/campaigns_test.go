package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstats/internal/models"
)

func newCampaign(name string, cost float64, currency string) *models.Campaign {
	return &models.Campaign{
		Name:      name,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Currency:  currency,
		Cost:      cost,
	}
}

func TestCampaignRepository_Create_DuplicateNameFails(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t), testLogger())

	require.NoError(t, repo.Create(newCampaign("launch", 100, "USD")))

	err := repo.Create(newCampaign("launch", 200, "EUR"))
	assert.ErrorIs(t, err, ErrDuplicateCampaign)

	// The original campaign is untouched.
	campaign, err := repo.Get("launch")
	require.NoError(t, err)
	assert.Equal(t, 100.0, campaign.Cost)
	assert.Equal(t, "USD", campaign.Currency)
}

// A create that loses a race to another writer hits the unique index
// rather than any pre-check; the index violation must still surface as
// the typed duplicate error so the API answers 409, not 500.
func TestCampaignRepository_Create_IndexViolationIsTypedDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db, testLogger())

	// Seed the name behind the repository's back, as a concurrent
	// winner would.
	require.NoError(t, db.Create(newCampaign("launch", 100, "USD")).Error)

	err := repo.Create(newCampaign("launch", 200, "EUR"))
	assert.ErrorIs(t, err, ErrDuplicateCampaign)

	campaign, err := repo.Get("launch")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, campaign.Status)
}

func TestCampaignRepository_Get_NotFound(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t), testLogger())

	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignRepository_End(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t), testLogger())
	require.NoError(t, repo.Create(newCampaign("launch", 100, "USD")))

	require.NoError(t, repo.End("launch"))
	campaign, err := repo.Get("launch")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusEnded, campaign.Status)

	// Ending again stays ended; ending a missing name is a failure.
	require.NoError(t, repo.End("launch"))
	assert.ErrorIs(t, repo.End("missing"), ErrCampaignNotFound)
}

func TestCampaignRepository_BindHostname_Idempotent(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t), testLogger())
	require.NoError(t, repo.Create(newCampaign("launch", 100, "USD")))

	changed, err := repo.BindHostname("launch", "x")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.BindHostname("launch", "x")
	require.NoError(t, err)
	assert.False(t, changed)

	hostnames, err := repo.Hostnames("launch")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, hostnames)
}

func TestCampaignRepository_BindHostname_MissingCampaign(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t), testLogger())

	_, err := repo.BindHostname("missing", "x")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignRepository_UnbindHostname(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t), testLogger())
	require.NoError(t, repo.Create(newCampaign("launch", 100, "USD")))

	_, err := repo.BindHostname("launch", "x")
	require.NoError(t, err)

	changed, err := repo.UnbindHostname("launch", "x")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.UnbindHostname("launch", "x")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = repo.UnbindHostname("missing", "x")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignRepository_Metrics_ZeroCostROI(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db, testLogger())
	require.NoError(t, repo.Create(newCampaign("free", 0, "USD")))
	require.NoError(t, db.Model(&models.Campaign{}).Where("name = ?", "free").
		Update("total_revenue", 42.0).Error)

	metrics, err := repo.Metrics("free")
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.Cost)
	assert.Equal(t, 42.0, metrics.Revenue)
	assert.Equal(t, 42.0, metrics.Profit)
	assert.Equal(t, 0.0, metrics.ROI)
}

func TestCampaignRepository_List_NewestFirst(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t), testLogger())

	older := newCampaign("older", 10, "USD")
	older.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newCampaign("newer", 10, "USD")))

	campaigns := repo.List()
	require.Len(t, campaigns, 2)
	assert.Equal(t, "newer", campaigns[0].Name)
	assert.Equal(t, "older", campaigns[1].Name)
}
