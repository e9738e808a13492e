package repository

import (
	"strings"
	"time"

	"playstats/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnalyticsRepository answers the grouped, time-windowed read queries.
// Every method follows the same contract: failures are logged with the
// operation's key identifiers and an empty result is returned, so a
// broken query never takes the caller down.
type AnalyticsRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewAnalyticsRepository(db *gorm.DB, logger *logrus.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{
		db:     db,
		logger: logger,
	}
}

type clientTypeCount struct {
	ClientType string
	Count      int64
}

// PlatformStats counts joins for a hostname grouped by client type.
// The "total" key sums across client types and is always present.
func (r *AnalyticsRepository) PlatformStats(hostname string, since *time.Time) models.PlatformStats {
	q := r.db.Model(&models.JoinEvent{}).
		Select("client_type, COUNT(*) as count").
		Where("hostname = ?", hostname)
	if since != nil {
		q = q.Where("timestamp >= ?", *since)
	}

	var rows []clientTypeCount
	if err := q.Group("client_type").Scan(&rows).Error; err != nil {
		r.logger.WithError(err).WithField("hostname", hostname).Error("Failed to get platform stats")
		return models.PlatformStats{"total": 0}
	}

	return buildPlatformStats(rows)
}

// CampaignJoinStats counts joins whose hostname is currently bound to
// the named campaign, grouped like PlatformStats.
func (r *AnalyticsRepository) CampaignJoinStats(campaignName string, since *time.Time) models.PlatformStats {
	q := r.db.Model(&models.JoinEvent{}).
		Select("client_type, COUNT(*) as count").
		Where("hostname IN (SELECT hostname FROM campaign_hostnames WHERE campaign_name = ?)", campaignName)
	if since != nil {
		q = q.Where("timestamp >= ?", *since)
	}

	var rows []clientTypeCount
	if err := q.Group("client_type").Scan(&rows).Error; err != nil {
		r.logger.WithError(err).WithField("campaign", campaignName).Error("Failed to get campaign join stats")
		return models.PlatformStats{"total": 0}
	}

	return buildPlatformStats(rows)
}

func buildPlatformStats(rows []clientTypeCount) models.PlatformStats {
	stats := make(models.PlatformStats, len(rows)+1)
	var total int64
	for _, row := range rows {
		stats[strings.ToLower(row.ClientType)] = row.Count
		total += row.Count
	}
	stats["total"] = total
	return stats
}

// CountryStats groups joins by country tier, country and client type.
// Joins without a recorded tier or country are excluded rather than
// zero-filled.
func (r *AnalyticsRepository) CountryStats(hostname string, since *time.Time) models.CountryStats {
	q := r.db.Model(&models.JoinEvent{}).
		Select("country_tier, country, client_type, COUNT(*) as count").
		Where("hostname = ?", hostname).
		Where("country_tier IS NOT NULL AND country IS NOT NULL")
	if since != nil {
		q = q.Where("timestamp >= ?", *since)
	}

	var rows []struct {
		CountryTier string
		Country     string
		ClientType  string
		Count       int64
	}
	if err := q.Group("country_tier, country, client_type").Scan(&rows).Error; err != nil {
		r.logger.WithError(err).WithField("hostname", hostname).Error("Failed to get country stats")
		return models.CountryStats{}
	}

	stats := make(models.CountryStats)
	for _, row := range rows {
		tier, ok := stats[row.CountryTier]
		if !ok {
			tier = make(map[string]map[string]int64)
			stats[row.CountryTier] = tier
		}
		country, ok := tier[row.Country]
		if !ok {
			country = make(map[string]int64)
			tier[row.Country] = country
		}
		country[strings.ToLower(row.ClientType)] = row.Count
	}
	return stats
}

// RevenueStats sums revenue for a hostname grouped by currency. There
// is deliberately no cross-currency total.
func (r *AnalyticsRepository) RevenueStats(hostname string, since *time.Time) models.RevenueStats {
	q := r.db.Model(&models.RevenueEntry{}).
		Select("currency, SUM(amount) as total").
		Where("hostname = ?", hostname)
	if since != nil {
		q = q.Where("timestamp >= ?", *since)
	}

	var rows []struct {
		Currency string
		Total    float64
	}
	if err := q.Group("currency").Scan(&rows).Error; err != nil {
		r.logger.WithError(err).WithField("hostname", hostname).Error("Failed to get revenue stats")
		return models.RevenueStats{}
	}

	stats := make(models.RevenueStats, len(rows))
	for _, row := range rows {
		stats[row.Currency] = row.Total
	}
	return stats
}
