package repository

import (
	"fmt"
	"time"

	"playstats/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RevenueRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewRevenueRepository(db *gorm.DB, logger *logrus.Logger) *RevenueRepository {
	return &RevenueRepository{
		db:     db,
		logger: logger,
	}
}

// Record appends a revenue entry and attributes the amount to every
// active campaign currently bound to the hostname whose currency
// matches the entry's. Both writes commit in one transaction; if
// attribution fails nothing is applied.
func (r *RevenueRepository) Record(hostname string, amount float64, currency string) error {
	if hostname == "" {
		return ErrEmptyHostname
	}
	if amount < 0 {
		return ErrNegativeAmount
	}

	entry := models.RevenueEntry{
		Hostname:  hostname,
		Amount:    amount,
		Currency:  currency,
		Timestamp: time.Now().UTC(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to insert revenue entry: %w", err)
		}

		res := tx.Exec(`
			UPDATE campaigns
			SET total_revenue = total_revenue + ?
			WHERE status = ?
			AND currency = ?
			AND name IN (SELECT campaign_name FROM campaign_hostnames WHERE hostname = ?)`,
			amount, models.CampaignStatusActive, currency, hostname)
		if res.Error != nil {
			return fmt.Errorf("failed to attribute revenue: %w", res.Error)
		}

		r.logger.WithFields(logrus.Fields{
			"hostname":  hostname,
			"amount":    amount,
			"currency":  currency,
			"campaigns": res.RowsAffected,
		}).Info("Recorded revenue")
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("hostname", hostname).Error("Failed to record revenue")
		return err
	}
	return nil
}
