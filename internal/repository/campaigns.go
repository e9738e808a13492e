package repository

import (
	"errors"
	"fmt"

	"playstats/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CampaignRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewCampaignRepository(db *gorm.DB, logger *logrus.Logger) *CampaignRepository {
	return &CampaignRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new campaign. Names are unique; a taken name fails
// with ErrDuplicateCampaign and leaves the existing campaign untouched.
// The unique index is the arbiter, so concurrent creates of the same
// name surface the same typed error.
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusActive
	}
	if err := r.db.Create(campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCampaign
		}
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Get(name string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.Where("name = ?", name).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &campaign, nil
}

// List returns all campaigns, newest first. Read failures are logged
// and return an empty list.
func (r *CampaignRepository) List() []models.Campaign {
	var campaigns []models.Campaign
	if err := r.db.Order("start_date DESC").Find(&campaigns).Error; err != nil {
		r.logger.WithError(err).Error("Failed to list campaigns")
		return nil
	}
	return campaigns
}

// End marks a campaign ended. The transition is one-way; ending an
// already-ended campaign is a no-op that still succeeds. A missing
// name is ErrCampaignNotFound.
func (r *CampaignRepository) End(name string) error {
	res := r.db.Model(&models.Campaign{}).Where("name = ?", name).
		Update("status", models.CampaignStatusEnded)
	if res.Error != nil {
		return fmt.Errorf("failed to end campaign: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// BindHostname adds a campaign-hostname edge. Returns whether a new
// edge was created; binding an already-bound hostname reports false
// with no error.
func (r *CampaignRepository) BindHostname(campaignName, hostname string) (bool, error) {
	if hostname == "" {
		return false, ErrEmptyHostname
	}
	changed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Campaign{}).Where("name = ?", campaignName).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check campaign: %w", err)
		}
		if count == 0 {
			return ErrCampaignNotFound
		}

		if err := tx.Model(&models.CampaignHostname{}).
			Where("campaign_name = ? AND hostname = ?", campaignName, hostname).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check binding: %w", err)
		}
		if count > 0 {
			return nil
		}

		if err := tx.Create(&models.CampaignHostname{CampaignName: campaignName, Hostname: hostname}).Error; err != nil {
			return fmt.Errorf("failed to bind hostname: %w", err)
		}
		changed = true
		return nil
	})
	return changed, err
}

// UnbindHostname removes a campaign-hostname edge. Returns whether an
// edge was removed.
func (r *CampaignRepository) UnbindHostname(campaignName, hostname string) (bool, error) {
	changed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Campaign{}).Where("name = ?", campaignName).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check campaign: %w", err)
		}
		if count == 0 {
			return ErrCampaignNotFound
		}

		res := tx.Where("campaign_name = ? AND hostname = ?", campaignName, hostname).
			Delete(&models.CampaignHostname{})
		if res.Error != nil {
			return fmt.Errorf("failed to unbind hostname: %w", res.Error)
		}
		changed = res.RowsAffected > 0
		return nil
	})
	return changed, err
}

// Hostnames returns the hostnames currently bound to a campaign.
func (r *CampaignRepository) Hostnames(campaignName string) ([]string, error) {
	if _, err := r.Get(campaignName); err != nil {
		return nil, err
	}
	var hostnames []string
	if err := r.db.Model(&models.CampaignHostname{}).
		Where("campaign_name = ?", campaignName).
		Order("hostname").
		Pluck("hostname", &hostnames).Error; err != nil {
		r.logger.WithError(err).WithField("campaign", campaignName).Error("Failed to get campaign hostnames")
		return nil, fmt.Errorf("failed to get campaign hostnames: %w", err)
	}
	return hostnames, nil
}

// Metrics derives profit and ROI from a campaign's running totals.
// ROI is 0 when cost is 0.
func (r *CampaignRepository) Metrics(name string) (*models.CampaignMetrics, error) {
	campaign, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	metrics := &models.CampaignMetrics{
		Cost:    campaign.Cost,
		Revenue: campaign.TotalRevenue,
		Profit:  campaign.TotalRevenue - campaign.Cost,
	}
	if campaign.Cost > 0 {
		metrics.ROI = metrics.Profit / campaign.Cost * 100
	}
	return metrics, nil
}
