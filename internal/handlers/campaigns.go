package handlers

import (
	"errors"
	"net/http"
	"time"

	"playstats/internal/format"
	"playstats/internal/models"
	"playstats/internal/repository"

	"github.com/gin-gonic/gin"
)

type CampaignRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date"`
	Currency    string  `json:"currency" binding:"required"`
	Cost        float64 `json:"cost"`
}

type HostnameRequest struct {
	Hostname string `json:"hostname" binding:"required"`
}

func (s *Server) PostCampaign(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	var endDate time.Time
	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return
		}
	}

	campaign := models.Campaign{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Currency:    req.Currency,
		Cost:        req.Cost,
	}
	if err := s.campaigns.Create(&campaign); err != nil {
		if errors.Is(err, repository.ErrDuplicateCampaign) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		s.logger.WithError(err).WithField("campaign", req.Name).Error("Failed to create campaign")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create campaign"})
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (s *Server) GetCampaigns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"campaigns": s.campaigns.List()})
}

func (s *Server) GetCampaign(c *gin.Context) {
	campaign, err := s.campaigns.Get(c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get campaign"})
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (s *Server) PostCampaignEnd(c *gin.Context) {
	if err := s.campaigns.End(c.Param("name")); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end campaign"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

func (s *Server) GetCampaignMetrics(c *gin.Context) {
	metrics, err := s.campaigns.Metrics(c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get campaign metrics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cost":    metrics.Cost,
		"revenue": metrics.Revenue,
		"profit":  metrics.Profit,
		"roi":     metrics.ROI,
		"formatted": gin.H{
			"cost":    format.Number(metrics.Cost),
			"revenue": format.Number(metrics.Revenue),
			"profit":  format.Number(metrics.Profit),
			"roi":     format.Percentage(metrics.ROI),
		},
	})
}

func (s *Server) GetCampaignJoins(c *gin.Context) {
	name := c.Param("name")
	if _, err := s.campaigns.Get(name); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get campaign"})
		return
	}

	days, ok := parseDays(c)
	if !ok {
		return
	}
	stats := s.analytics.CampaignJoinStats(name, repository.WindowSince(days))
	c.JSON(http.StatusOK, gin.H{"campaign": name, "joins": stats})
}

func (s *Server) GetCampaignHostnames(c *gin.Context) {
	hostnames, err := s.campaigns.Hostnames(c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get campaign hostnames"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hostnames": hostnames})
}

func (s *Server) PostCampaignHostname(c *gin.Context) {
	var req HostnameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := s.campaigns.BindHostname(c.Param("name"), req.Hostname)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to bind hostname"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (s *Server) DeleteCampaignHostname(c *gin.Context) {
	changed, err := s.campaigns.UnbindHostname(c.Param("name"), c.Param("hostname"))
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unbind hostname"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}
